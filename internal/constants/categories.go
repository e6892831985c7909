package constants

// Guide categories. Stored as plain text in the guides table.
const (
	CategoryTransportasi = "Transportasi"
	CategoryPembayaran   = "Pembayaran"
	CategoryFasilitas    = "Fasilitas"
	CategoryLayanan      = "Layanan"
	CategoryKesehatan    = "Kesehatan"
	CategoryDarurat      = "Darurat"
	CategoryHiburan      = "Hiburan"
	CategoryTips         = "Tips"
	CategoryLainnya      = "Lainnya"
)

// GuideCategories is the accepted set for guide submissions.
var GuideCategories = []string{
	CategoryTransportasi,
	CategoryPembayaran,
	CategoryFasilitas,
	CategoryLayanan,
	CategoryKesehatan,
	CategoryDarurat,
	CategoryHiburan,
	CategoryTips,
	CategoryLainnya,
}

// Discussion board categories
const (
	DiscussionTransportasi    = "Transportasi"
	DiscussionGangguanDarurat = "Gangguan/Darurat"
	DiscussionAcaraKota       = "Acara Kota"
	DiscussionTipsLokal       = "Tips Lokal"
	DiscussionLowonganKerja   = "Lowongan Kerja"
)

var DiscussionCategories = []string{
	DiscussionTransportasi,
	DiscussionGangguanDarurat,
	DiscussionAcaraKota,
	DiscussionTipsLokal,
	DiscussionLowonganKerja,
}

// IsGuideCategory reports whether c is a known guide category.
func IsGuideCategory(c string) bool {
	for _, known := range GuideCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsDiscussionCategory reports whether c is a known discussion category.
func IsDiscussionCategory(c string) bool {
	for _, known := range DiscussionCategories {
		if c == known {
			return true
		}
	}
	return false
}
