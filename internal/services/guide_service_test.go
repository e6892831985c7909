package services

import (
	"context"
	"reflect"
	"testing"

	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/models/dtos"
)

func validGuide() dtos.GuideSubmission {
	return dtos.GuideSubmission{
		Title:    "Cara naik TransJakarta",
		Category: "Transportasi",
		City:     "Jakarta",
		Area:     "Blok M",
		Steps:    []string{"Beli kartu", "Tap in di gerbang"},
		Tags:     " busway, transjakarta ,, koridor 1",
	}
}

func TestAddGuideStartsPendingForUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "budi", constants.RoleUser)

	guide, res := env.guideSvc.AddGuide(ctx, user.ID, validGuide())
	if !res.Success {
		t.Fatalf("expected submission to succeed, got %s", res.Error)
	}
	if guide.Status != constants.GuidePending {
		t.Errorf("expected community guide to start pending, got %s", guide.Status)
	}
}

func TestAddGuidePublishesForAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)

	guide, res := env.guideSvc.AddGuide(ctx, admin.ID, validGuide())
	if !res.Success {
		t.Fatalf("expected submission to succeed, got %s", res.Error)
	}
	if guide.Status != constants.GuideApproved {
		t.Errorf("expected admin guide to publish immediately, got %s", guide.Status)
	}
}

func TestAddGuideRejectsEmptySteps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "budi", constants.RoleUser)

	sub := validGuide()
	sub.Steps = []string{"", ""}

	_, res := env.guideSvc.AddGuide(ctx, user.ID, sub)
	if res.Success {
		t.Fatal("expected submission with only empty steps to fail")
	}
	if res.Error != constants.ReasonStepsRequired {
		t.Errorf("expected reason %s, got %s", constants.ReasonStepsRequired, res.Error)
	}

	// Validation must reject before anything reaches the store.
	guides, err := env.guides.List(ctx)
	if err != nil {
		t.Fatalf("failed to list guides: %v", err)
	}
	if len(guides) != 0 {
		t.Errorf("expected no rows written, got %d", len(guides))
	}
}

func TestAddGuideNormalizesTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "budi", constants.RoleUser)

	guide, res := env.guideSvc.AddGuide(ctx, user.ID, validGuide())
	if !res.Success {
		t.Fatalf("expected submission to succeed, got %s", res.Error)
	}

	want := []string{"busway", "transjakarta", "koridor 1"}
	if !reflect.DeepEqual(guide.Tags, want) {
		t.Errorf("expected tags %v, got %v", want, guide.Tags)
	}

	// And they round-trip through the store.
	stored, err := env.guides.GetByID(ctx, guide.ID)
	if err != nil {
		t.Fatalf("failed to reload guide: %v", err)
	}
	if !reflect.DeepEqual(stored.Tags, want) {
		t.Errorf("expected stored tags %v, got %v", want, stored.Tags)
	}
}

func TestUpdateGuideByStrangerForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author", constants.RoleUser)
	stranger := env.seedUser(t, "stranger", constants.RoleUser)

	guide, _ := env.guideSvc.AddGuide(ctx, author.ID, validGuide())

	_, res := env.guideSvc.UpdateGuide(ctx, stranger.ID, guide.ID, validGuide())
	if res.Success {
		t.Fatal("expected edit by stranger to fail")
	}
	if res.Error != constants.ReasonForbidden {
		t.Errorf("expected reason %s, got %s", constants.ReasonForbidden, res.Error)
	}
}

func TestCommunityEditResetsToPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	author := env.seedUser(t, "author", constants.RoleUser)

	guide, _ := env.guideSvc.AddGuide(ctx, author.ID, validGuide())
	if res := env.guideSvc.ApproveGuide(ctx, admin.ID, guide.ID); !res.Success {
		t.Fatalf("approve failed: %s", res.Error)
	}

	sub := validGuide()
	sub.Title = "Cara naik TransJakarta (revisi)"
	updated, res := env.guideSvc.UpdateGuide(ctx, author.ID, guide.ID, sub)
	if !res.Success {
		t.Fatalf("edit failed: %s", res.Error)
	}
	if updated.Status != constants.GuidePending {
		t.Errorf("expected community edit to reset status to pending, got %s", updated.Status)
	}

	// Admin edit publishes directly.
	updated, res = env.guideSvc.UpdateGuide(ctx, admin.ID, guide.ID, sub)
	if !res.Success {
		t.Fatalf("admin edit failed: %s", res.Error)
	}
	if updated.Status != constants.GuideApproved {
		t.Errorf("expected admin edit to publish, got %s", updated.Status)
	}
}

func TestRejectedGuidesStayOutOfPublicListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	author := env.seedUser(t, "author", constants.RoleUser)

	guide, _ := env.guideSvc.AddGuide(ctx, author.ID, validGuide())
	if res := env.guideSvc.RejectGuide(ctx, admin.ID, guide.ID); !res.Success {
		t.Fatalf("reject failed: %s", res.Error)
	}

	approved, err := env.guideSvc.ApprovedGuides(ctx)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(approved) != 0 {
		t.Errorf("expected empty public listing, got %d entries", len(approved))
	}

	// The row is retained for audit, visible to its author and admins.
	if _, res := env.guideSvc.GetGuide(ctx, author.ID, guide.ID, false); !res.Success {
		t.Errorf("expected author to still see rejected guide, got %s", res.Error)
	}
	if _, res := env.guideSvc.GetGuide(ctx, "", guide.ID, false); res.Success {
		t.Error("expected anonymous viewer not to see rejected guide")
	}

	// The community listing is scoped the same way: the author keeps their
	// rejected row, other users never see it.
	stranger := env.seedUser(t, "stranger", constants.RoleUser)
	mine, err := env.guideSvc.UserGuides(ctx, author.ID, false)
	if err != nil {
		t.Fatalf("community listing failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != constants.GuideRejected {
		t.Errorf("expected author's community listing to keep the rejected guide, got %+v", mine)
	}
	theirs, err := env.guideSvc.UserGuides(ctx, stranger.ID, false)
	if err != nil {
		t.Fatalf("community listing failed: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("expected stranger's community listing to be empty, got %d entries", len(theirs))
	}
}

func TestCommunityListingScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	budi := env.seedUser(t, "budi", constants.RoleUser)
	sari := env.seedUser(t, "sari", constants.RoleUser)

	pending, _ := env.guideSvc.AddGuide(ctx, budi.ID, validGuide())

	sariGuide := validGuide()
	sariGuide.Title = "Rute angkot ke pasar"
	env.guideSvc.AddGuide(ctx, sari.ID, sariGuide)

	// Each user sees only their own submissions, pending included.
	budiView, err := env.guideSvc.UserGuides(ctx, budi.ID, false)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(budiView) != 1 || budiView[0].ID != pending.ID {
		t.Errorf("expected budi to see exactly his own submission, got %+v", budiView)
	}
	for _, g := range budiView {
		if g.AuthorID != budi.ID {
			t.Errorf("community listing leaked guide by author %s", g.AuthorID)
		}
	}

	// Admins audit every community author regardless of status.
	audit, err := env.guideSvc.UserGuides(ctx, admin.ID, true)
	if err != nil {
		t.Fatalf("audit listing failed: %v", err)
	}
	if len(audit) != 2 {
		t.Errorf("expected admin audit to cover both submissions, got %d", len(audit))
	}
}

func TestNetizenListingSplitsByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	user := env.seedUser(t, "warga", constants.RoleUser)

	adminGuide := validGuide()
	adminGuide.Title = "Panduan resmi"
	env.guideSvc.AddGuide(ctx, admin.ID, adminGuide)

	userGuide, _ := env.guideSvc.AddGuide(ctx, user.ID, validGuide())
	env.guideSvc.ApproveGuide(ctx, admin.ID, userGuide.ID)

	netizen, err := env.guideSvc.NetizenGuides(ctx)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(netizen) != 1 {
		t.Fatalf("expected 1 netizen guide, got %d", len(netizen))
	}
	if netizen[0].AuthorID != user.ID {
		t.Errorf("expected the community author's guide, got author %s", netizen[0].AuthorID)
	}

	public, err := env.guideSvc.ApprovedGuides(ctx)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(public) != 2 {
		t.Errorf("expected both approved guides in public listing, got %d", len(public))
	}
}

func TestToggleFavoriteIsInvolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	user := env.seedUser(t, "budi", constants.RoleUser)

	guide, _ := env.guideSvc.AddGuide(ctx, admin.ID, validGuide())

	on, res := env.guideSvc.ToggleFavorite(ctx, user.ID, guide.ID)
	if !res.Success || !on {
		t.Fatalf("expected first toggle to favorite, got on=%v err=%s", on, res.Error)
	}
	if !env.guideSvc.IsFavorite(ctx, user.ID, guide.ID) {
		t.Error("expected guide to be favorited")
	}

	off, res := env.guideSvc.ToggleFavorite(ctx, user.ID, guide.ID)
	if !res.Success || off {
		t.Fatalf("expected second toggle to unfavorite, got on=%v err=%s", off, res.Error)
	}
	if env.guideSvc.IsFavorite(ctx, user.ID, guide.ID) {
		t.Error("expected favorite to be gone after second toggle")
	}

	favs, err := env.guideSvc.FavoriteGuides(ctx, user.ID)
	if err != nil {
		t.Fatalf("favorites listing failed: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("expected no favorites, got %d", len(favs))
	}
}

func TestDeleteGuideAuthorOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author", constants.RoleUser)
	stranger := env.seedUser(t, "stranger", constants.RoleUser)

	guide, _ := env.guideSvc.AddGuide(ctx, author.ID, validGuide())

	if res := env.guideSvc.DeleteGuide(ctx, stranger.ID, guide.ID); res.Success {
		t.Fatal("expected delete by stranger to fail")
	}
	if res := env.guideSvc.DeleteGuide(ctx, author.ID, guide.ID); !res.Success {
		t.Fatalf("expected delete by author to succeed, got %s", res.Error)
	}

	if _, res := env.guideSvc.GetGuide(ctx, author.ID, guide.ID, false); res.Success {
		t.Error("expected deleted guide to be gone")
	}
}

func TestPendingQueueAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	user := env.seedUser(t, "budi", constants.RoleUser)

	env.guideSvc.AddGuide(ctx, user.ID, validGuide())

	if _, res := env.guideSvc.PendingGuides(ctx, user.ID); res.Success {
		t.Fatal("expected pending queue to be admin-only")
	}

	pending, res := env.guideSvc.PendingGuides(ctx, admin.ID)
	if !res.Success {
		t.Fatalf("expected pending queue for admin, got %s", res.Error)
	}
	if len(pending) != 1 {
		t.Errorf("expected 1 pending guide, got %d", len(pending))
	}
}

func TestIncrementView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	guide, _ := env.guideSvc.AddGuide(ctx, admin.ID, validGuide())

	env.guideSvc.IncrementView(ctx, guide.ID)
	env.guideSvc.IncrementView(ctx, guide.ID)

	stored, err := env.guides.GetByID(ctx, guide.ID)
	if err != nil {
		t.Fatalf("failed to reload guide: %v", err)
	}
	if stored.Views != 2 {
		t.Errorf("expected 2 views, got %d", stored.Views)
	}
}
