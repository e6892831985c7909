package services

import (
	"time"

	"panduankota/backend/internal/common"
	"panduankota/backend/internal/models/dtos"
	gormModels "panduankota/backend/internal/models/gorm"
)

// IsMuted reports whether a profile is currently muted. A past muted_until
// means the mute has lapsed.
func IsMuted(p *gormModels.Profile) bool {
	return p.MutedUntil != nil && p.MutedUntil.After(time.Now())
}

func buildProfileView(p *gormModels.Profile) dtos.ProfileView {
	view := dtos.ProfileView{
		ID:            p.ID,
		Email:         p.Email,
		Username:      p.Username,
		Role:          string(p.Role),
		Status:        string(p.Status),
		MutedUntil:    p.MutedUntil,
		MutePermanent: common.IsPermanentMute(p.MutedUntil),
	}
	for _, w := range p.Warnings {
		view.Warnings = append(view.Warnings, buildWarningView(&w))
	}
	return view
}

func buildWarningView(w *gormModels.UserWarning) dtos.WarningView {
	return dtos.WarningView{
		ID:           w.ID,
		Title:        w.Title,
		Message:      w.Message,
		Acknowledged: w.Acknowledged,
		CreatedAt:    w.CreatedAt,
	}
}

func buildGuideView(g *gormModels.Guide) dtos.GuideView {
	links := make([]dtos.GuideLink, 0, len(g.Links))
	for _, l := range g.Links {
		links = append(links, dtos.GuideLink{Title: l.Title, URL: l.URL})
	}
	return dtos.GuideView{
		ID:             g.ID,
		AuthorID:       g.AuthorID,
		AuthorUsername: g.Author.Username,
		Title:          g.Title,
		Category:       g.Category,
		City:           g.City,
		Area:           g.Area,
		Steps:          g.Steps,
		Tips:           g.Tips,
		Tags:           g.Tags,
		Links:          links,
		Status:         g.Status,
		Views:          g.Views,
		CreatedAt:      g.CreatedAt,
	}
}

func buildCommentView(c *gormModels.PostComment) dtos.CommentView {
	return dtos.CommentView{
		ID:             c.ID,
		PostID:         c.PostID,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.Author.Username,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
	}
}

func buildReportView(r *gormModels.PostReport) dtos.ReportView {
	return dtos.ReportView{
		ID:               r.ID,
		ReporterID:       r.ReporterID,
		ReporterUsername: r.Reporter.Username,
		Reason:           r.Reason,
		CreatedAt:        r.CreatedAt,
	}
}
