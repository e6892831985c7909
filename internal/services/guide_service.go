package services

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"panduankota/backend/internal/common"
	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/db/repositories"
	"panduankota/backend/internal/logging"
	"panduankota/backend/internal/metrics"
	"panduankota/backend/internal/models/dtos"
	gormModels "panduankota/backend/internal/models/gorm"
)

// GuideService owns the guide moderation lifecycle: submission -> pending ->
// approved/rejected, plus favorites and the derived listings the client tabs
// are built from.
type GuideService struct {
	guides    *repositories.GuideRepository
	favorites *repositories.FavoriteRepository
	profiles  *repositories.ProfileRepository
	metrics   *metrics.MetricsRegistry
	collator  *collate.Collator
}

func NewGuideService(
	guides *repositories.GuideRepository,
	favorites *repositories.FavoriteRepository,
	profiles *repositories.ProfileRepository,
	metricsReg *metrics.MetricsRegistry,
) *GuideService {
	return &GuideService{
		guides:    guides,
		favorites: favorites,
		profiles:  profiles,
		metrics:   metricsReg,
		collator:  collate.New(language.Indonesian, collate.IgnoreCase),
	}
}

func validateSubmission(sub *dtos.GuideSubmission) string {
	if sub.Title == "" {
		return constants.ReasonTitleRequired
	}
	if !constants.IsGuideCategory(sub.Category) {
		return constants.ReasonCategoryInvalid
	}
	if sub.City == "" {
		return constants.ReasonCityRequired
	}
	if sub.Area == "" {
		return constants.ReasonAreaRequired
	}
	steps := nonEmpty(sub.Steps)
	if len(steps) == 0 {
		return constants.ReasonStepsRequired
	}
	return ""
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func applySubmission(guide *gormModels.Guide, sub *dtos.GuideSubmission) {
	guide.Title = sub.Title
	guide.Category = sub.Category
	guide.City = sub.City
	guide.Area = sub.Area
	guide.Steps = nonEmpty(sub.Steps)
	guide.Tips = nonEmpty(sub.Tips)
	guide.Tags = common.NormalizeTags(sub.Tags)
	guide.Links = nil
	for _, l := range sub.Links {
		if l.URL != "" {
			guide.Links = append(guide.Links, gormModels.GuideLink{Title: l.Title, URL: l.URL})
		}
	}
}

// AddGuide validates and stores a submission. Admin-authored guides go live
// immediately; everything else starts pending review.
func (s *GuideService) AddGuide(ctx context.Context, authorID string, sub dtos.GuideSubmission) (*dtos.GuideView, dtos.OpResult) {
	author, err := s.profiles.GetByID(ctx, authorID)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonUnauthorized)
	}

	if reason := validateSubmission(&sub); reason != "" {
		return nil, dtos.Fail(reason)
	}

	guide := &gormModels.Guide{AuthorID: authorID}
	applySubmission(guide, &sub)
	guide.Status = constants.GuidePending
	if author.IsAdmin() {
		guide.Status = constants.GuideApproved
	}

	if err := s.guides.Create(ctx, guide); err != nil {
		logging.Error("guide create failed", "author_id", authorID, "error", err.Error())
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	if s.metrics != nil {
		s.metrics.GuidesSubmittedTotal.Inc()
	}
	guide.Author = *author
	view := buildGuideView(guide)
	return &view, dtos.Ok()
}

// UpdateGuide applies an edit. A community edit of any guide forces it back
// to pending review; an admin edit publishes it.
func (s *GuideService) UpdateGuide(ctx context.Context, actorID, guideID string, sub dtos.GuideSubmission) (*dtos.GuideView, dtos.OpResult) {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonUnauthorized)
	}

	guide, err := s.guides.GetByID(ctx, guideID)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonNotFound)
	}

	if guide.AuthorID != actorID && !actor.IsAdmin() {
		return nil, dtos.Fail(constants.ReasonForbidden)
	}

	if reason := validateSubmission(&sub); reason != "" {
		return nil, dtos.Fail(reason)
	}

	applySubmission(guide, &sub)
	if actor.IsAdmin() {
		guide.Status = constants.GuideApproved
	} else {
		guide.Status = constants.GuidePending
	}

	if err := s.guides.Update(ctx, guide); err != nil {
		logging.Error("guide update failed", "guide_id", guideID, "error", err.Error())
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	view := buildGuideView(guide)
	return &view, dtos.Ok()
}

func (s *GuideService) ApproveGuide(ctx context.Context, actorID, guideID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if err := s.guides.UpdateStatus(ctx, guideID, constants.GuideApproved); err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if s.metrics != nil {
		s.metrics.GuidesApprovedTotal.Inc()
	}
	return dtos.Ok()
}

// RejectGuide marks a submission rejected. Rejected guides stay in the store
// for audit and never surface in public listings.
func (s *GuideService) RejectGuide(ctx context.Context, actorID, guideID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if err := s.guides.UpdateStatus(ctx, guideID, constants.GuideRejected); err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if s.metrics != nil {
		s.metrics.GuidesRejectedTotal.Inc()
	}
	return dtos.Ok()
}

func (s *GuideService) DeleteGuide(ctx context.Context, actorID, guideID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}

	guide, err := s.guides.GetByID(ctx, guideID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}

	if guide.AuthorID != actorID && !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if err := s.guides.Delete(ctx, guideID); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}
	return dtos.Ok()
}

// IncrementView is best effort: the client fires it once per detail open and
// nobody retries or deduplicates.
func (s *GuideService) IncrementView(ctx context.Context, guideID string) {
	if err := s.guides.IncrementViews(ctx, guideID); err != nil {
		logging.Warn("view increment failed", "guide_id", guideID, "error", err.Error())
	}
}

func (s *GuideService) ToggleFavorite(ctx context.Context, userID, guideID string) (bool, dtos.OpResult) {
	if _, err := s.guides.GetByID(ctx, guideID); err != nil {
		return false, dtos.Fail(constants.ReasonNotFound)
	}

	nowFavorite, err := s.favorites.Toggle(ctx, userID, guideID)
	if err != nil {
		return false, dtos.Fail(constants.ReasonStoreFailure)
	}
	return nowFavorite, dtos.Ok()
}

func (s *GuideService) IsFavorite(ctx context.Context, userID, guideID string) bool {
	ok, err := s.favorites.Exists(ctx, userID, guideID)
	if err != nil {
		return false
	}
	return ok
}

/* ---------- Derived listings ---------- */

func (s *GuideService) sortByTitle(views []dtos.GuideView) {
	sort.SliceStable(views, func(i, j int) bool {
		return s.collator.CompareString(views[i].Title, views[j].Title) < 0
	})
}

func (s *GuideService) listFiltered(ctx context.Context, keep func(*gormModels.Guide) bool) ([]dtos.GuideView, error) {
	guides, err := s.guides.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dtos.GuideView, 0, len(guides))
	for i := range guides {
		if keep(&guides[i]) {
			views = append(views, buildGuideView(&guides[i]))
		}
	}
	return views, nil
}

// ApprovedGuides is the public listing, title-sorted with locale-aware
// collation.
func (s *GuideService) ApprovedGuides(ctx context.Context) ([]dtos.GuideView, error) {
	views, err := s.listFiltered(ctx, func(g *gormModels.Guide) bool {
		return g.Status == constants.GuideApproved
	})
	if err != nil {
		return nil, err
	}
	s.sortByTitle(views)
	return views, nil
}

// PendingGuides is the admin review queue.
func (s *GuideService) PendingGuides(ctx context.Context, actorID string) ([]dtos.GuideView, dtos.OpResult) {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin() {
		return nil, dtos.Fail(constants.ReasonForbidden)
	}
	views, err := s.listFiltered(ctx, func(g *gormModels.Guide) bool {
		return g.Status == constants.GuidePending
	})
	if err != nil {
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}
	return views, dtos.Ok()
}

// NetizenGuides are approved community submissions: the author role decides
// the curator/netizen split, never the username.
func (s *GuideService) NetizenGuides(ctx context.Context) ([]dtos.GuideView, error) {
	views, err := s.listFiltered(ctx, func(g *gormModels.Guide) bool {
		return g.Status == constants.GuideApproved && g.Author.Role != constants.RoleAdmin
	})
	if err != nil {
		return nil, err
	}
	s.sortByTitle(views)
	return views, nil
}

// UserGuides backs the community tab. Callers see their own submissions in
// every state; admins get the audit view across all community authors.
// Pending and rejected rows never leave this scope.
func (s *GuideService) UserGuides(ctx context.Context, callerID string, callerIsAdmin bool) ([]dtos.GuideView, error) {
	if callerIsAdmin {
		return s.listFiltered(ctx, func(g *gormModels.Guide) bool {
			return g.Author.Role != constants.RoleAdmin
		})
	}
	return s.listFiltered(ctx, func(g *gormModels.Guide) bool {
		return g.AuthorID == callerID
	})
}

// FavoriteGuides lists the caller's bookmarked approved guides.
func (s *GuideService) FavoriteGuides(ctx context.Context, userID string) ([]dtos.GuideView, error) {
	ids, err := s.favorites.GuideIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	views, err := s.listFiltered(ctx, func(g *gormModels.Guide) bool {
		return g.Status == constants.GuideApproved && idSet[g.ID]
	})
	if err != nil {
		return nil, err
	}
	s.sortByTitle(views)
	return views, nil
}

// GetGuide returns one guide if the viewer may see it: everyone sees
// approved, authors see their own, admins see everything.
func (s *GuideService) GetGuide(ctx context.Context, viewerID, guideID string, viewerIsAdmin bool) (*dtos.GuideView, dtos.OpResult) {
	guide, err := s.guides.GetByID(ctx, guideID)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonNotFound)
	}

	if guide.Status != constants.GuideApproved && guide.AuthorID != viewerID && !viewerIsAdmin {
		return nil, dtos.Fail(constants.ReasonNotFound)
	}

	view := buildGuideView(guide)
	return &view, dtos.Ok()
}
