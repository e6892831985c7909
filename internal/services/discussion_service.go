package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"panduankota/backend/internal/common"
	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/db/repositories"
	"panduankota/backend/internal/logging"
	"panduankota/backend/internal/metrics"
	"panduankota/backend/internal/models/dtos"
	gormModels "panduankota/backend/internal/models/gorm"
)

const (
	postsCacheKey = "posts:all"
	postsCacheTTL = 60 * time.Second

	// SortPopular orders unpinned posts by upvote count, SortNewest by
	// creation time. Pinned posts always lead in fetch order.
	SortPopular = "popular"
	SortNewest  = "newest"
)

// DiscussionService owns the board: posts with their derived aggregates,
// comments, upvotes, verification votes, reports and pinning.
type DiscussionService struct {
	posts      *repositories.PostRepository
	comments   *repositories.CommentRepository
	votes      *repositories.VoteRepository
	reports    *repositories.ReportRepository
	profiles   *repositories.ProfileRepository
	moderation *ModerationService
	cache      common.CacheInterface
	metrics    *metrics.MetricsRegistry
}

func NewDiscussionService(
	posts *repositories.PostRepository,
	comments *repositories.CommentRepository,
	votes *repositories.VoteRepository,
	reports *repositories.ReportRepository,
	profiles *repositories.ProfileRepository,
	moderation *ModerationService,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *DiscussionService {
	return &DiscussionService{
		posts:      posts,
		comments:   comments,
		votes:      votes,
		reports:    reports,
		profiles:   profiles,
		moderation: moderation,
		cache:      cache,
		metrics:    metricsReg,
	}
}

// invalidate drops the cached board so the next read refetches. Called after
// every successful mutation and by the change-notification listener.
func (s *DiscussionService) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(postsCacheKey)
	}
}

// requireSpeaker loads the author and refuses blocked or muted accounts.
// Mute gating happens here, server-side, not just in the client.
func (s *DiscussionService) requireSpeaker(ctx context.Context, userID string) (*gormModels.Profile, string) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, constants.ReasonUnauthorized
	}
	if profile.Status == constants.ProfileBlocked {
		return nil, constants.ReasonBlocked
	}
	if IsMuted(profile) {
		return nil, constants.ReasonMuted
	}
	return profile, ""
}

/* ---------- Posts ---------- */

func (s *DiscussionService) AddPost(ctx context.Context, authorID string, sub dtos.PostSubmission) (*dtos.PostView, dtos.OpResult) {
	if _, reason := s.requireSpeaker(ctx, authorID); reason != "" {
		return nil, dtos.Fail(reason)
	}

	if sub.Title == "" {
		return nil, dtos.Fail(constants.ReasonTitleRequired)
	}
	if sub.Content == "" {
		return nil, dtos.Fail(constants.ReasonContentRequired)
	}
	if !constants.IsDiscussionCategory(sub.Category) {
		return nil, dtos.Fail(constants.ReasonCategoryInvalid)
	}

	post := &gormModels.Post{
		AuthorID: authorID,
		Title:    sub.Title,
		Content:  sub.Content,
		Category: sub.Category,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		logging.Error("post create failed", "author_id", authorID, "error", err.Error())
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	if s.metrics != nil {
		s.metrics.PostsCreatedTotal.Inc()
	}

	view, err := s.GetPostByID(ctx, post.ID)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}
	return view, dtos.Ok()
}

func (s *DiscussionService) UpdatePost(ctx context.Context, actorID, postID string, sub dtos.PostSubmission) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if post.AuthorID != actorID && !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if sub.Title == "" {
		return dtos.Fail(constants.ReasonTitleRequired)
	}
	if sub.Content == "" {
		return dtos.Fail(constants.ReasonContentRequired)
	}
	if !constants.IsDiscussionCategory(sub.Category) {
		return dtos.Fail(constants.ReasonCategoryInvalid)
	}

	post.Title = sub.Title
	post.Content = sub.Content
	post.Category = sub.Category
	if err := s.posts.Update(ctx, post); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return dtos.Ok()
}

// DeletePost removes a post (author or admin). When an admin deletes a
// reported post, every distinct reporter except the admin and the post's own
// author gets a warning. The warnings fan out concurrently and are best
// effort: a failed warning never stops the deletion.
func (s *DiscussionService) DeletePost(ctx context.Context, actorID, postID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if post.AuthorID != actorID && !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if actor.IsAdmin() && len(post.Reports) > 0 {
		s.warnReporters(ctx, actor.ID, post)
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return dtos.Ok()
}

func (s *DiscussionService) warnReporters(ctx context.Context, adminID string, post *gormModels.Post) {
	reporterIDs, err := s.reports.DistinctReporterIDs(ctx, post.ID)
	if err != nil {
		logging.Warn("reporter lookup failed", "post_id", post.ID, "error", err.Error())
		return
	}

	title := constants.WarnReportedPostDeletedTitle
	var g errgroup.Group
	for _, reporterID := range reporterIDs {
		if reporterID == adminID || reporterID == post.AuthorID {
			continue
		}
		reporterID := reporterID
		g.Go(func() error {
			res := s.moderation.WarnUser(ctx, adminID, reporterID, constants.WarnReportedPostDeletedMessage, &title)
			if !res.Success {
				logging.Warn("reporter warning failed", "reporter_id", reporterID, "reason", res.Error)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *DiscussionService) TogglePin(ctx context.Context, actorID, postID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}

	if err := s.posts.SetPinned(ctx, postID, !post.IsPinned); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return dtos.Ok()
}

/* ---------- Comments ---------- */

func (s *DiscussionService) AddComment(ctx context.Context, authorID, postID, content string) (*dtos.CommentView, dtos.OpResult) {
	author, reason := s.requireSpeaker(ctx, authorID)
	if reason != "" {
		return nil, dtos.Fail(reason)
	}
	if content == "" {
		return nil, dtos.Fail(constants.ReasonContentRequired)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, dtos.Fail(constants.ReasonNotFound)
	}

	comment := &gormModels.PostComment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	if s.metrics != nil {
		s.metrics.CommentsCreatedTotal.Inc()
	}

	comment.Author = *author
	view := buildCommentView(comment)
	return &view, dtos.Ok()
}

func (s *DiscussionService) UpdateComment(ctx context.Context, actorID, commentID, content string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if comment.AuthorID != actorID && !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}
	if content == "" {
		return dtos.Fail(constants.ReasonContentRequired)
	}

	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}
	return dtos.Ok()
}

func (s *DiscussionService) DeleteComment(ctx context.Context, actorID, commentID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if comment.AuthorID != actorID && !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return dtos.Ok()
}

func (s *DiscussionService) GetComments(ctx context.Context, postID string) ([]dtos.CommentView, error) {
	comments, err := s.comments.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, buildCommentView(&comments[i]))
	}
	return views, nil
}

/* ---------- Votes ---------- */

// ToggleUpvote is an involution on the (post, user) pair.
func (s *DiscussionService) ToggleUpvote(ctx context.Context, userID, postID string) (bool, dtos.OpResult) {
	if _, err := s.profiles.GetByID(ctx, userID); err != nil {
		return false, dtos.Fail(constants.ReasonUnauthorized)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return false, dtos.Fail(constants.ReasonNotFound)
	}

	nowUpvoted, err := s.votes.ToggleUpvote(ctx, postID, userID)
	if err != nil {
		return false, dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return nowUpvoted, dtos.Ok()
}

// AddVerification records one fact-check vote per (post, user); a repeat vote
// replaces the previous status.
func (s *DiscussionService) AddVerification(ctx context.Context, userID, postID string, status string) dtos.OpResult {
	if _, err := s.profiles.GetByID(ctx, userID); err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}

	vs := constants.VerificationStatus(status)
	if vs != constants.VerificationTrue && vs != constants.VerificationQuestionable {
		return dtos.Fail(constants.ReasonCategoryInvalid)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}

	if err := s.votes.UpsertVerification(ctx, postID, userID, vs); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return dtos.Ok()
}

/* ---------- Reports ---------- */

func (s *DiscussionService) ReportPost(ctx context.Context, reporterID, postID, reason string) dtos.OpResult {
	if _, err := s.profiles.GetByID(ctx, reporterID); err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}
	if reason == "" {
		return dtos.Fail(constants.ReasonReasonRequired)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	if post.AuthorID == reporterID {
		return dtos.Fail(constants.ReasonOwnPostReport)
	}

	report := &gormModels.PostReport{
		PostID:     postID,
		ReporterID: reporterID,
		Reason:     reason,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	if s.metrics != nil {
		s.metrics.ReportsFiledTotal.Inc()
	}
	return dtos.Ok()
}

// ResolveReports dismisses every report on a post without touching the post.
func (s *DiscussionService) ResolveReports(ctx context.Context, actorID, postID string) dtos.OpResult {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin() {
		return dtos.Fail(constants.ReasonForbidden)
	}

	if err := s.reports.DeleteForPost(ctx, postID); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	s.Invalidate()
	return dtos.Ok()
}

/* ---------- Listings ---------- */

// ListPosts serves the board. The unordered collection is cached; ordering is
// a pure view-level decision applied per request.
func (s *DiscussionService) ListPosts(ctx context.Context, sortMode string) ([]dtos.PostView, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(postsCacheKey); found {
			if views, ok := decodeCachedBoard(cached); ok {
				if s.metrics != nil {
					s.metrics.CacheHitsTotal.WithLabelValues("posts").Inc()
				}
				return OrderPosts(views, sortMode), nil
			}
		}
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.WithLabelValues("posts").Inc()
		}
	}

	views, err := s.fetchBoard(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(postsCacheKey, views, postsCacheTTL)
	}
	return OrderPosts(views, sortMode), nil
}

// decodeCachedBoard recovers the typed board from a cache value. The
// in-process cache hands back the slice it was given; the Redis backend
// round-trips through JSON and loses the concrete type, so re-decode in
// that case. Anything undecodable counts as a miss.
func decodeCachedBoard(cached interface{}) ([]dtos.PostView, bool) {
	if views, ok := cached.([]dtos.PostView); ok {
		return views, true
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return nil, false
	}
	var views []dtos.PostView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false
	}
	return views, true
}

func (s *DiscussionService) fetchBoard(ctx context.Context) ([]dtos.PostView, error) {
	rows, err := s.posts.ListAggregates(ctx)
	if err != nil {
		return nil, err
	}

	verifications, err := s.posts.ListVerifications(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.posts.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	votesByPost := make(map[string][]dtos.VerificationView)
	for _, v := range verifications {
		votesByPost[v.PostID] = append(votesByPost[v.PostID], dtos.VerificationView{
			UserID: v.UserID,
			Status: string(v.Status),
		})
	}
	reportsByPost := make(map[string][]dtos.ReportView)
	for i := range reports {
		r := &reports[i]
		reportsByPost[r.PostID] = append(reportsByPost[r.PostID], buildReportView(r))
	}

	views := make([]dtos.PostView, 0, len(rows))
	for _, row := range rows {
		view := dtos.PostView{
			ID:           row.ID,
			AuthorID:     row.AuthorID,
			Title:        row.Title,
			Content:      row.Content,
			Category:     row.Category,
			IsPinned:     row.IsPinned,
			CreatedAt:    row.CreatedAt,
			CommentCount: row.CommentCount,
			UpvoteCount:  row.UpvoteCount,
		}
		if row.AuthorUsername != nil {
			view.AuthorUsername = *row.AuthorUsername
		}
		view.Verifications = votesByPost[row.ID]
		view.Reports = reportsByPost[row.ID]
		tallyVerifications(&view)
		views = append(views, view)
	}
	return views, nil
}

func tallyVerifications(view *dtos.PostView) {
	for _, v := range view.Verifications {
		switch constants.VerificationStatus(v.Status) {
		case constants.VerificationTrue:
			view.TrueVotes++
		case constants.VerificationQuestionable:
			view.Questionable++
		}
	}
}

// OrderPosts puts pinned posts first in fetch order, then sorts the rest by
// the requested mode. Pure function over the collection.
func OrderPosts(views []dtos.PostView, sortMode string) []dtos.PostView {
	pinned := make([]dtos.PostView, 0, len(views))
	unpinned := make([]dtos.PostView, 0, len(views))
	for _, v := range views {
		if v.IsPinned {
			pinned = append(pinned, v)
		} else {
			unpinned = append(unpinned, v)
		}
	}

	switch sortMode {
	case SortPopular:
		sort.SliceStable(unpinned, func(i, j int) bool {
			return unpinned[i].UpvoteCount > unpinned[j].UpvoteCount
		})
	default: // newest
		sort.SliceStable(unpinned, func(i, j int) bool {
			return unpinned[i].CreatedAt.After(unpinned[j].CreatedAt)
		})
	}

	return append(pinned, unpinned...)
}

// GetPostByID builds the full projection for one post.
func (s *DiscussionService) GetPostByID(ctx context.Context, postID string) (*dtos.PostView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	upvotes, err := s.votes.CountUpvotes(ctx, postID)
	if err != nil {
		return nil, err
	}
	verifications, err := s.votes.ListVerifications(ctx, postID)
	if err != nil {
		return nil, err
	}

	view := dtos.PostView{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: post.Author.Username,
		Title:          post.Title,
		Content:        post.Content,
		Category:       post.Category,
		IsPinned:       post.IsPinned,
		CreatedAt:      post.CreatedAt,
		CommentCount:   int64(len(comments)),
		UpvoteCount:    upvotes,
	}
	for _, v := range verifications {
		view.Verifications = append(view.Verifications, dtos.VerificationView{
			UserID: v.UserID,
			Status: string(v.Status),
		})
	}
	for i := range post.Reports {
		view.Reports = append(view.Reports, buildReportView(&post.Reports[i]))
	}
	tallyVerifications(&view)
	return &view, nil
}
