package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"panduankota/backend/internal/auth"
	"panduankota/backend/internal/common"
	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/models/dtos"
)

// ListPostsHandler handles GET /api/v1/posts?sort=popular|newest
func ListPostsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		posts, err := deps.Services.Discussion.ListPosts(r.Context(), r.URL.Query().Get("sort"))
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonStoreFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "posts", posts)
	}
}

// GetPostHandler handles GET /api/v1/posts/{id}
func GetPostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		post, err := deps.Services.Discussion.GetPostByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonNotFound, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "post", post)
	}
}

// CreatePostHandler handles POST /api/v1/posts
func CreatePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var sub dtos.PostSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			common.RespondError(w, initTime, constants.ReasonTitleRequired, http.StatusBadRequest)
			return
		}

		post, res := deps.Services.Discussion.AddPost(r.Context(), claims.UserID(), sub)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "post_created", post, http.StatusCreated)
	}
}

// UpdatePostHandler handles PUT /api/v1/posts/{id}
func UpdatePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var sub dtos.PostSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			common.RespondError(w, initTime, constants.ReasonTitleRequired, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Discussion.UpdatePost(r.Context(), claims.UserID(), chi.URLParam(r, "id"), sub); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "post_updated", nil)
	}
}

// DeletePostHandler handles DELETE /api/v1/posts/{id}
func DeletePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		if res := deps.Services.Discussion.DeletePost(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "post_deleted", nil)
	}
}

// ListCommentsHandler handles GET /api/v1/posts/{id}/comments
func ListCommentsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		comments, err := deps.Services.Discussion.GetComments(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonStoreFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "comments", comments)
	}
}

// CreateCommentHandler handles POST /api/v1/posts/{id}/comments
func CreateCommentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonContentRequired, http.StatusBadRequest)
			return
		}

		comment, res := deps.Services.Discussion.AddComment(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.Content)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "comment_created", comment, http.StatusCreated)
	}
}

// UpdateCommentHandler handles PUT /api/v1/comments/{id}
func UpdateCommentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonContentRequired, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Discussion.UpdateComment(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.Content); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "comment_updated", nil)
	}
}

// DeleteCommentHandler handles DELETE /api/v1/comments/{id}
func DeleteCommentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		if res := deps.Services.Discussion.DeleteComment(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "comment_deleted", nil)
	}
}

// ToggleUpvoteHandler handles POST /api/v1/posts/{id}/upvote
func ToggleUpvoteHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		nowUpvoted, res := deps.Services.Discussion.ToggleUpvote(r.Context(), claims.UserID(), chi.URLParam(r, "id"))
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "upvote_toggled", map[string]bool{"upvoted": nowUpvoted})
	}
}

// AddVerificationHandler handles POST /api/v1/posts/{id}/verify
func AddVerificationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.VerificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonCategoryInvalid, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Discussion.AddVerification(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.Status); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "verification_recorded", nil)
	}
}

// ReportPostHandler handles POST /api/v1/posts/{id}/report
func ReportPostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.ReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonReasonRequired, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Discussion.ReportPost(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.Reason); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "report_filed", nil, http.StatusCreated)
	}
}
