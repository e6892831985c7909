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

// Admin routes sit behind IsAdminMiddleware; the services still re-check the
// actor's role so a misconfigured route cannot widen access.

// ListUsersHandler handles GET /api/v1/admin/users
func ListUsersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		users, res := deps.Services.Moderation.ListUsers(r.Context(), claims.UserID())
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "users", users)
	}
}

// BlockUserHandler handles POST /api/v1/admin/users/{id}/block
func BlockUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Moderation.BlockUser(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "user_blocked", nil)
	}
}

// UnblockUserHandler handles POST /api/v1/admin/users/{id}/unblock
func UnblockUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Moderation.UnblockUser(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "user_unblocked", nil)
	}
}

// MuteUserHandler handles POST /api/v1/admin/users/{id}/mute
func MuteUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.MuteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonReasonRequired, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Moderation.MuteForDuration(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.Duration); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "user_muted", nil)
	}
}

// UnmuteUserHandler handles POST /api/v1/admin/users/{id}/unmute
func UnmuteUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Moderation.UnmuteUser(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "user_unmuted", nil)
	}
}

// WarnUserHandler handles POST /api/v1/admin/users/{id}/warn
func WarnUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.WarnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonContentRequired, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Moderation.WarnUser(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.Message, req.Title); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "user_warned", nil, http.StatusCreated)
	}
}

// AcknowledgeWarningHandler handles POST /api/v1/profile/warnings/{id}/ack.
// Authenticated but not admin-only: users acknowledge their own warnings.
func AcknowledgeWarningHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		if res := deps.Services.Moderation.AcknowledgeWarning(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "warning_acknowledged", nil)
	}
}

// ListPendingGuidesHandler handles GET /api/v1/admin/guides/pending
func ListPendingGuidesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		guides, res := deps.Services.Guides.PendingGuides(r.Context(), claims.UserID())
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "pending_guides", guides)
	}
}

// ApproveGuideHandler handles POST /api/v1/admin/guides/{id}/approve
func ApproveGuideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Guides.ApproveGuide(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "guide_approved", nil)
	}
}

// RejectGuideHandler handles POST /api/v1/admin/guides/{id}/reject
func RejectGuideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Guides.RejectGuide(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "guide_rejected", nil)
	}
}

// TogglePinHandler handles POST /api/v1/admin/posts/{id}/pin
func TogglePinHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Discussion.TogglePin(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "pin_toggled", nil)
	}
}

// ResolveReportsHandler handles POST /api/v1/admin/posts/{id}/reports/resolve
func ResolveReportsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		if res := deps.Services.Discussion.ResolveReports(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "reports_resolved", nil)
	}
}
