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

// ListGuidesHandler handles GET /api/v1/guides. The "tab" query selects the
// public listing: approved (default) or netizen. Both serve approved guides
// only; the community tab lives behind authentication.
func ListGuidesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var (
			guides []dtos.GuideView
			err    error
		)
		switch r.URL.Query().Get("tab") {
		case "netizen":
			guides, err = deps.Services.Guides.NetizenGuides(r.Context())
		default:
			guides, err = deps.Services.Guides.ApprovedGuides(r.Context())
		}
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonStoreFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "guides", guides)
	}
}

// ListCommunityGuidesHandler handles GET /api/v1/guides/community. The caller
// sees their own submissions in every state; admins get the audit view.
func ListCommunityGuidesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		guides, err := deps.Services.Guides.UserGuides(r.Context(), claims.UserID(), claims.IsAdmin())
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonStoreFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "guides", guides)
	}
}

// GetGuideHandler handles GET /api/v1/guides/{id}
func GetGuideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		guideID := chi.URLParam(r, "id")

		viewerID := ""
		viewerIsAdmin := false
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			viewerID = claims.UserID()
			viewerIsAdmin = claims.IsAdmin()
		}

		guide, res := deps.Services.Guides.GetGuide(r.Context(), viewerID, guideID, viewerIsAdmin)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "guide", guide)
	}
}

// IncrementGuideViewHandler handles POST /api/v1/guides/{id}/view. Fire and
// forget: always responds ok.
func IncrementGuideViewHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		deps.Services.Guides.IncrementView(r.Context(), chi.URLParam(r, "id"))
		common.RespondSuccess(w, initTime, "ok", nil)
	}
}

// CreateGuideHandler handles POST /api/v1/guides
func CreateGuideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var sub dtos.GuideSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			common.RespondError(w, initTime, constants.ReasonTitleRequired, http.StatusBadRequest)
			return
		}

		guide, res := deps.Services.Guides.AddGuide(r.Context(), claims.UserID(), sub)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "guide_created", guide, http.StatusCreated)
	}
}

// UpdateGuideHandler handles PUT /api/v1/guides/{id}
func UpdateGuideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var sub dtos.GuideSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			common.RespondError(w, initTime, constants.ReasonTitleRequired, http.StatusBadRequest)
			return
		}

		guide, res := deps.Services.Guides.UpdateGuide(r.Context(), claims.UserID(), chi.URLParam(r, "id"), sub)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "guide_updated", guide)
	}
}

// DeleteGuideHandler handles DELETE /api/v1/guides/{id}
func DeleteGuideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		if res := deps.Services.Guides.DeleteGuide(r.Context(), claims.UserID(), chi.URLParam(r, "id")); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "guide_deleted", nil)
	}
}

// ToggleFavoriteHandler handles POST /api/v1/guides/{id}/favorite
func ToggleFavoriteHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		nowFavorite, res := deps.Services.Guides.ToggleFavorite(r.Context(), claims.UserID(), chi.URLParam(r, "id"))
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "favorite_toggled", map[string]bool{"favorited": nowFavorite})
	}
}

// ListFavoritesHandler handles GET /api/v1/guides/favorites
func ListFavoritesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		guides, err := deps.Services.Guides.FavoriteGuides(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonStoreFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "favorites", guides)
	}
}
