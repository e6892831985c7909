package api

import (
	"encoding/json"
	"net/http"
	"time"

	"panduankota/backend/internal/auth"
	"panduankota/backend/internal/common"
	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/models/dtos"
)

// RegisterHandler handles POST /api/v1/auth/register
func RegisterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonEmailRequired, http.StatusBadRequest)
			return
		}

		profile, res := deps.Services.Account.Register(r.Context(), req)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "registered", profile, http.StatusCreated)
	}
}

// LoginHandler handles POST /api/v1/auth/login
func LoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonInvalidLogin, http.StatusBadRequest)
			return
		}

		session, res := deps.Services.Account.Login(r.Context(), req)
		if !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "logged_in", session)
	}
}

// LogoutHandler handles POST /api/v1/auth/logout
func LogoutHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		sessionID := r.Header.Get("X-Session-Id")
		if sessionID == "" {
			if claims, ok := auth.GetUserClaims(r.Context()).(*auth.SessionClaims); ok && claims != nil {
				sessionID = claims.SessionID()
			}
		}

		deps.Services.Account.Logout(r.Context(), sessionID)
		common.RespondSuccess(w, initTime, "logged_out", nil)
	}
}

// GetProfileHandler handles GET /api/v1/profile
func GetProfileHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		profile, err := deps.Services.Account.CurrentProfile(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonNotFound, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "profile", profile)
	}
}

// UpdateUsernameHandler handles PUT /api/v1/profile/username
func UpdateUsernameHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateUsernameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonUsernameRequired, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Account.UpdateUsername(r.Context(), claims.UserID(), req); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "username_updated", nil)
	}
}

// UpdatePasswordHandler handles PUT /api/v1/profile/password
func UpdatePasswordHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.UpdatePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ReasonPasswordLength, http.StatusBadRequest)
			return
		}

		if res := deps.Services.Account.UpdatePassword(r.Context(), claims.UserID(), req); !res.Success {
			common.RespondError(w, initTime, res.Error, common.ReasonStatus(res.Error))
			return
		}

		common.RespondSuccess(w, initTime, "password_updated", nil)
	}
}

// PendingWarningHandler handles GET /api/v1/profile/warnings/pending
func PendingWarningHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ReasonUnauthorized, http.StatusUnauthorized)
			return
		}

		warning, err := deps.Services.Moderation.PendingWarning(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, constants.ReasonStoreFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "pending_warning", warning)
	}
}
