package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"panduankota/backend/internal/auth"
	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/db/repositories"
	"panduankota/backend/internal/logging"
	"panduankota/backend/internal/metrics"
	"panduankota/backend/internal/models/dtos"
	gormModels "panduankota/backend/internal/models/gorm"
)

const minPasswordLength = 6

// sessionStore is the slice of the session service the account flow needs.
type sessionStore interface {
	CreateSession(ctx context.Context, userID, username string, role constants.Role, status constants.ProfileStatus) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	RevokeUserSessions(ctx context.Context, userID string) error
}

// AccountService handles registration, login and self-service profile edits.
type AccountService struct {
	profiles *repositories.ProfileRepository
	sessions sessionStore
	metrics  *metrics.MetricsRegistry
}

func NewAccountService(
	profiles *repositories.ProfileRepository,
	sessions sessionStore,
	metricsReg *metrics.MetricsRegistry,
) *AccountService {
	return &AccountService{
		profiles: profiles,
		sessions: sessions,
		metrics:  metricsReg,
	}
}

func (s *AccountService) Register(ctx context.Context, req dtos.RegisterRequest) (*dtos.ProfileView, dtos.OpResult) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if username == "" {
		return nil, dtos.Fail(constants.ReasonUsernameRequired)
	}
	if email == "" {
		return nil, dtos.Fail(constants.ReasonEmailRequired)
	}
	if len(req.Password) < minPasswordLength {
		return nil, dtos.Fail(constants.ReasonPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	profile := &gormModels.Profile{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         constants.RoleUser,
		Status:       constants.ProfileActive,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if repositories.IsUniqueViolation(err, "email") {
			return nil, dtos.Fail(constants.ReasonEmailExists)
		}
		if repositories.IsUniqueViolation(err, "username") {
			return nil, dtos.Fail(constants.ReasonUsernameTaken)
		}
		logging.Error("profile create failed", "email", email, "error", err.Error())
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	if s.metrics != nil {
		s.metrics.UsersRegisteredTotal.Inc()
	}

	view := buildProfileView(profile)
	return &view, dtos.Ok()
}

// Login authenticates by email and password, hands out a signed JWT and a
// server-side session. A blocked account authenticates but gets no session.
func (s *AccountService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.SessionResponse, dtos.OpResult) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dtos.Fail(constants.ReasonInvalidLogin)
		}
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, dtos.Fail(constants.ReasonInvalidLogin)
	}
	if profile.Status == constants.ProfileBlocked {
		return nil, dtos.Fail(constants.ReasonBlocked)
	}

	token, err := auth.SignToken(profile.ID, profile.Username, profile.Role)
	if err != nil {
		logging.Error("token signing failed", "user_id", profile.ID, "error", err.Error())
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	sessionID, err := s.sessions.CreateSession(ctx, profile.ID, profile.Username, profile.Role, profile.Status)
	if err != nil {
		logging.Error("session create failed", "user_id", profile.ID, "error", err.Error())
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	return &dtos.SessionResponse{
		Token:     token,
		SessionID: sessionID,
		Profile:   buildProfileView(profile),
	}, dtos.Ok()
}

func (s *AccountService) Logout(ctx context.Context, sessionID string) dtos.OpResult {
	if sessionID == "" {
		return dtos.Ok()
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		logging.Warn("session delete failed", "session_id", sessionID, "error", err.Error())
	}
	return dtos.Ok()
}

// UpdateUsername renames the account. Uniqueness is enforced by the store's
// constraint, not a read-then-write check.
func (s *AccountService) UpdateUsername(ctx context.Context, userID string, req dtos.UpdateUsernameRequest) dtos.OpResult {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return dtos.Fail(constants.ReasonUsernameRequired)
	}

	if err := s.profiles.UpdateUsername(ctx, userID, username); err != nil {
		if repositories.IsUniqueViolation(err, "username") {
			return dtos.Fail(constants.ReasonUsernameTaken)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dtos.Fail(constants.ReasonNotFound)
		}
		return dtos.Fail(constants.ReasonStoreFailure)
	}
	return dtos.Ok()
}

func (s *AccountService) UpdatePassword(ctx context.Context, userID string, req dtos.UpdatePasswordRequest) dtos.OpResult {
	if req.NewPassword != req.ConfirmPassword {
		return dtos.Fail(constants.ReasonPasswordMismatch)
	}
	if len(req.NewPassword) < minPasswordLength {
		return dtos.Fail(constants.ReasonPasswordLength)
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return dtos.Fail(constants.ReasonUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return dtos.Fail(constants.ReasonCurrentPasswordIncorrect)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}
	if err := s.profiles.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	// Password changes drop every other live session for the account.
	if err := s.sessions.RevokeUserSessions(ctx, userID); err != nil {
		logging.Warn("session revocation failed", "user_id", userID, "error", err.Error())
	}
	return dtos.Ok()
}

// CurrentProfile returns the caller's own profile with its warning history.
func (s *AccountService) CurrentProfile(ctx context.Context, userID string) (*dtos.ProfileView, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := buildProfileView(profile)
	return &view, nil
}
