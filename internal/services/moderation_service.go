package services

import (
	"context"
	"fmt"
	"time"

	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/db/repositories"
	"panduankota/backend/internal/logging"
	"panduankota/backend/internal/metrics"
	"panduankota/backend/internal/models/dtos"
	gormModels "panduankota/backend/internal/models/gorm"
)

// sessionRevoker is the slice of the session store moderation needs: blocking
// an account logs it out everywhere.
type sessionRevoker interface {
	RevokeUserSessions(ctx context.Context, userID string) error
}

// ModerationService owns the user sanction lifecycle: block/unblock,
// mute/unmute, warn/acknowledge. Admin-only operations return an explicit
// forbidden result to unauthorized callers.
type ModerationService struct {
	profiles *repositories.ProfileRepository
	warnings *repositories.WarningRepository
	sessions sessionRevoker
	metrics  *metrics.MetricsRegistry
}

func NewModerationService(
	profiles *repositories.ProfileRepository,
	warnings *repositories.WarningRepository,
	sessions sessionRevoker,
	metricsReg *metrics.MetricsRegistry,
) *ModerationService {
	return &ModerationService{
		profiles: profiles,
		warnings: warnings,
		sessions: sessions,
		metrics:  metricsReg,
	}
}

func (s *ModerationService) requireAdmin(ctx context.Context, actorID string) (*gormModels.Profile, string) {
	actor, err := s.profiles.GetByID(ctx, actorID)
	if err != nil {
		return nil, constants.ReasonUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, constants.ReasonForbidden
	}
	return actor, ""
}

// BlockUser sets the target's status to blocked and revokes every live
// session. A blocked account cannot authenticate at all.
func (s *ModerationService) BlockUser(ctx context.Context, actorID, targetID string) dtos.OpResult {
	if _, reason := s.requireAdmin(ctx, actorID); reason != "" {
		return dtos.Fail(reason)
	}

	if err := s.profiles.UpdateStatus(ctx, targetID, constants.ProfileBlocked); err != nil {
		logging.Error("block user failed", "target_id", targetID, "error", err.Error())
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	if s.sessions != nil {
		if err := s.sessions.RevokeUserSessions(ctx, targetID); err != nil {
			// The block itself stuck; session keys expire on their own.
			logging.Warn("session revocation failed after block", "target_id", targetID, "error", err.Error())
		}
	}

	logging.Info("user blocked", "target_id", targetID, "actor_id", actorID)
	return dtos.Ok()
}

func (s *ModerationService) UnblockUser(ctx context.Context, actorID, targetID string) dtos.OpResult {
	if _, reason := s.requireAdmin(ctx, actorID); reason != "" {
		return dtos.Fail(reason)
	}

	if err := s.profiles.UpdateStatus(ctx, targetID, constants.ProfileActive); err != nil {
		logging.Error("unblock user failed", "target_id", targetID, "error", err.Error())
		return dtos.Fail(constants.ReasonStoreFailure)
	}
	return dtos.Ok()
}

// MuteUser silences a user until the given time. A nil until unmutes.
func (s *ModerationService) MuteUser(ctx context.Context, actorID, targetID string, until *time.Time) dtos.OpResult {
	if _, reason := s.requireAdmin(ctx, actorID); reason != "" {
		return dtos.Fail(reason)
	}

	if err := s.profiles.UpdateMutedUntil(ctx, targetID, until); err != nil {
		logging.Error("mute user failed", "target_id", targetID, "error", err.Error())
		return dtos.Fail(constants.ReasonStoreFailure)
	}
	return dtos.Ok()
}

// MuteForDuration applies one of the admin panel presets.
func (s *ModerationService) MuteForDuration(ctx context.Context, actorID, targetID, duration string) dtos.OpResult {
	until, err := muteDeadline(duration, time.Now())
	if err != nil {
		return dtos.Fail(constants.ReasonDurationInvalid)
	}
	return s.MuteUser(ctx, actorID, targetID, until)
}

func (s *ModerationService) UnmuteUser(ctx context.Context, actorID, targetID string) dtos.OpResult {
	return s.MuteUser(ctx, actorID, targetID, nil)
}

// muteDeadline resolves a preset to an absolute timestamp. "perm" maps to the
// far-future sentinel so the client renders "permanent" instead of a countdown.
func muteDeadline(duration string, now time.Time) (*time.Time, error) {
	var until time.Time
	switch duration {
	case "24h":
		until = now.Add(24 * time.Hour)
	case "3d":
		until = now.Add(3 * 24 * time.Hour)
	case "7d":
		until = now.Add(7 * 24 * time.Hour)
	case "perm":
		until = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	default:
		return nil, fmt.Errorf("unknown mute duration: %q", duration)
	}
	return &until, nil
}

// WarnUser appends a warning row to the target's list. Appends are
// independent inserts; concurrent warns never lose each other.
func (s *ModerationService) WarnUser(ctx context.Context, actorID, targetID, message string, title *string) dtos.OpResult {
	if _, reason := s.requireAdmin(ctx, actorID); reason != "" {
		return dtos.Fail(reason)
	}
	if message == "" {
		return dtos.Fail(constants.ReasonContentRequired)
	}

	warning := &gormModels.UserWarning{
		ProfileID: targetID,
		Title:     title,
		Message:   message,
	}
	if err := s.warnings.Append(ctx, warning); err != nil {
		logging.Error("warn user failed", "target_id", targetID, "error", err.Error())
		return dtos.Fail(constants.ReasonStoreFailure)
	}

	if s.metrics != nil {
		s.metrics.WarningsIssuedTotal.Inc()
	}
	logging.Info("warning issued", "target_id", targetID, "actor_id", actorID)
	return dtos.Ok()
}

// AcknowledgeWarning flips one warning, owner-only.
func (s *ModerationService) AcknowledgeWarning(ctx context.Context, userID, warningID string) dtos.OpResult {
	if err := s.warnings.Acknowledge(ctx, userID, warningID); err != nil {
		return dtos.Fail(constants.ReasonNotFound)
	}
	return dtos.Ok()
}

// PendingWarning returns the oldest unacknowledged warning for a user, or nil.
func (s *ModerationService) PendingWarning(ctx context.Context, userID string) (*dtos.WarningView, error) {
	warning, err := s.warnings.FirstPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if warning == nil {
		return nil, nil
	}
	view := buildWarningView(warning)
	return &view, nil
}

// ListUsers feeds the admin moderation panel.
func (s *ModerationService) ListUsers(ctx context.Context, actorID string) ([]dtos.ProfileView, dtos.OpResult) {
	if _, reason := s.requireAdmin(ctx, actorID); reason != "" {
		return nil, dtos.Fail(reason)
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, dtos.Fail(constants.ReasonStoreFailure)
	}

	views := make([]dtos.ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, buildProfileView(&profiles[i]))
	}
	return views, dtos.Ok()
}
