package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"panduankota/backend/internal/common"
	"panduankota/backend/internal/constants"
)

func TestBlockUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	res := env.moderation.BlockUser(ctx, admin.ID, target.ID)
	if !res.Success {
		t.Fatalf("expected block to succeed, got %s", res.Error)
	}

	got, err := env.profiles.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("failed to reload target: %v", err)
	}
	if got.Status != constants.ProfileBlocked {
		t.Errorf("expected status blocked, got %s", got.Status)
	}

	// Blocking must drop the target's live sessions.
	if len(env.sessions.revoked) != 1 || env.sessions.revoked[0] != target.ID {
		t.Errorf("expected sessions revoked for %s, got %v", target.ID, env.sessions.revoked)
	}
}

func TestBlockUserForbiddenForNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "user", constants.RoleUser)
	target := env.seedUser(t, "target", constants.RoleUser)

	res := env.moderation.BlockUser(ctx, user.ID, target.ID)
	if res.Success {
		t.Fatal("expected block by non-admin to fail")
	}
	if res.Error != constants.ReasonForbidden {
		t.Errorf("expected reason %s, got %s", constants.ReasonForbidden, res.Error)
	}

	got, _ := env.profiles.GetByID(ctx, target.ID)
	if got.Status != constants.ProfileActive {
		t.Errorf("target status changed despite forbidden result: %s", got.Status)
	}
}

func TestUnblockRestoresActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	env.moderation.BlockUser(ctx, admin.ID, target.ID)
	if res := env.moderation.UnblockUser(ctx, admin.ID, target.ID); !res.Success {
		t.Fatalf("expected unblock to succeed, got %s", res.Error)
	}

	got, _ := env.profiles.GetByID(ctx, target.ID)
	if got.Status != constants.ProfileActive {
		t.Errorf("expected status active, got %s", got.Status)
	}
}

func TestMuteDeadlinePresets(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		duration string
		want     time.Time
	}{
		{"24h", now.Add(24 * time.Hour)},
		{"3d", now.Add(72 * time.Hour)},
		{"7d", now.Add(168 * time.Hour)},
		{"perm", time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := muteDeadline(tt.duration, now)
		if err != nil {
			t.Fatalf("preset %s errored: %v", tt.duration, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("preset %s: expected %v, got %v", tt.duration, tt.want, got)
		}
	}

	if _, err := muteDeadline("2weeks", now); err == nil {
		t.Error("expected unknown preset to error")
	}
}

func TestMuteUnknownPresetRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	res := env.moderation.MuteForDuration(ctx, admin.ID, target.ID, "2weeks")
	if res.Success {
		t.Fatal("expected unknown preset to fail")
	}
	if res.Error != constants.ReasonDurationInvalid {
		t.Errorf("expected %s, got %s", constants.ReasonDurationInvalid, res.Error)
	}

	// A bad client value is a validation failure, not a server error.
	if status := common.ReasonStatus(res.Error); status != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid duration, got %d", status)
	}

	fresh, err := env.profiles.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if fresh.MutedUntil != nil {
		t.Error("expected failed mute to leave target unmuted")
	}
}

func TestMuteAndUnmute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	if res := env.moderation.MuteForDuration(ctx, admin.ID, target.ID, "24h"); !res.Success {
		t.Fatalf("expected mute to succeed, got %s", res.Error)
	}

	got, _ := env.profiles.GetByID(ctx, target.ID)
	if got.MutedUntil == nil {
		t.Fatal("expected muted_until to be set")
	}
	if !IsMuted(got) {
		t.Error("expected profile to report as muted")
	}

	if res := env.moderation.UnmuteUser(ctx, admin.ID, target.ID); !res.Success {
		t.Fatalf("expected unmute to succeed, got %s", res.Error)
	}
	got, _ = env.profiles.GetByID(ctx, target.ID)
	if got.MutedUntil != nil {
		t.Errorf("expected muted_until cleared, got %v", got.MutedUntil)
	}
}

func TestPermanentMuteSentinel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	if res := env.moderation.MuteForDuration(ctx, admin.ID, target.ID, "perm"); !res.Success {
		t.Fatalf("expected permanent mute to succeed, got %s", res.Error)
	}

	got, _ := env.profiles.GetByID(ctx, target.ID)
	if got.MutedUntil == nil {
		t.Fatal("expected muted_until to be set")
	}
	if got.MutedUntil.Year() < 9000 {
		t.Errorf("expected far-future sentinel, got %v", got.MutedUntil)
	}
	if !IsMuted(got) {
		t.Error("expected permanently muted profile to report as muted")
	}

	view := buildProfileView(got)
	if !view.MutePermanent {
		t.Error("expected profile view to flag the mute as permanent")
	}
}

func TestExpiredMuteNotEnforced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	past := time.Now().Add(-time.Hour)
	if res := env.moderation.MuteUser(ctx, admin.ID, target.ID, &past); !res.Success {
		t.Fatalf("expected mute to succeed, got %s", res.Error)
	}

	got, _ := env.profiles.GetByID(ctx, target.ID)
	if IsMuted(got) {
		t.Error("expected lapsed mute not to count as muted")
	}
}

func TestWarningsAreAppendOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	if res := env.moderation.WarnUser(ctx, admin.ID, target.ID, "first", nil); !res.Success {
		t.Fatalf("first warn failed: %s", res.Error)
	}
	if res := env.moderation.WarnUser(ctx, admin.ID, target.ID, "second", nil); !res.Success {
		t.Fatalf("second warn failed: %s", res.Error)
	}

	warnings, err := env.warnings.ListForProfile(ctx, target.ID)
	if err != nil {
		t.Fatalf("failed to list warnings: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
}

func TestWarnRequiresMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)

	res := env.moderation.WarnUser(ctx, admin.ID, target.ID, "", nil)
	if res.Success {
		t.Fatal("expected warn with empty message to fail")
	}
	if res.Error != constants.ReasonContentRequired {
		t.Errorf("expected reason %s, got %s", constants.ReasonContentRequired, res.Error)
	}
}

func TestAcknowledgeWarningOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	target := env.seedUser(t, "target", constants.RoleUser)
	other := env.seedUser(t, "other", constants.RoleUser)

	env.moderation.WarnUser(ctx, admin.ID, target.ID, "behave", nil)

	pending, err := env.moderation.PendingWarning(ctx, target.ID)
	if err != nil || pending == nil {
		t.Fatalf("expected a pending warning, got %v / %v", pending, err)
	}

	// Someone else cannot acknowledge it.
	if res := env.moderation.AcknowledgeWarning(ctx, other.ID, pending.ID); res.Success {
		t.Fatal("expected acknowledgement by non-owner to fail")
	}

	if res := env.moderation.AcknowledgeWarning(ctx, target.ID, pending.ID); !res.Success {
		t.Fatalf("expected acknowledgement by owner to succeed, got %s", res.Error)
	}

	pending, err = env.moderation.PendingWarning(ctx, target.ID)
	if err != nil {
		t.Fatalf("pending warning lookup failed: %v", err)
	}
	if pending != nil {
		t.Errorf("expected no pending warning after acknowledgement, got %+v", pending)
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin", constants.RoleAdmin)
	user := env.seedUser(t, "user", constants.RoleUser)

	if _, res := env.moderation.ListUsers(ctx, user.ID); res.Success {
		t.Fatal("expected user listing by non-admin to fail")
	}

	users, res := env.moderation.ListUsers(ctx, admin.ID)
	if !res.Success {
		t.Fatalf("expected user listing to succeed, got %s", res.Error)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
