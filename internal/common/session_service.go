package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"panduankota/backend/internal/constants"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionData is a logged-in user's server-side session.
type SessionData struct {
	SessionID string                  `json:"session_id"`
	UserID    string                  `json:"user_id"`
	Username  string                  `json:"username"`
	Role      constants.Role          `json:"role"`
	Status    constants.ProfileStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	ExpiresAt time.Time               `json:"expires_at"`
}

// SessionService manages user sessions in Redis. Alongside each session it
// maintains a per-user index set so blocking a user can revoke every live
// session at once.
type SessionService struct {
	redis *redis.Client
}

func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{redis: redis}
}

func sessionKey(id string) string   { return "session:" + id }
func userIndexKey(id string) string { return "user_sessions:" + id }

// CreateSession creates a new session for a user.
func (s *SessionService) CreateSession(ctx context.Context, userID, username string, role constants.Role, status constants.ProfileStatus) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID: sessionID,
		UserID:    userID,
		Username:  username,
		Role:      role,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), data, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	// Index for revocation. TTL matches the session so the set cannot
	// outlive its members by much.
	if err := s.redis.SAdd(ctx, userIndexKey(userID), sessionID).Err(); err != nil {
		return "", fmt.Errorf("failed to index session: %w", err)
	}
	s.redis.Expire(ctx, userIndexKey(userID), sessionTTL)

	return sessionID, nil
}

// GetSession retrieves a session from Redis.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.DeleteSession(ctx, sessionID)
		return nil, errors.New("session expired")
	}

	return &session, nil
}

// DeleteSession deletes one session.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err == nil {
		s.redis.SRem(ctx, userIndexKey(session.UserID), sessionID)
	}
	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RevokeUserSessions logs a user out everywhere. Called when an admin blocks
// an account.
func (s *SessionService) RevokeUserSessions(ctx context.Context, userID string) error {
	ids, err := s.redis.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	for _, id := range ids {
		if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
			return fmt.Errorf("failed to revoke session %s: %w", id, err)
		}
	}

	if err := s.redis.Del(ctx, userIndexKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session index: %w", err)
	}
	return nil
}

// RefreshSession extends the session expiration.
func (s *SessionService) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(sessionTTL)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	return nil
}
