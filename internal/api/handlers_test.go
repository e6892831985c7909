package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"panduankota/backend/internal/auth"
	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/db/repositories"
	"panduankota/backend/internal/models/dtos"
	gormModels "panduankota/backend/internal/models/gorm"
	"panduankota/backend/internal/services"
)

type stubSessionStore struct{}

func (stubSessionStore) CreateSession(ctx context.Context, userID, username string, role constants.Role, status constants.ProfileStatus) (string, error) {
	return "session-" + userID, nil
}
func (stubSessionStore) DeleteSession(ctx context.Context, sessionID string) error   { return nil }
func (stubSessionStore) RevokeUserSessions(ctx context.Context, userID string) error { return nil }

func newTestDeps(t *testing.T) *Dependencies {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// In-memory sqlite gives every pool connection its own database;
	// a single connection keeps all goroutines on the same one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&gormModels.Profile{},
		&gormModels.UserWarning{},
		&gormModels.Guide{},
		&gormModels.UserFavorite{},
		&gormModels.Post{},
		&gormModels.PostComment{},
		&gormModels.PostUpvote{},
		&gormModels.PostVerification{},
		&gormModels.PostReport{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	repos := &Repositories{
		Profiles:  repositories.NewProfileRepository(db, nil),
		Warnings:  repositories.NewWarningRepository(db),
		Guides:    repositories.NewGuideRepository(db, nil),
		Favorites: repositories.NewFavoriteRepository(db),
		Posts:     repositories.NewPostRepository(db, nil),
		Comments:  repositories.NewCommentRepository(db),
		Votes:     repositories.NewVoteRepository(db),
		Reports:   repositories.NewReportRepository(db),
	}

	sessions := stubSessionStore{}
	moderation := services.NewModerationService(repos.Profiles, repos.Warnings, sessions, nil)

	svcs := &Services{
		Account:    services.NewAccountService(repos.Profiles, sessions, nil),
		Moderation: moderation,
		Guides:     services.NewGuideService(repos.Guides, repos.Favorites, repos.Profiles, nil),
		Discussion: services.NewDiscussionService(
			repos.Posts, repos.Comments, repos.Votes, repos.Reports,
			repos.Profiles, moderation, nil, nil,
		),
	}

	return &Dependencies{Repo: repos, Services: svcs}
}

func TestRegisterHandler(t *testing.T) {
	deps := newTestDeps(t)
	handler := RegisterHandler(deps)

	body, _ := json.Marshal(dtos.RegisterRequest{
		Email:    "budi@example.com",
		Username: "budi",
		Password: "rahasia1",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status ok, got %s", response.Status)
	}
}

func TestRegisterHandlerShortPassword(t *testing.T) {
	deps := newTestDeps(t)
	handler := RegisterHandler(deps)

	body, _ := json.Marshal(dtos.RegisterRequest{
		Email:    "budi@example.com",
		Username: "budi",
		Password: "123",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var response dtos.APIResponse
	_ = json.NewDecoder(rr.Body).Decode(&response)
	if response.Message != constants.ReasonPasswordLength {
		t.Errorf("expected reason %s, got %s", constants.ReasonPasswordLength, response.Message)
	}
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	deps := newTestDeps(t)

	registerBody, _ := json.Marshal(dtos.RegisterRequest{
		Email:    "budi@example.com",
		Username: "budi",
		Password: "rahasia1",
	})
	rr := httptest.NewRecorder()
	RegisterHandler(deps).ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(registerBody)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d", rr.Code)
	}

	loginBody, _ := json.Marshal(dtos.LoginRequest{
		Email:    "budi@example.com",
		Password: "salah123",
	})
	rr = httptest.NewRecorder()
	LoginHandler(deps).ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(loginBody)))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestCreatePostHandlerMissingClaims(t *testing.T) {
	deps := newTestDeps(t)
	handler := CreatePostHandler(deps)

	body, _ := json.Marshal(dtos.PostSubmission{
		Title:    "Halte ditutup",
		Content:  "Renovasi",
		Category: "Transportasi",
	})
	req := httptest.NewRequest("POST", "/api/v1/posts", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestCreatePostHandlerWithClaims(t *testing.T) {
	deps := newTestDeps(t)

	profile := &gormModels.Profile{
		Email:        "budi@example.com",
		Username:     "budi",
		PasswordHash: "x",
		Role:         constants.RoleUser,
		Status:       constants.ProfileActive,
	}
	if err := deps.Repo.Profiles.Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	body, _ := json.Marshal(dtos.PostSubmission{
		Title:    "Halte ditutup",
		Content:  "Renovasi",
		Category: "Transportasi",
	})
	req := httptest.NewRequest("POST", "/api/v1/posts", bytes.NewReader(body))

	claims := &auth.JWTClaims{
		UserUUID:      profile.ID,
		UsernameValue: "budi",
		RoleValue:     constants.RoleUser,
	}
	req = req.WithContext(auth.SetUserClaims(req.Context(), claims))

	rr := httptest.NewRecorder()
	CreatePostHandler(deps).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status ok, got %s", response.Status)
	}
}
