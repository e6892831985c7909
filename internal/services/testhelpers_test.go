package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/db/repositories"
	gormModels "panduankota/backend/internal/models/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

type testEnv struct {
	db         *gorm.DB
	profiles   *repositories.ProfileRepository
	warnings   *repositories.WarningRepository
	guides     *repositories.GuideRepository
	favorites  *repositories.FavoriteRepository
	posts      *repositories.PostRepository
	comments   *repositories.CommentRepository
	votes      *repositories.VoteRepository
	reports    *repositories.ReportRepository
	sessions   *fakeSessionStore
	moderation *ModerationService
	guideSvc   *GuideService
	discussion *DiscussionService
	account    *AccountService
}

// fakeSessionStore records calls; it serves both the account service's
// session store and the moderation service's revoker.
type fakeSessionStore struct {
	created []string
	deleted []string
	revoked []string
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, userID, username string, role constants.Role, status constants.ProfileStatus) (string, error) {
	f.created = append(f.created, userID)
	return "session-" + userID, nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func (f *fakeSessionStore) RevokeUserSessions(ctx context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:        db,
		profiles:  repositories.NewProfileRepository(db, nil),
		warnings:  repositories.NewWarningRepository(db),
		guides:    repositories.NewGuideRepository(db, nil),
		favorites: repositories.NewFavoriteRepository(db),
		posts:     repositories.NewPostRepository(db, nil),
		comments:  repositories.NewCommentRepository(db),
		votes:     repositories.NewVoteRepository(db),
		reports:   repositories.NewReportRepository(db),
		sessions:  &fakeSessionStore{},
	}

	env.moderation = NewModerationService(env.profiles, env.warnings, env.sessions, nil)
	env.guideSvc = NewGuideService(env.guides, env.favorites, env.profiles, nil)
	env.discussion = NewDiscussionService(
		env.posts, env.comments, env.votes, env.reports,
		env.profiles, env.moderation, nil, nil,
	)
	env.account = NewAccountService(env.profiles, env.sessions, nil)
	return env
}

func (e *testEnv) seedUser(t *testing.T, username string, role constants.Role) *gormModels.Profile {
	t.Helper()

	profile := &gormModels.Profile{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		Status:       constants.ProfileActive,
	}
	if err := e.profiles.Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return profile
}
