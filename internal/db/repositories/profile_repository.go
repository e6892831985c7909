package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"panduankota/backend/internal/constants"
	gormModels "panduankota/backend/internal/models/gorm"
)

type ProfileRepository struct {
	db   *gorm.DB
	sqlx *sqlx.DB
}

// NewProfileRepository creates a profile repository. The sqlx handle may be
// nil in tests; only UpdateUsername needs it.
func NewProfileRepository(db *gorm.DB, sx *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db, sqlx: sx}
}

// GetByID retrieves a profile with its warnings preloaded in insertion order.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*gormModels.Profile, error) {
	var profile gormModels.Profile

	err := r.db.WithContext(ctx).
		Preload("Warnings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&profile).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile not found: %s", id)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return &profile, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*gormModels.Profile, error) {
	var profile gormModels.Profile

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile by email: %w", err)
	}

	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *gormModels.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// List returns every profile, for the admin moderation panel.
func (r *ProfileRepository) List(ctx context.Context) ([]gormModels.Profile, error) {
	var profiles []gormModels.Profile

	err := r.db.WithContext(ctx).
		Preload("Warnings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at ASC").
		Find(&profiles).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateStatus(ctx context.Context, id string, status constants.ProfileStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Profile{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update profile status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdateMutedUntil(ctx context.Context, id string, until *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Profile{}).
		Where("id = ?", id).
		Update("muted_until", until)
	if res.Error != nil {
		return fmt.Errorf("failed to update muted_until: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Profile{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateUsername is a single conditional write. The unique index on
// profiles.username turns a concurrent duplicate into a constraint violation
// instead of a lost check-then-write race.
func (r *ProfileRepository) UpdateUsername(ctx context.Context, id string, username string) error {
	if r.sqlx != nil {
		_, err := r.sqlx.ExecContext(ctx, constants.QueryUpdateUsername, username, id)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&gormModels.Profile{}).
		Where("id = ?", id).
		Update("username", username).Error
}

// IsUniqueViolation reports whether err is a unique-constraint failure
// mentioning col. Postgres says "duplicate key value violates unique
// constraint", SQLite says "UNIQUE constraint failed: table.column".
func IsUniqueViolation(err error, col string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key") && !strings.Contains(msg, "unique constraint") {
		return false
	}
	return strings.Contains(msg, strings.ToLower(col))
}
