package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"panduankota/backend/internal/constants"
	gormModels "panduankota/backend/internal/models/gorm"
)

type GuideRepository struct {
	db   *gorm.DB
	sqlx *sqlx.DB
}

// NewGuideRepository creates a guide repository. The sqlx handle may be nil
// in tests; only IncrementViews needs it.
func NewGuideRepository(db *gorm.DB, sx *sqlx.DB) *GuideRepository {
	return &GuideRepository{db: db, sqlx: sx}
}

func (r *GuideRepository) Create(ctx context.Context, guide *gormModels.Guide) error {
	if err := r.db.WithContext(ctx).Create(guide).Error; err != nil {
		return fmt.Errorf("failed to create guide: %w", err)
	}
	return nil
}

func (r *GuideRepository) GetByID(ctx context.Context, id string) (*gormModels.Guide, error) {
	var guide gormModels.Guide

	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&guide).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch guide: %w", err)
	}
	return &guide, nil
}

// List returns every guide with its author. Derived views (approved, pending,
// netizen, favorites) are projections over this collection.
func (r *GuideRepository) List(ctx context.Context) ([]gormModels.Guide, error) {
	var guides []gormModels.Guide

	err := r.db.WithContext(ctx).
		Preload("Author").
		Find(&guides).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	return guides, nil
}

func (r *GuideRepository) Update(ctx context.Context, guide *gormModels.Guide) error {
	if err := r.db.WithContext(ctx).Save(guide).Error; err != nil {
		return fmt.Errorf("failed to update guide: %w", err)
	}
	return nil
}

func (r *GuideRepository) UpdateStatus(ctx context.Context, id string, status constants.GuideStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Guide{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update guide status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuideRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", id).Delete(&gormModels.UserFavorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete guide favorites: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&gormModels.Guide{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete guide: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementViews bumps the counter atomically on the server. Fire and forget;
// the caller does not retry.
func (r *GuideRepository) IncrementViews(ctx context.Context, id string) error {
	if r.sqlx != nil {
		_, err := r.sqlx.ExecContext(ctx, constants.QueryIncrementViews, id)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&gormModels.Guide{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}
