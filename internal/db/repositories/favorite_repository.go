package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	gormModels "panduankota/backend/internal/models/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle adds or removes the (user, guide) pair and reports whether the guide
// is a favorite afterwards. Calling it twice is an involution.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, guideID string) (bool, error) {
	var nowFavorite bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gormModels.UserFavorite
		err := tx.Where("user_id = ? AND guide_id = ?", userID, guideID).
			First(&existing).Error

		switch err {
		case nil:
			nowFavorite = false
			return tx.Where("user_id = ? AND guide_id = ?", userID, guideID).
				Delete(&gormModels.UserFavorite{}).Error
		case gorm.ErrRecordNotFound:
			nowFavorite = true
			return tx.Create(&gormModels.UserFavorite{UserID: userID, GuideID: guideID}).Error
		default:
			return err
		}
	})

	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return nowFavorite, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, guideID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.UserFavorite{}).
		Where("user_id = ? AND guide_id = ?", userID, guideID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// GuideIDsForUser returns the caller's favorite set.
func (r *FavoriteRepository) GuideIDsForUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.UserFavorite{}).
		Where("user_id = ?", userID).
		Pluck("guide_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}
