package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	gormModels "panduankota/backend/internal/models/gorm"
)

// WarningRepository manages the append-only warning rows. Appends are
// independent inserts, so concurrent warns for the same user never lose
// each other.
type WarningRepository struct {
	db *gorm.DB
}

func NewWarningRepository(db *gorm.DB) *WarningRepository {
	return &WarningRepository{db: db}
}

func (r *WarningRepository) Append(ctx context.Context, warning *gormModels.UserWarning) error {
	if err := r.db.WithContext(ctx).Create(warning).Error; err != nil {
		return fmt.Errorf("failed to append warning: %w", err)
	}
	return nil
}

// Acknowledge flips one warning, and only if it belongs to profileID. The
// owner check rides in the WHERE clause so no one acknowledges someone
// else's warning.
func (r *WarningRepository) Acknowledge(ctx context.Context, profileID, warningID string) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.UserWarning{}).
		Where("id = ? AND profile_id = ?", warningID, profileID).
		Update("acknowledged", true)
	if res.Error != nil {
		return fmt.Errorf("failed to acknowledge warning: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WarningRepository) ListForProfile(ctx context.Context, profileID string) ([]gormModels.UserWarning, error) {
	var warnings []gormModels.UserWarning

	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&warnings).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	return warnings, nil
}

// FirstPending returns the oldest unacknowledged warning, or nil if the user
// has none outstanding. The UI surfaces one warning at a time.
func (r *WarningRepository) FirstPending(ctx context.Context, profileID string) (*gormModels.UserWarning, error) {
	var warning gormModels.UserWarning

	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND acknowledged = ?", profileID, false).
		Order("created_at ASC").
		First(&warning).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending warning: %w", err)
	}
	return &warning, nil
}
