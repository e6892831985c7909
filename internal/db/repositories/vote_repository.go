package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"panduankota/backend/internal/constants"
	gormModels "panduankota/backend/internal/models/gorm"
)

// VoteRepository covers both vote kinds on a post: upvotes (presence rows)
// and verification votes (upsert-overwrite).
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// ToggleUpvote inserts the pair if absent, deletes it if present, and reports
// whether the upvote is on afterwards.
func (r *VoteRepository) ToggleUpvote(ctx context.Context, postID, userID string) (bool, error) {
	var nowUpvoted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gormModels.PostUpvote
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			First(&existing).Error

		switch err {
		case nil:
			nowUpvoted = false
			return tx.Where("post_id = ? AND user_id = ?", postID, userID).
				Delete(&gormModels.PostUpvote{}).Error
		case gorm.ErrRecordNotFound:
			nowUpvoted = true
			return tx.Create(&gormModels.PostUpvote{PostID: postID, UserID: userID}).Error
		default:
			return err
		}
	})

	if err != nil {
		return false, fmt.Errorf("failed to toggle upvote: %w", err)
	}
	return nowUpvoted, nil
}

// CountUpvotes is the true upvote count: distinct users currently toggled on.
func (r *VoteRepository) CountUpvotes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.PostUpvote{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count upvotes: %w", err)
	}
	return count, nil
}

// UpsertVerification writes one fact-check vote keyed on (post, user).
// A repeat vote overwrites the status rather than adding a row.
func (r *VoteRepository) UpsertVerification(ctx context.Context, postID, userID string, status constants.VerificationStatus) error {
	vote := gormModels.PostVerification{
		PostID: postID,
		UserID: userID,
		Status: status,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(&vote).Error

	if err != nil {
		return fmt.Errorf("failed to upsert verification: %w", err)
	}
	return nil
}

func (r *VoteRepository) ListVerifications(ctx context.Context, postID string) ([]gormModels.PostVerification, error) {
	var votes []gormModels.PostVerification
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return votes, nil
}
