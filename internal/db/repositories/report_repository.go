package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	gormModels "panduankota/backend/internal/models/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *gormModels.PostReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *ReportRepository) ListForPost(ctx context.Context, postID string) ([]gormModels.PostReport, error) {
	var reports []gormModels.PostReport

	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// DistinctReporterIDs feeds the deletion notification fan-out.
func (r *ReportRepository) DistinctReporterIDs(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.PostReport{}).
		Where("post_id = ?", postID).
		Distinct().
		Pluck("reporter_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reporters: %w", err)
	}
	return ids, nil
}

// DeleteForPost clears every report on a post. Resolving keeps the post.
func (r *ReportRepository) DeleteForPost(ctx context.Context, postID string) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&gormModels.PostReport{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear reports: %w", err)
	}
	return nil
}
