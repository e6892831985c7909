package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"panduankota/backend/internal/constants"
	"panduankota/backend/internal/models/entities"
	gormModels "panduankota/backend/internal/models/gorm"
)

type PostRepository struct {
	db   *gorm.DB
	sqlx *sqlx.DB
}

// NewPostRepository creates a post repository. The sqlx handle may be nil in
// tests; only ListAggregates needs it.
func NewPostRepository(db *gorm.DB, sx *sqlx.DB) *PostRepository {
	return &PostRepository{db: db, sqlx: sx}
}

func (r *PostRepository) Create(ctx context.Context, post *gormModels.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*gormModels.Post, error) {
	var post gormModels.Post

	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Verifications").
		Preload("Reports").
		Preload("Reports.Reporter").
		Where("id = ?", id).
		First(&post).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *gormModels.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *PostRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Post{}).
		Where("id = ?", id).
		Update("is_pinned", pinned)
	if res.Error != nil {
		return fmt.Errorf("failed to set pin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a post and all of its children in one transaction. The
// explicit child deletes keep the cascade portable across Postgres and the
// sqlite test databases.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&gormModels.PostComment{},
			&gormModels.PostUpvote{},
			&gormModels.PostVerification{},
			&gormModels.PostReport{},
		} {
			if err := tx.Where("post_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete post children: %w", err)
			}
		}

		res := tx.Where("id = ?", id).Delete(&gormModels.Post{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListAggregates fetches the board projection: every post with its author
// username and comment/upvote counts folded in server-side. The sqlx path
// runs one hand-written query; without a sqlx handle the counts are
// assembled through gorm instead.
func (r *PostRepository) ListAggregates(ctx context.Context) ([]entities.PostAggregateRow, error) {
	if r.sqlx != nil {
		var rows []entities.PostAggregateRow
		if err := r.sqlx.SelectContext(ctx, &rows, constants.QueryListPosts); err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
		return rows, nil
	}

	var posts []gormModels.Post
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Comments").Preload("Upvotes").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	rows := make([]entities.PostAggregateRow, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		username := p.Author.Username
		rows = append(rows, entities.PostAggregateRow{
			ID:             p.ID,
			AuthorID:       p.AuthorID,
			Title:          p.Title,
			Content:        p.Content,
			Category:       p.Category,
			IsPinned:       p.IsPinned,
			CreatedAt:      p.CreatedAt,
			AuthorUsername: &username,
			CommentCount:   int64(len(p.Comments)),
			UpvoteCount:    int64(len(p.Upvotes)),
		})
	}
	return rows, nil
}

// ListVerifications returns every verification vote grouped under the board.
func (r *PostRepository) ListVerifications(ctx context.Context) ([]gormModels.PostVerification, error) {
	var votes []gormModels.PostVerification
	if err := r.db.WithContext(ctx).Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return votes, nil
}

// ListReports returns every open report with the reporter profile joined.
func (r *PostRepository) ListReports(ctx context.Context) ([]gormModels.PostReport, error) {
	var reports []gormModels.PostReport
	if err := r.db.WithContext(ctx).Preload("Reporter").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
