package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"panduankota/backend/internal/constants"
)

type Post struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	AuthorID  string    `gorm:"column:author_id;type:uuid;index"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	Category  string    `gorm:"column:category"`
	IsPinned  bool      `gorm:"column:is_pinned;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships. Deleting a post cascades to all of these.
	Author        Profile            `gorm:"foreignKey:AuthorID"`
	Comments      []PostComment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Upvotes       []PostUpvote       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Verifications []PostVerification `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Reports       []PostReport       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostComment struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	PostID    string    `gorm:"column:post_id;type:uuid;index"`
	AuthorID  string    `gorm:"column:author_id;type:uuid"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Author Profile `gorm:"foreignKey:AuthorID"`
}

func (PostComment) TableName() string {
	return "post_comments"
}

func (c *PostComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// PostUpvote is a presence row: one per (post, user) pair that currently
// has the upvote toggled on.
type PostUpvote struct {
	PostID string `gorm:"column:post_id;type:uuid;primaryKey"`
	UserID string `gorm:"column:user_id;type:uuid;primaryKey"`
}

func (PostUpvote) TableName() string {
	return "post_upvotes"
}

// PostVerification is one user's fact-check vote. The composite primary key
// gives upsert-overwrite semantics: changing a vote never adds a second row.
type PostVerification struct {
	PostID string                       `gorm:"column:post_id;type:uuid;primaryKey"`
	UserID string                       `gorm:"column:user_id;type:uuid;primaryKey"`
	Status constants.VerificationStatus `gorm:"column:status"`
}

func (PostVerification) TableName() string {
	return "post_verifications"
}

type PostReport struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	PostID     string    `gorm:"column:post_id;type:uuid;index"`
	ReporterID string    `gorm:"column:reporter_id;type:uuid"`
	Reason     string    `gorm:"column:reason"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`

	Reporter Profile `gorm:"foreignKey:ReporterID"`
}

func (PostReport) TableName() string {
	return "post_reports"
}

func (r *PostReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
