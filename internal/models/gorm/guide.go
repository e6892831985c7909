package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"panduankota/backend/internal/constants"
)

// GuideLink is an external reference attached to a guide.
type GuideLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Guide struct {
	ID        string                `gorm:"column:id;primaryKey;type:uuid"`
	AuthorID  string                `gorm:"column:author_id;type:uuid;index"`
	Title     string                `gorm:"column:title"`
	Category  string                `gorm:"column:category"`
	City      string                `gorm:"column:city"`
	Area      string                `gorm:"column:area"`
	Steps     []string              `gorm:"column:steps;serializer:json"`
	Tips      []string              `gorm:"column:tips;serializer:json"`
	Tags      []string              `gorm:"column:tags;serializer:json"`
	Links     []GuideLink           `gorm:"column:links;serializer:json"`
	Status    constants.GuideStatus `gorm:"column:status;default:pending;index"`
	Views     int64                 `gorm:"column:views;default:0"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Author Profile `gorm:"foreignKey:AuthorID"`
}

func (Guide) TableName() string {
	return "guides"
}

func (g *Guide) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// UserFavorite is the per-user bookmark relation on guides.
type UserFavorite struct {
	UserID  string `gorm:"column:user_id;type:uuid;primaryKey"`
	GuideID string `gorm:"column:guide_id;type:uuid;primaryKey"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}
