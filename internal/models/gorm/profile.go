package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"panduankota/backend/internal/constants"
)

type Profile struct {
	ID           string                  `gorm:"column:id;primaryKey;type:uuid"`
	Email        string                  `gorm:"column:email;uniqueIndex"`
	Username     string                  `gorm:"column:username;uniqueIndex"`
	PasswordHash string                  `gorm:"column:password_hash"`
	Role         constants.Role          `gorm:"column:role;default:user"`
	Status       constants.ProfileStatus `gorm:"column:status;default:active"`
	MutedUntil   *time.Time              `gorm:"column:muted_until"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Warnings []UserWarning `gorm:"foreignKey:ProfileID"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin is the one sanctioned way to tell curator accounts apart.
// Never compare usernames for this.
func (p *Profile) IsAdmin() bool {
	return p.Role == constants.RoleAdmin
}

// UserWarning is one admin-issued notice. Warnings are append-only child rows
// so two concurrent warns never clobber each other.
type UserWarning struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	ProfileID    string    `gorm:"column:profile_id;type:uuid;index"`
	Title        *string   `gorm:"column:title"`
	Message      string    `gorm:"column:message"`
	Acknowledged bool      `gorm:"column:acknowledged;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserWarning) TableName() string {
	return "user_warnings"
}

func (w *UserWarning) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
