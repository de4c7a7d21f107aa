package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppUser struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserName     string `gorm:"size:50;not null;uniqueIndex"`
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// BeforeCreate assigns a random identifier to new users.
func (u *AppUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
