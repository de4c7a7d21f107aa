package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Content   string    `gorm:"size:500;not null"`
	CreatedOn time.Time `gorm:"not null"`
	StockID   uint      `gorm:"not null;index"`
	AppUserID string    `gorm:"size:36;not null;index"`
	AppUser   *AppUser
}

// AuthorName is the display name of the comment's author.
func (c Comment) AuthorName() string {
	if c.AppUser == nil || c.AppUser.UserName == "" {
		return "Anonymous"
	}
	return c.AppUser.UserName
}
