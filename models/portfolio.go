package models

// Portfolio links one user to one stock. The composite primary key keeps a
// stock from appearing twice in the same portfolio.
type Portfolio struct {
	AppUserID string  `gorm:"primaryKey;size:36"`
	StockID   uint    `gorm:"primaryKey;autoIncrement:false"`
	AppUser   AppUser `gorm:"constraint:OnDelete:CASCADE;"`
	Stock     Stock   `gorm:"constraint:OnDelete:CASCADE;"`
}
