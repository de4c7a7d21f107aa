package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Stock struct {
	ID          uint            `gorm:"primaryKey"`
	Symbol      string          `gorm:"size:10;not null;uniqueIndex"`
	CompanyName string          `gorm:"size:10;not null"`
	Purchase    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LastDiv     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Industry    string          `gorm:"size:10;not null"`
	MarketCap   int64           `gorm:"not null"`
	Comments    []Comment       `gorm:"constraint:OnDelete:CASCADE;"`
}

// CanonicalSymbol is the storage and comparison form of a ticker.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
