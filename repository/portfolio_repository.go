package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocks-api/models"
)

// PortfolioRepository defines the interface for portfolio membership rows.
type PortfolioRepository interface {
	FindStocksByUser(ctx context.Context, userID string) ([]models.Stock, error)
	Create(ctx context.Context, portfolio *models.Portfolio) error
	Delete(ctx context.Context, userID string, stockID uint) error
}

// NewPortfolioRepository creates a new GORM-based portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRepository struct {
	db *gorm.DB
}

// FindStocksByUser returns the stocks in the user's portfolio as plain
// values, without comments.
func (r *portfolioRepository) FindStocksByUser(ctx context.Context, userID string) ([]models.Stock, error) {
	var stocks []models.Stock
	err := r.db.WithContext(ctx).
		Model(&models.Stock{}).
		Select("stocks.*").
		Joins("JOIN portfolios ON portfolios.stock_id = stocks.id").
		Where("portfolios.app_user_id = ?", userID).
		Order("stocks.symbol").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// Create inserts a membership row. A second row for the same pair fails with
// gorm.ErrDuplicatedKey.
func (r *portfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(portfolio).Error
}

func (r *portfolioRepository) Delete(ctx context.Context, userID string, stockID uint) error {
	res := r.db.WithContext(ctx).
		Where("app_user_id = ? AND stock_id = ?", userID, stockID).
		Delete(&models.Portfolio{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
