package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocks-api/database"
	"stocks-api/dto"
	"stocks-api/models"
)

// StockRepository defines the interface for stock data operations.
type StockRepository interface {
	FindAll(ctx context.Context, query dto.StockQuery) ([]models.Stock, error)
	FindByID(ctx context.Context, id uint) (*models.Stock, error)
	FindBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	Create(ctx context.Context, stock *models.Stock) error
	CreateBatch(ctx context.Context, stocks []models.Stock, batchSize int) error
	Update(ctx context.Context, stock *models.Stock) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

func preloadComments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_on").Order("id")
		}).
		Preload("Comments.AppUser")
}

// FindAll returns one page of stocks matching the query, each with its
// comments and their authors loaded.
func (r *stockRepository) FindAll(ctx context.Context, query dto.StockQuery) ([]models.Stock, error) {
	tx := preloadComments(r.db.WithContext(ctx).Model(&models.Stock{}))

	if query.CompanyName != "" {
		tx = tx.Where("LOWER(company_name) LIKE ? ESCAPE '\\'", containsPattern(query.CompanyName))
	}
	if query.Symbol != "" {
		tx = tx.Where("LOWER(symbol) LIKE ? ESCAPE '\\'", containsPattern(query.Symbol))
	}

	if query.SortBySymbol() {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "symbol"}, Desc: query.IsDescending})
	}
	// stable paging when no sort key is given
	tx = tx.Order("id")

	var stocks []models.Stock
	if err := tx.Offset(query.Offset()).Limit(query.Limit()).Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByID retrieves a stock and its comments.
func (r *stockRepository) FindByID(ctx context.Context, id uint) (*models.Stock, error) {
	var stock models.Stock
	if err := preloadComments(r.db.WithContext(ctx)).First(&stock, id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// FindBySymbol retrieves a stock by its canonical symbol, without comments.
func (r *stockRepository) FindBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Where("symbol = ?", models.CanonicalSymbol(symbol)).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) Create(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(stock).Error
}

func (r *stockRepository) CreateBatch(ctx context.Context, stocks []models.Stock, batchSize int) error {
	return database.CreateInBatches(ctx, r.db, stocks, batchSize)
}

// Update overwrites the stock's own columns and leaves its comments alone.
func (r *stockRepository) Update(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(stock).Error
}

// Delete removes a stock together with its comments and portfolio rows.
func (r *stockRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stock_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stock_id = ?", id).Delete(&models.Portfolio{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Stock{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *stockRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Stock{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching value anywhere,
// with LIKE wildcards in value taken literally.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
