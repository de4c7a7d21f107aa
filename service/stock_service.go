package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/models"
	"stocks-api/repository"
)

const importBatchSize = 100

// StockService defines the interface for the stock catalog.
type StockService interface {
	GetAll(ctx context.Context, query dto.StockQuery) ([]dto.StockResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.StockResponse, error)
	GetBySymbol(ctx context.Context, symbol string) (*dto.StockResponse, error)
	Create(ctx context.Context, req dto.CreateStockRequest) (*dto.StockResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateStockRequest) (*dto.StockResponse, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	Import(ctx context.Context, reqs []dto.CreateStockRequest) (int, error)
}

// NewStockService creates a new stock service.
func NewStockService(stockRepo repository.StockRepository, logger *logger.Logger) StockService {
	return &stockService{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

type stockService struct {
	stockRepo repository.StockRepository
	logger    *logger.Logger
}

// GetAll runs the filtered, sorted and paged stock listing.
func (s *stockService) GetAll(ctx context.Context, query dto.StockQuery) ([]dto.StockResponse, error) {
	stocks, err := s.stockRepo.FindAll(ctx, query)
	if err != nil {
		return nil, storeError(err, "list stocks")
	}

	responses := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		responses = append(responses, mapToStockResponse(&stocks[i]))
	}
	return responses, nil
}

func (s *stockService) GetByID(ctx context.Context, id uint) (*dto.StockResponse, error) {
	stock, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("stock %d", id))
	}
	resp := mapToStockResponse(stock)
	return &resp, nil
}

func (s *stockService) GetBySymbol(ctx context.Context, symbol string) (*dto.StockResponse, error) {
	stock, err := s.stockRepo.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("stock %q", models.CanonicalSymbol(symbol)))
	}
	resp := mapToStockResponse(stock)
	return &resp, nil
}

// Create adds a stock with its symbol in canonical form. A symbol that is
// already listed is a conflict.
func (s *stockService) Create(ctx context.Context, req dto.CreateStockRequest) (*dto.StockResponse, error) {
	stock := newStock(req)

	if _, err := s.stockRepo.FindBySymbol(ctx, stock.Symbol); err == nil {
		return nil, fmt.Errorf("stock %q: %w", stock.Symbol, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err, "look up stock")
	}

	if err := s.stockRepo.Create(ctx, stock); err != nil {
		return nil, storeError(err, fmt.Sprintf("create stock %q", stock.Symbol))
	}

	s.logger.Info("Stock created", logger.StringField("symbol", stock.Symbol), logger.Field("stock_id", stock.ID))
	resp := mapToStockResponse(stock)
	return &resp, nil
}

// Update overwrites every editable field of the stock.
func (s *stockService) Update(ctx context.Context, id uint, req dto.UpdateStockRequest) (*dto.StockResponse, error) {
	stock, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("stock %d", id))
	}

	stock.Symbol = models.CanonicalSymbol(req.Symbol)
	stock.CompanyName = req.CompanyName
	stock.Purchase = roundMoney(req.Purchase)
	stock.LastDiv = roundMoney(req.LastDiv)
	stock.Industry = req.Industry
	stock.MarketCap = req.MarketCap

	if err := s.stockRepo.Update(ctx, stock); err != nil {
		s.logger.Error("Failed to update stock", logger.ErrorField(err), logger.Field("stock_id", id))
		return nil, storeError(err, fmt.Sprintf("update stock %d", id))
	}

	resp := mapToStockResponse(stock)
	return &resp, nil
}

// Delete removes the stock and, with it, its comments and portfolio rows.
func (s *stockService) Delete(ctx context.Context, id uint) error {
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		return storeError(err, fmt.Sprintf("delete stock %d", id))
	}
	s.logger.Info("Stock deleted", logger.Field("stock_id", id))
	return nil
}

func (s *stockService) Exists(ctx context.Context, id uint) (bool, error) {
	exists, err := s.stockRepo.Exists(ctx, id)
	if err != nil {
		return false, storeError(err, fmt.Sprintf("stock %d", id))
	}
	return exists, nil
}

// Import validates every request and stores them all in one transaction.
func (s *stockService) Import(ctx context.Context, reqs []dto.CreateStockRequest) (int, error) {
	stocks := make([]models.Stock, 0, len(reqs))
	for i, req := range reqs {
		if err := req.Validate().Err(); err != nil {
			return 0, fmt.Errorf("stock #%d (%s): %w", i+1, req.Symbol, err)
		}
		stocks = append(stocks, *newStock(req))
	}

	if err := s.stockRepo.CreateBatch(ctx, stocks, importBatchSize); err != nil {
		return 0, storeError(err, "import stocks")
	}

	s.logger.Info("Stocks imported", logger.IntField("count", len(stocks)))
	return len(stocks), nil
}

func newStock(req dto.CreateStockRequest) *models.Stock {
	return &models.Stock{
		Symbol:      models.CanonicalSymbol(req.Symbol),
		CompanyName: req.CompanyName,
		Purchase:    roundMoney(req.Purchase),
		LastDiv:     roundMoney(req.LastDiv),
		Industry:    req.Industry,
		MarketCap:   req.MarketCap,
	}
}

// roundMoney applies the decimal(18,2) column precision.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
