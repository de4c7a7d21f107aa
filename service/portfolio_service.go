package service

import (
	"context"
	"fmt"

	"stocks-api/auth"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/models"
	"stocks-api/repository"
)

// PortfolioService defines the interface for a user's portfolio membership.
type PortfolioService interface {
	List(ctx context.Context, principal auth.Principal) ([]dto.StockResponse, error)
	Add(ctx context.Context, principal auth.Principal, symbol string) (*dto.StockResponse, error)
	Remove(ctx context.Context, principal auth.Principal, symbol string) error
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	stockRepo repository.StockRepository,
	logger *logger.Logger,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		stockRepo:     stockRepo,
		logger:        logger,
	}
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	stockRepo     repository.StockRepository
	logger        *logger.Logger
}

// List returns the stocks in the principal's portfolio without comments.
func (s *portfolioService) List(ctx context.Context, principal auth.Principal) ([]dto.StockResponse, error) {
	stocks, err := s.portfolioRepo.FindStocksByUser(ctx, principal.UserID)
	if err != nil {
		return nil, storeError(err, "list portfolio")
	}

	responses := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		responses = append(responses, mapToStockResponse(&stocks[i]))
	}
	return responses, nil
}

// Add puts the stock with the given symbol into the principal's portfolio.
// An unknown symbol is ErrNotFound and a symbol already held is ErrConflict.
func (s *portfolioService) Add(ctx context.Context, principal auth.Principal, symbol string) (*dto.StockResponse, error) {
	symbol = models.CanonicalSymbol(symbol)

	stock, err := s.stockRepo.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("stock %q", symbol))
	}

	held, err := s.portfolioRepo.FindStocksByUser(ctx, principal.UserID)
	if err != nil {
		return nil, storeError(err, "list portfolio")
	}
	for _, h := range held {
		if h.Symbol == symbol {
			return nil, fmt.Errorf("portfolio stock %q: %w", symbol, ErrConflict)
		}
	}

	// a concurrent add of the same pair surfaces as a duplicate key
	err = s.portfolioRepo.Create(ctx, &models.Portfolio{AppUserID: principal.UserID, StockID: stock.ID})
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("add %q to portfolio", symbol))
	}

	s.logger.Info("Stock added to portfolio",
		logger.StringField("user", principal.UserName),
		logger.StringField("symbol", symbol),
	)
	resp := mapToStockResponse(stock)
	return &resp, nil
}

// Remove takes the stock with the given symbol out of the principal's
// portfolio. ErrNotFound means it was not held.
func (s *portfolioService) Remove(ctx context.Context, principal auth.Principal, symbol string) error {
	symbol = models.CanonicalSymbol(symbol)

	held, err := s.portfolioRepo.FindStocksByUser(ctx, principal.UserID)
	if err != nil {
		return storeError(err, "list portfolio")
	}

	var matches []models.Stock
	for _, h := range held {
		if h.Symbol == symbol {
			matches = append(matches, h)
		}
	}
	if len(matches) != 1 {
		return fmt.Errorf("portfolio stock %q: %w", symbol, ErrNotFound)
	}

	if err := s.portfolioRepo.Delete(ctx, principal.UserID, matches[0].ID); err != nil {
		return storeError(err, fmt.Sprintf("remove %q from portfolio", symbol))
	}

	s.logger.Info("Stock removed from portfolio",
		logger.StringField("user", principal.UserName),
		logger.StringField("symbol", symbol),
	)
	return nil
}
