package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/service"
)

type PortfolioHandler struct {
	portfolio service.PortfolioService
	logger    *logger.Logger
}

func NewPortfolioHandler(portfolio service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, logger: logger}
}

func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portfolio", h.GetPortfolio)
	rg.POST("/portfolio", h.AddStock)
	rg.DELETE("/portfolio", h.RemoveStock)
}

// GetPortfolio godoc
// @Summary List the caller's stocks
// @Tags portfolio
// @Produce  json
// @Success 200 {array} dto.StockResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security Bearer
// @Router /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stocks, err := h.portfolio.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// AddStock godoc
// @Summary Add a stock to the caller's portfolio
// @Tags portfolio
// @Produce  json
// @Param   symbol  query  string  true  "Ticker symbol"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /portfolio [post]
func (h *PortfolioHandler) AddStock(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	symbol, ok := symbolQuery(c)
	if !ok {
		return
	}

	stock, err := h.portfolio.Add(c.Request.Context(), p, symbol)
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondMessage(c, http.StatusNotFound, "Stock not found")
	case errors.Is(err, service.ErrConflict):
		respondMessage(c, http.StatusBadRequest, "Stock already exists in your portfolio")
	case err != nil:
		respondError(c, h.logger, err)
	default:
		c.JSON(http.StatusCreated, stock)
	}
}

// RemoveStock godoc
// @Summary Remove a stock from the caller's portfolio
// @Tags portfolio
// @Produce  json
// @Param   symbol  query  string  true  "Ticker symbol"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security Bearer
// @Router /portfolio [delete]
func (h *PortfolioHandler) RemoveStock(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	symbol, ok := symbolQuery(c)
	if !ok {
		return
	}

	err := h.portfolio.Remove(c.Request.Context(), p, symbol)
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondMessage(c, http.StatusBadRequest, "Stock not found in your portfolio")
	case err != nil:
		respondError(c, h.logger, err)
	default:
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Stock removed from your portfolio"})
	}
}

func symbolQuery(c *gin.Context) (string, bool) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondMessage(c, http.StatusBadRequest, "symbol is required")
		return "", false
	}
	return symbol, true
}
