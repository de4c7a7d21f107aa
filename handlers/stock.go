package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/service"
)

type StockHandler struct {
	stocks service.StockService
	logger *logger.Logger
}

func NewStockHandler(stocks service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stocks: stocks, logger: logger}
}

func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	stock.GET("", h.GetAll)
	stock.GET("/:id", h.GetByID)
	stock.GET("/symbol/:symbol", h.GetBySymbol)
	stock.POST("", h.Create)
	stock.PUT("/:id", h.Update)
	stock.DELETE("/:id", h.Delete)
}

// GetAll godoc
// @Summary List stocks
// @Description List stocks filtered by company name and symbol, optionally ordered by symbol, one page at a time
// @Tags stock
// @Produce  json
// @Param   companyName   query  string  false  "Company name substring"
// @Param   symbol        query  string  false  "Symbol substring"
// @Param   sortBy        query  string  false  "Sort column, only Symbol is recognised"
// @Param   isDescending  query  bool    false  "Sort descending"
// @Param   pageNumber    query  int     false  "Page number" default(1) minimum(1) maximum(21474836)
// @Param   pageSize      query  int     false  "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} dto.StockResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security Bearer
// @Router /stock [get]
func (h *StockHandler) GetAll(c *gin.Context) {
	var query dto.StockQuery
	if !bindQuery(c, &query) {
		return
	}

	stocks, err := h.stocks.GetAll(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// GetByID godoc
// @Summary Get a stock by ID
// @Tags stock
// @Produce  json
// @Param   id  path  int  true  "Stock ID"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /stock/{id} [get]
func (h *StockHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stock, err := h.stocks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// GetBySymbol godoc
// @Summary Get a stock by symbol
// @Tags stock
// @Produce  json
// @Param   symbol  path  string  true  "Ticker symbol, any case"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /stock/symbol/{symbol} [get]
func (h *StockHandler) GetBySymbol(c *gin.Context) {
	stock, err := h.stocks.GetBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Create godoc
// @Summary Create a stock
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   stock  body  dto.CreateStockRequest  true  "Stock to create"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security Bearer
// @Router /stock [post]
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	stock, err := h.stocks.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+uintString(stock.ID))
	c.JSON(http.StatusCreated, stock)
}

// Update godoc
// @Summary Replace a stock
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   id     path  int                     true  "Stock ID"
// @Param   stock  body  dto.UpdateStockRequest  true  "New stock fields"
// @Success 200 {object} dto.StockResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /stock/{id} [put]
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	stock, err := h.stocks.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Delete godoc
// @Summary Delete a stock and its comments
// @Tags stock
// @Param   id  path  int  true  "Stock ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /stock/{id} [delete]
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.stocks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
