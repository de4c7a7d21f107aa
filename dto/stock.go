package dto

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPageNumber keeps (PageNumber-1)*PageSize inside a 32-bit int. It
	// matches the max on StockQuery.PageNumber.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// StockQuery filters, sorts and pages the stock listing.
type StockQuery struct {
	CompanyName  string `form:"companyName"`
	Symbol       string `form:"symbol"`
	SortBy       string `form:"sortBy"`
	IsDescending bool   `form:"isDescending"`
	PageNumber   int    `form:"pageNumber,default=1" binding:"min=1,max=21474836"`
	PageSize     int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// SortBySymbol reports whether the listing should be ordered by symbol.
func (q StockQuery) SortBySymbol() bool {
	return strings.EqualFold(q.SortBy, "Symbol")
}

// Offset is the number of rows to skip. It never goes below zero.
func (q StockQuery) Offset() int {
	offset := (q.PageNumber - 1) * q.Limit()
	if offset < 0 {
		return 0
	}
	return offset
}

// Limit is the page size, falling back to DefaultPageSize when unset.
func (q StockQuery) Limit() int {
	if q.PageSize < 1 {
		return DefaultPageSize
	}
	return q.PageSize
}

func (q StockQuery) Validate() FieldErrors {
	return validateStruct(q)
}

// CreateStockRequest is the payload for adding a stock to the catalog.
type CreateStockRequest struct {
	Symbol      string          `json:"symbol" binding:"required,notblank,max=10"`
	CompanyName string          `json:"companyName" binding:"required,notblank,max=10"`
	Purchase    decimal.Decimal `json:"purchase" binding:"gte=1,lte=1000000000" swaggertype:"number"`
	LastDiv     decimal.Decimal `json:"lastDiv" binding:"gte=0.001,lte=100" swaggertype:"number"`
	Industry    string          `json:"industry" binding:"required,notblank,max=10"`
	MarketCap   int64           `json:"marketCap" binding:"gte=1,lte=5000000000"`
}

func (r CreateStockRequest) Validate() FieldErrors {
	return validateStruct(r)
}

// UpdateStockRequest replaces every editable field of a stock.
type UpdateStockRequest struct {
	Symbol      string          `json:"symbol" binding:"required,notblank,max=10"`
	CompanyName string          `json:"companyName" binding:"required,notblank,max=10"`
	Purchase    decimal.Decimal `json:"purchase" binding:"gte=1,lte=1000000000" swaggertype:"number"`
	LastDiv     decimal.Decimal `json:"lastDiv" binding:"gte=0.001,lte=100" swaggertype:"number"`
	Industry    string          `json:"industry" binding:"required,notblank,max=10"`
	MarketCap   int64           `json:"marketCap" binding:"gte=1,lte=5000000000"`
}

func (r UpdateStockRequest) Validate() FieldErrors {
	return validateStruct(r)
}

// StockResponse is the public view of a stock. Portfolio listings leave
// Comments empty.
type StockResponse struct {
	ID          uint              `json:"id"`
	Symbol      string            `json:"symbol"`
	CompanyName string            `json:"companyName"`
	Purchase    decimal.Decimal   `json:"purchase" swaggertype:"number"`
	LastDiv     decimal.Decimal   `json:"lastDiv" swaggertype:"number"`
	Industry    string            `json:"industry"`
	MarketCap   int64             `json:"marketCap"`
	Comments    []CommentResponse `json:"comments"`
}
