package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stocks-api/auth"
	_ "stocks-api/docs"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/middleware"
	"stocks-api/service"
)

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries everything the HTTP layer depends on.
type RouterConfig struct {
	Stocks    service.StockService
	Comments  service.CommentService
	Portfolio service.PortfolioService
	Accounts  service.AccountService
	Issuer    *auth.TokenIssuer
	Users     middleware.UserLookup
	Limiter   *middleware.RateLimiter
	Health    HealthCheck
	Logger    *logger.Logger
	// Docs serves the OpenAPI document and UI under /swagger.
	Docs bool
}

// NewRouter builds the gin engine with every route mounted under /api.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(cfg.Logger),
		middleware.AccessLog(cfg.Logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		if cfg.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Health(ctx); err != nil {
				cfg.Logger.Warn("Health check failed", logger.ErrorField(err))
				c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Docs {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group("/api")

	limit := func(c *gin.Context) { c.Next() }
	if cfg.Limiter != nil {
		limit = cfg.Limiter.Middleware()
	}
	NewAccountHandler(cfg.Accounts, cfg.Logger).RegisterRoutes(api, limit)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(cfg.Issuer, cfg.Users))
	NewStockHandler(cfg.Stocks, cfg.Logger).RegisterRoutes(protected)
	NewCommentHandler(cfg.Comments, cfg.Logger).RegisterRoutes(protected)
	NewPortfolioHandler(cfg.Portfolio, cfg.Logger).RegisterRoutes(protected)

	return router
}
