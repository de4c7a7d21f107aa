package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"stocks-api/auth"
	"stocks-api/config"
	"stocks-api/database"
	"stocks-api/handlers"
	"stocks-api/logger"
	"stocks-api/middleware"
	"stocks-api/repository"
	"stocks-api/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API",
		logger.StringField("name", cfg.App.Name),
		logger.StringField("env", cfg.App.Env),
	)

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	var tokens auth.TokenStore
	if cfg.Redis.Enabled {
		rdb, err := config.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		tokens = auth.NewRedisTokenStore(rdb)
	} else {
		appLogger.Warn("Redis disabled, refresh tokens are kept in memory")
		tokens = auth.NewMemoryTokenStore(cfg.JWT.RefreshTTL)
	}

	stockRepo := repository.NewStockRepository(db)
	userRepo := repository.NewUserRepository(db)
	issuer := auth.NewTokenIssuer(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Stocks:    service.NewStockService(stockRepo, appLogger),
		Comments:  service.NewCommentService(repository.NewCommentRepository(db), stockRepo, appLogger),
		Portfolio: service.NewPortfolioService(repository.NewPortfolioRepository(db), stockRepo, appLogger),
		Accounts:  service.NewAccountService(userRepo, issuer, tokens, cfg.JWT.RefreshTTL, appLogger),
		Issuer:    issuer,
		Users:     userRepo,
		Limiter:   middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Health:    sqlDB.PingContext,
		Logger:    appLogger,
		Docs:      cfg.App.Env == "development",
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler: cors.AllowAll().Handler(router),
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server listening", logger.StringField("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	appLogger.Info("API stopped")
	return nil
}
