package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stocks-api/config"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/repository"
	"stocks-api/service"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import stocks from a JSON file",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "configs/stocks.json", "JSON array of stocks to import")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var reqs []dto.CreateStockRequest
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return fmt.Errorf("parse seed file %s: %w", seedFile, err)
	}

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	stocks := service.NewStockService(repository.NewStockRepository(db), appLogger)
	n, err := stocks.Import(cmd.Context(), reqs)
	if err != nil {
		return err
	}
	cmd.Printf("Imported %d stocks from %s\n", n, seedFile)
	return nil
}
