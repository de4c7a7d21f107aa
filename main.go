package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stocks-api",
	Short: "Stock catalog, comments and portfolios over a REST API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a .env file is optional; real environment variables win
		_ = godotenv.Load()
	},
}

// @title Stocks API
// @version 1.0
// @description Stock catalog, comments and per-user portfolios.
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing stocks-api: %s\n", err)
		os.Exit(1)
	}
}
