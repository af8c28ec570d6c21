package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "review-pool.com/review-pool/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

		database, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		logger.Info("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
