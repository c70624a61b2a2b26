package cmd

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/techcorp/internal-tools/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample categories, tools, users, usage logs and cost snapshots for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, lg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := initDB(ctx, cfg.Database, lg)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gdb, err := initGorm(db, cfg.Database)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if _, err := seed.Run(ctx, gdb, seed.Options{Clear: clearData}, lg); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	},
}
