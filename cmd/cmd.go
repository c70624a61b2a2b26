package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/pkg/logger"
)

var (
	clearData  bool
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "internal-tools",
	Short: "Internal Tools API",
	Long:  `Registry of internal SaaS tools with cost and usage analytics.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads .env, config.yml (or --config) and APP_* variables, then
// initialises the process logger from the result.
func loadConfig(path string) (*internal.Config, *slog.Logger, error) {
	cfg, err := internal.LoadConfig(internal.LoadOptions{
		Path:       path,
		ConfigFile: configFile,
		EnvFile:    envFile,
	})
	if err != nil {
		return nil, nil, err
	}

	lg := logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	return cfg, lg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a config file (default ./config.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default ./.env)")

	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
