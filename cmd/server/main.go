package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/limchang/cafe-test/internal/config"
	"github.com/limchang/cafe-test/internal/storage"
	"github.com/limchang/cafe-test/internal/storage/redis"
	"github.com/limchang/cafe-test/internal/storage/sqlite"
	"github.com/limchang/cafe-test/pkg/logging"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cafesync",
	Short: "Group café order board",
	Long: `cafesync keeps a shared café order for several tables: who sits where,
what everyone picked and the aggregated list to read out at the counter.

Run without arguments to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFiles, envErr := config.LoadDotEnv("")

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logging.Setup(level)
		if envErr != nil {
			slog.Warn("Ignoring malformed env file", "error", envErr)
		}
		if len(envFiles) > 0 {
			slog.Debug("Loaded env files", "files", envFiles)
		}
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore opens the blob store selected by the config.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		r := cfg.Storage.Redis
		store, err := redis.New(ctx, redis.Options{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			PoolSize: r.PoolSize,
			Prefix:   r.Prefix,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", config.DriverRedis, "addr", r.Addr)
		return store, nil
	default:
		store, err := sqlite.New(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", config.DriverSQLite, "database", cfg.Storage.Path)
		return store, nil
	}
}
