// Package cli implements the interactions-api command line.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custsvc/interactions-api/internal/bootstrap"
	"github.com/custsvc/interactions-api/internal/config"
	"github.com/custsvc/interactions-api/internal/logging"
	"github.com/custsvc/interactions-api/internal/store"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "interactions-api",
		Short: "Read API over customer-service interaction history",
		Long: `interactions-api serves the interaction history of customer accounts,
newest first, with date-range filtering and opaque cursor pagination.
The history lives in DynamoDB (default), Postgres or an in-memory demo store.`,
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./interactions-api.yaml or /etc/interactions-api/interactions-api.yaml)")
}

// loadConfig loads configuration and builds the logger from it.
func loadConfig() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("configuration loaded", "backend", cfg.Store.Backend, "log_level", cfg.LogLevel)
	return cfg, logger, nil
}

// openStore connects the configured backend. The returned close func is never nil.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		client, err := store.NewDynamoClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using dynamodb store", "table", cfg.DynamoDB.Table, "endpoint", cfg.DynamoDB.Endpoint, "region", cfg.DynamoDB.Region)
		return store.NewDynamoStore(client, cfg.DynamoDB.Table), func() {}, nil
	case config.BackendPostgres:
		pool, err := store.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		logger.Info("using postgres store")
		return store.NewPostgresStore(pool), pool.Close, nil
	case config.BackendMemory:
		items := bootstrap.SampleInteractions(time.Now())
		logger.Info("using in-memory store with sample data", "items", len(items))
		return store.NewMemoryStore(items...), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}
