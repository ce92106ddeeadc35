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
	"github.com/custsvc/interactions-api/migrations"
)

var (
	loadSample   bool
	startupDelay time.Duration
	tableWait    time.Duration

	bootstrapCmd = &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the interactions table and optionally load sample data",
		Long: `Prepares the configured store before the API is served. For DynamoDB the
table is created (partition key account_number, sort key timestamp) unless
it already exists; for Postgres the embedded migrations are applied. With
--sample, four demo interactions on accounts 123456789 and 987654321 are
written. The memory backend needs no bootstrap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd.Context())
		},
	}
)

func init() {
	bootstrapCmd.Flags().BoolVar(&loadSample, "sample", false, "load sample interactions after creating the table")
	bootstrapCmd.Flags().DurationVar(&startupDelay, "delay", 0, "wait before connecting (e.g. for DynamoDB Local to start)")
	bootstrapCmd.Flags().DurationVar(&tableWait, "wait", 2*time.Minute, "maximum time to wait for the table to become active")
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger = logger.Named("bootstrap")

	if startupDelay > 0 {
		logger.Info("waiting for store to start", "delay", startupDelay)
		select {
		case <-time.After(startupDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var items []store.Interaction
	if loadSample {
		items = bootstrap.SampleInteractions(time.Now())
	}

	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		return bootstrapDynamo(ctx, cfg, items, logger)
	case config.BackendPostgres:
		return bootstrapPostgres(ctx, cfg, items, logger)
	case config.BackendMemory:
		logger.Info("memory backend needs no bootstrap")
		return nil
	}
	return fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}

func bootstrapDynamo(ctx context.Context, cfg *config.Config, items []store.Interaction, logger logging.Logger) error {
	client, err := store.NewDynamoClient(ctx, cfg.DynamoDB)
	if err != nil {
		return err
	}
	if err := bootstrap.EnsureDynamoTable(ctx, client, cfg.DynamoDB.Table, tableWait, logger); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := bootstrap.LoadDynamoItems(ctx, client, cfg.DynamoDB.Table, items); err != nil {
		return err
	}
	logger.Info("sample data loaded", "items", len(items))
	return nil
}

func bootstrapPostgres(ctx context.Context, cfg *config.Config, items []store.Interaction, logger logging.Logger) error {
	pool, err := store.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	if err := bootstrap.ApplyMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := bootstrap.LoadPostgresItems(ctx, pool, items); err != nil {
		return err
	}
	logger.Info("sample data loaded", "items", len(items))
	return nil
}
