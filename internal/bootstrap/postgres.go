package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/custsvc/interactions-api/internal/logging"
	"github.com/custsvc/interactions-api/internal/store"
)

// PgExecer is satisfied by *pgxpool.Pool.
type PgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const insertInteraction = `INSERT INTO interactions
    (account_number, "timestamp", interaction_id, reason, solution, summary, channel)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (account_number, "timestamp") DO NOTHING`

// ApplyMigrations runs every *.sql file in fsys in lexical order.
// Scripts must be idempotent.
func ApplyMigrations(ctx context.Context, db PgExecer, fsys fs.FS, logger logging.Logger) error {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)
	for _, name := range files {
		sql, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
		logger.Info("migration applied", "file", name)
	}
	return nil
}

// LoadPostgresItems inserts items in one batch; rows that already exist are left untouched.
func LoadPostgresItems(ctx context.Context, db PgExecer, items []store.Interaction) error {
	b := interactionBatch(items)
	br := db.SendBatch(ctx, b)
	for _, it := range items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert %s: %w", it.InteractionID, err)
		}
	}
	return br.Close()
}

func interactionBatch(items []store.Interaction) *pgx.Batch {
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(insertInteraction,
			it.AccountNumber, it.Timestamp, it.InteractionID,
			it.Reason, it.Solution, it.Summary, it.Channel,
		)
	}
	return b
}
