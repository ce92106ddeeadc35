package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custsvc/interactions-api/internal/config"
	"github.com/custsvc/interactions-api/internal/core/query"
)

// NewPool creates a pgxpool connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// PostgresStore implements Store over the interactions table.
// Rows are keyed by (account_number, "timestamp").
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Query fetches one extra row to decide whether a continuation marker is
// needed, so Next is only set when more rows exist.
func (s *PostgresStore) Query(ctx context.Context, d query.Descriptor) (*Page, error) {
	if d.Limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrStoreQueryFailed)
	}
	sql, args := selectInteractions(d)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classifyPgErr(err)
	}
	defer rows.Close()

	items := make([]Interaction, 0, d.Limit)
	for rows.Next() {
		var it Interaction
		if err := rows.Scan(
			&it.AccountNumber, &it.Timestamp, &it.InteractionID,
			&it.Reason, &it.Solution, &it.Summary, &it.Channel,
		); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrStoreQueryFailed, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPgErr(err)
	}

	page := &Page{Items: items}
	if len(items) > d.Limit {
		page.Items = items[:d.Limit]
		page.Next = page.Items[d.Limit-1].Marker()
	}
	return page, nil
}

// selectInteractions renders d as a keyset query with positional arguments.
func selectInteractions(d query.Descriptor) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT account_number, "timestamp", interaction_id, reason, solution, summary, channel
FROM interactions
WHERE account_number = $1`)
	args := []any{d.AccountNumber}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch d.Sort.Kind {
	case query.Between:
		b.WriteString(` AND "timestamp" BETWEEN ` + arg(d.Sort.Low) + ` AND ` + arg(d.Sort.High))
	case query.LowerOnly:
		b.WriteString(` AND "timestamp" >= ` + arg(d.Sort.Low))
	case query.UpperOnly:
		b.WriteString(` AND "timestamp" <= ` + arg(d.Sort.High))
	case query.Unbounded:
	}

	order, after := "ASC", ">"
	if d.Descending {
		order, after = "DESC", "<"
	}
	if d.StartAfter != nil {
		// A marker from another account matches nothing.
		b.WriteString(` AND account_number = ` + arg(d.StartAfter.AccountNumber()))
		b.WriteString(` AND "timestamp" ` + after + ` ` + arg(d.StartAfter.Timestamp()))
	}
	b.WriteString(`
ORDER BY "timestamp" ` + order + `
LIMIT ` + arg(d.Limit+1))
	return b.String(), args
}

func classifyPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s: %w", ErrStoreQueryFailed, pgErr.Code, err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
