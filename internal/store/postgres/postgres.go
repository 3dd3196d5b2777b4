// Package postgres stores expense records in a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"wydatki/internal/core"
	"wydatki/internal/store"
)

var _ store.Store = (*Repository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS expenses (
    id          BIGSERIAL PRIMARY KEY,
    date        TEXT NOT NULL,
    category    TEXT NOT NULL,
    description TEXT NOT NULL,
    amount      TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// undefinedTable is the SQLSTATE reported when the expenses table is missing.
const undefinedTable = "42P01"

type Repository struct {
	pool *pgxpool.Pool

	mu    sync.Mutex
	ready bool
}

// New connects to the database at dsn and verifies the connection.
func New(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// EnsureStorage creates the expenses table if it does not exist.
func (r *Repository) EnsureStorage(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure(ctx)
}

func (r *Repository) ensure(ctx context.Context) error {
	if r.ready {
		return nil
	}
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create expenses table: %w", err)
	}
	r.ready = true
	return nil
}

// Append inserts one record, creating the table first if needed.
func (r *Repository) Append(ctx context.Context, rec core.Record) error {
	r.mu.Lock()
	err := r.ensure(ctx)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO expenses (date, category, description, amount) VALUES ($1, $2, $3, $4) RETURNING id`,
		rec.Date, rec.Category, rec.Description, rec.Amount).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	slog.DebugContext(ctx, "Expense saved to PostgreSQL", "id", id, "date", rec.Date, "amount", rec.Amount)
	return nil
}

// ReadAll returns every expense ordered by insertion. A database without
// the expenses table reads as empty.
func (r *Repository) ReadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date, category, description, amount FROM expenses ORDER BY id`)
	if isUndefinedTable(err) {
		slog.DebugContext(ctx, "Expenses table does not exist yet")
		return []core.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	records := []core.Record{}
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.Date, &rec.Category, &rec.Description, &rec.Amount); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTable
}
