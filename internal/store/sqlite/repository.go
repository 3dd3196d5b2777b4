// Package sqlite stores expense records in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"wydatki/internal/core"
	"wydatki/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Repository)(nil)

type Repository struct {
	db     *sql.DB
	dbPath string

	mu       sync.Mutex
	migrated bool
}

func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Repository{db: db, dbPath: dbPath}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// EnsureStorage applies pending migrations.
func (r *Repository) EnsureStorage(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure(ctx)
}

func (r *Repository) ensure(ctx context.Context) error {
	if r.migrated {
		return nil
	}
	if err := runMigrations(r.dbPath); err != nil {
		return err
	}
	r.migrated = true
	slog.DebugContext(ctx, "SQLite schema ready", "path", r.dbPath)
	return nil
}

func (r *Repository) Append(ctx context.Context, rec core.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensure(ctx); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, description, amount) VALUES (?, ?, ?, ?)`,
		rec.Date, rec.Category, rec.Description, rec.Amount)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	id, _ := res.LastInsertId()
	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", rec.Date,
		"amount", rec.Amount)
	return nil
}

// ReadAll returns every expense ordered by insertion.
func (r *Repository) ReadAll(ctx context.Context) ([]core.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT date, category, description, amount FROM expenses ORDER BY id`)
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
