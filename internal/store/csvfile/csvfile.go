// Package csvfile implements the record store as a comma separated flat
// file with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"wydatki/internal/core"
	"wydatki/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the file.
func (s *Store) Path() string {
	return s.path
}

// EnsureStorage creates the directory and the file with its header if the
// file is missing. An existing file is never touched.
func (s *Store) EnsureStorage(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(ctx)
}

func (s *Store) ensure(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create store file: %w", err)
	}
	defer f.Close()

	if err := writeRow(f, core.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	slog.InfoContext(ctx, "Created expense store", "path", s.path)
	return nil
}

// Append writes one row at the end of the file and syncs it to disk before
// returning. The header is written first if the file does not exist yet.
func (s *Store) Append(ctx context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open store for appending: %w", err)
	}
	defer f.Close()

	if err := writeRow(f, r.Values()); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	slog.DebugContext(ctx, "Expense appended to file",
		"path", s.path,
		"date", r.Date,
		"amount", r.Amount)
	return nil
}

// ReadAll decodes every data row of the file. A missing file reads as an
// empty store. Rows are returned as raw strings; malformed rows are padded
// rather than rejected so that callers can decide what to skip.
func (s *Store) ReadAll(ctx context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "Expense store does not exist yet", "path", s.path)
		return []core.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	records, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}
	return records, nil
}

func writeRow(f *os.File, values []string) error {
	w := csv.NewWriter(f)
	if err := w.Write(values); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func decode(r io.Reader) ([]core.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []core.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	order := columnOrder(header)

	records := []core.Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		values := make([]string, len(order))
		for i, col := range order {
			if col < len(row) {
				values[i] = row[col]
			}
		}
		records = append(records, core.RecordFromValues(values))
	}
	return records, nil
}

// columnOrder maps each header field to its column in the file. When a
// field is missing from the header the positional layout is assumed.
func columnOrder(header []string) []int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	fields := core.Header()
	order := make([]int, len(fields))
	for i, name := range fields {
		col, ok := index[name]
		if !ok {
			for j := range order {
				order[j] = j
			}
			return order
		}
		order[i] = col
	}
	return order
}
