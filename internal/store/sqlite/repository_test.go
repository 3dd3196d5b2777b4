package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"wydatki/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "data", "wydatki.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryEnsureStorageIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if err := repo.EnsureStorage(ctx); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := repo.Append(ctx, core.Record{Date: "2025-09-01", Category: "food", Description: "lunch", Amount: "12.50"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// A fresh handle on the same file must find the schema already applied.
	again, err := New(repo.dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if err := again.EnsureStorage(ctx); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	got, err := again.ReadAll(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected existing record to survive, got %v (err=%v)", got, err)
	}
}

func TestRepositoryAppendAndReadAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	got, err := repo.ReadAll(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty store, got %v (err=%v)", got, err)
	}

	in := []core.Record{
		{Date: "2025-09-01", Category: "food", Description: "lunch", Amount: "12.50"},
		{Date: "2025-09-10", Category: "transport", Description: "bus", Amount: "3.00"},
		{Date: "2025-09-12", Category: "inne", Description: "-", Amount: "abc"},
	}
	for _, r := range in {
		if err := repo.Append(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err = repo.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(got))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, got[i], in[i])
		}
	}
}
