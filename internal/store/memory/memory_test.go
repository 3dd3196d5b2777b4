package memory

import (
	"context"
	"testing"

	"wydatki/internal/core"
)

func TestMemoryStoreAppendAndReadAll(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.EnsureStorage(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	got, err := s.ReadAll(ctx)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty store, got %v (err=%v)", got, err)
	}

	a := core.Record{Date: "2025-09-01", Category: "food", Description: "lunch", Amount: "12.50"}
	b := core.Record{Date: "2025-09-10", Category: "transport", Description: "bus", Amount: "3.00"}
	for _, r := range []core.Record{a, b} {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, _ = s.ReadAll(ctx)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected records: %+v", got)
	}

	// callers cannot mutate the store through the returned slice
	got[0].Amount = "0.00"
	again, _ := s.ReadAll(ctx)
	if again[0].Amount != "12.50" {
		t.Fatalf("store mutated through ReadAll result")
	}
}

func TestNewWithSeed(t *testing.T) {
	seed := []core.Record{{Date: "2025-01-01", Category: "inne", Description: "-", Amount: "1.00"}}
	s := New(seed...)
	seed[0].Amount = "9.99"
	if s.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", s.Len())
	}
	got, _ := s.ReadAll(context.Background())
	if got[0].Amount != "1.00" {
		t.Fatalf("seed slice aliased: %+v", got[0])
	}
}
