package store

import (
	"context"

	"wydatki/internal/core"
)

// Ports implemented by every record store backend.
type (
	// Initializer prepares the underlying storage. It must be idempotent and
	// must never alter existing content.
	Initializer interface {
		EnsureStorage(ctx context.Context) error
	}

	// RecordWriter appends one record. The record is durable when Append
	// returns without error.
	RecordWriter interface {
		Append(ctx context.Context, r core.Record) error
	}

	// RecordReader returns every record in insertion order. A store that
	// does not exist yet reads as empty.
	RecordReader interface {
		ReadAll(ctx context.Context) ([]core.Record, error)
	}

	Store interface {
		Initializer
		RecordWriter
		RecordReader
	}
)
