package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wydatki/internal/amqp"
	"wydatki/internal/core"
	"wydatki/internal/store"
)

// MirrorWorker copies records announced over AMQP into a secondary store.
type MirrorWorker struct {
	target store.RecordWriter
}

func NewMirrorWorker(target store.RecordWriter) *MirrorWorker {
	return &MirrorWorker{target: target}
}

// HandleRecorded appends the record carried by msg to the target store.
// Messages that can never be written are reported as amqp.ErrPermanent so
// they are not redelivered forever.
func (w *MirrorWorker) HandleRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	rec := msg.Record()

	if strings.TrimSpace(rec.Date) == "" {
		return fmt.Errorf("%w: message without date", amqp.ErrPermanent)
	}
	if _, ok := core.ParseStoredAmount(rec.Amount); !ok {
		return fmt.Errorf("%w: unparsable amount %q", amqp.ErrPermanent, rec.Amount)
	}

	if err := w.target.Append(ctx, rec); err != nil {
		return fmt.Errorf("mirror expense: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored expense",
		"date", rec.Date,
		"category", rec.Category,
		"amount", rec.Amount,
		"published_at", msg.Timestamp)
	return nil
}
