package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"wydatki/internal/core"
	"wydatki/internal/store"
)

// Aggregator computes monthly figures by scanning every stored record.
//
// Reading is lenient: a record whose amount does not parse is skipped and
// never fails the whole computation. Writing, in ExpenseService, is strict.
type Aggregator struct {
	reader store.RecordReader
}

func NewAggregator(reader store.RecordReader) *Aggregator {
	return &Aggregator{reader: reader}
}

// SumForMonth returns the total amount of records whose date starts with
// the given "YYYY-MM". The month is validated before the store is read.
func (a *Aggregator) SumForMonth(ctx context.Context, yearMonth string) (decimal.Decimal, error) {
	summary, err := a.Summarize(ctx, yearMonth)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Total, nil
}

// Summarize returns the month total together with per-category totals.
func (a *Aggregator) Summarize(ctx context.Context, yearMonth string) (core.MonthSummary, error) {
	ym, err := core.ParseYearMonth(yearMonth)
	if err != nil {
		return core.MonthSummary{}, err
	}

	records, err := a.reader.ReadAll(ctx)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("read records: %w", err)
	}

	summary := core.MonthSummary{Month: ym, Total: decimal.Zero}
	for _, r := range records {
		if !ym.Matches(r.Date) {
			continue
		}
		amount, ok := core.ParseStoredAmount(r.Amount)
		if !ok {
			summary.Skipped++
			continue
		}
		summary.Add(r.Category, amount)
	}

	if summary.Skipped > 0 {
		slog.DebugContext(ctx, "Skipped records with unparsable amount",
			"month", ym.String(),
			"skipped", summary.Skipped)
	}
	return summary, nil
}
