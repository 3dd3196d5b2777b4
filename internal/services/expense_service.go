package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"wydatki/internal/cache"
	"wydatki/internal/core"
	"wydatki/internal/store"
)

// Publisher announces appended records to other processes.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, r core.Record) error
	Close() error
}

// Options configure an ExpenseService. Zero values get sensible defaults.
type Options struct {
	Defaults  core.Defaults
	Publisher Publisher
	Cache     cache.Cache[core.MonthSummary]
	Now       func() time.Time
	// Cleanup releases the store, if it holds resources.
	Cleanup func() error
}

// ExpenseService orchestrates adding, listing and aggregating expenses.
type ExpenseService struct {
	store      store.Store
	aggregator *Aggregator
	defaults   core.Defaults
	publisher  Publisher
	summaries  cache.Cache[core.MonthSummary]
	now        func() time.Time
	cleanup    func() error
}

func NewExpenseService(s store.Store, opts Options) *ExpenseService {
	svc := &ExpenseService{
		store:      s,
		aggregator: NewAggregator(s),
		defaults:   opts.Defaults.Merge(core.DefaultDefaults()),
		publisher:  opts.Publisher,
		summaries:  opts.Cache,
		now:        opts.Now,
		cleanup:    opts.Cleanup,
	}
	if svc.summaries == nil {
		svc.summaries = cache.Nop[core.MonthSummary]{}
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Defaults returns the values applied to empty input fields.
func (s *ExpenseService) Defaults() core.Defaults {
	return s.defaults
}

// Today returns the date used when none is given.
func (s *ExpenseService) Today() string {
	return s.now().Format(core.DateLayout)
}

// EnsureStorage prepares the underlying store.
func (s *ExpenseService) EnsureStorage(ctx context.Context) error {
	if err := s.store.EnsureStorage(ctx); err != nil {
		return fmt.Errorf("ensure storage: %w", err)
	}
	return nil
}

// AddExpense applies defaults to the input and appends the resulting record.
// An invalid amount aborts before anything is written.
func (s *ExpenseService) AddExpense(ctx context.Context, in core.Input) (core.Record, error) {
	rec, err := s.defaults.Apply(in, s.now())
	if err != nil {
		slog.DebugContext(ctx, "Rejected expense", "amount", in.Amount, "error", err)
		return core.Record{}, err
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return core.Record{}, fmt.Errorf("save expense: %w", err)
	}
	s.summaries.Purge()

	slog.InfoContext(ctx, "Expense recorded",
		"date", rec.Date,
		"category", rec.Category,
		"amount", rec.Amount)

	// The record is saved; a failed announcement must not fail the add.
	if s.publisher != nil {
		if err := s.publisher.PublishExpenseRecorded(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to publish expense recorded message",
				"date", rec.Date, "error", err)
		}
	}

	return rec, nil
}

// ListAll returns every record in insertion order.
func (s *ExpenseService) ListAll(ctx context.Context) ([]core.Record, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return records, nil
}

// SumForMonth returns the total spent in the given "YYYY-MM".
func (s *ExpenseService) SumForMonth(ctx context.Context, yearMonth string) (decimal.Decimal, error) {
	summary, err := s.MonthSummary(ctx, yearMonth)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Total, nil
}

// MonthSummary returns the month total and per-category totals. Results
// are cached per month until the next AddExpense or until they expire.
func (s *ExpenseService) MonthSummary(ctx context.Context, yearMonth string) (core.MonthSummary, error) {
	ym, err := core.ParseYearMonth(yearMonth)
	if err != nil {
		return core.MonthSummary{}, err
	}
	if cached, ok := s.summaries.Get(ym.String()); ok {
		return cached.Clone(), nil
	}

	summary, err := s.aggregator.Summarize(ctx, ym.String())
	if err != nil {
		return core.MonthSummary{}, err
	}
	s.summaries.Set(ym.String(), summary.Clone())
	return summary, nil
}

// Close releases the publisher and the store.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}
	return nil
}
