package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"wydatki/internal/core"
)

// Expenses is what the menu and the subcommands need from the expense
// service.
type Expenses interface {
	EnsureStorage(ctx context.Context) error
	Today() string
	AddExpense(ctx context.Context, in core.Input) (core.Record, error)
	ListAll(ctx context.Context) ([]core.Record, error)
	SumForMonth(ctx context.Context, yearMonth string) (decimal.Decimal, error)
	MonthSummary(ctx context.Context, yearMonth string) (core.MonthSummary, error)
	Close() error
}

const (
	msgSaved         = "✅ Zapisano wydatek."
	msgInvalidAmount = "❗ Błąd: kwota musi być liczbą. Spróbuj ponownie."
	msgInvalidMonth  = "❗ Błędny format. Użyj YYYY-MM, np. 2025-09."
	msgNoExpenses    = "Brak wydatków."
	msgBadOption     = "Nieprawidłowa opcja."
	msgGoodbye       = "Do zobaczenia!"
)

func writeList(w io.Writer, records []core.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, msgNoExpenses)
		return
	}
	fmt.Fprintln(w, "\n--- LISTA WYDATKÓW ---")
	for _, r := range records {
		fmt.Fprintf(w, "%s | %-10s | %-30s | %s zł\n", r.Date, r.Category, r.Description, r.Amount)
	}
	fmt.Fprint(w, "----------------------\n\n")
}

func writeSum(w io.Writer, yearMonth string, total decimal.Decimal) {
	fmt.Fprintf(w, "💰 Suma za %s: %s zł\n", yearMonth, core.FormatAmount(total))
}

func writeSummary(w io.Writer, s core.MonthSummary) {
	fmt.Fprintf(w, "\n--- PODSUMOWANIE %s ---\n", s.Month)
	for _, c := range s.ByCategory {
		fmt.Fprintf(w, "%-10s | %10s zł\n", c.Name, core.FormatAmount(c.Amount))
	}
	if s.Skipped > 0 {
		fmt.Fprintf(w, "Pominięto wierszy z błędną kwotą: %d\n", s.Skipped)
	}
	writeSum(w, s.Month.String(), s.Total)
}
