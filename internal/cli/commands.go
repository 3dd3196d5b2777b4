package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"

	"wydatki/internal/core"
	"wydatki/internal/log"
)

// Env carries what every subcommand needs. Open is called lazily so that
// help and usage errors never touch the storage.
type Env struct {
	Open   func(ctx context.Context) (Expenses, error)
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Logger *log.Logger
}

// Register adds the wydatki subcommands to c.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&MenuCmd{env: env}, "")
	c.Register(&addCmd{env: env}, "expenses")
	c.Register(&listCmd{env: env}, "expenses")
	c.Register(&sumCmd{env: env}, "reports")
	c.Register(&summaryCmd{env: env}, "reports")
}

// withService opens the service, prepares its storage, runs fn and closes
// the service. Failures to open or prepare are logged and turned into
// ExitFailure.
func (e *Env) withService(ctx context.Context, op string, fn func(Expenses) subcommands.ExitStatus) subcommands.ExitStatus {
	logger := e.Logger.WithComponent(log.ComponentCLI)

	svc, err := e.Open(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize", log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
		fmt.Fprintf(e.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.WarnContext(ctx, "Failed to close expense service", log.FieldError, err)
		}
	}()

	if err := svc.EnsureStorage(ctx); err != nil {
		return e.fail(ctx, op, err)
	}
	return fn(svc)
}

func (e *Env) fail(ctx context.Context, op string, err error) subcommands.ExitStatus {
	e.Logger.WithComponent(log.ComponentCLI).ErrorContext(ctx, "Command failed",
		log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
	fmt.Fprintf(e.Err, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// --- menu ---

// MenuCmd runs the interactive menu. It is also what the binary runs when
// no subcommand is given.
type MenuCmd struct {
	env *Env
}

func NewMenuCmd(env *Env) *MenuCmd { return &MenuCmd{env: env} }

func (*MenuCmd) Name() string     { return "menu" }
func (*MenuCmd) Synopsis() string { return "run the interactive expense menu (default)" }
func (*MenuCmd) Usage() string {
	return `menu

  Runs the interactive menu: add an expense, list all expenses, sum a month.
`
}
func (*MenuCmd) SetFlags(*flag.FlagSet) {}

func (c *MenuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.withService(ctx, log.OpMenu, func(svc Expenses) subcommands.ExitStatus {
		if err := NewSession(svc, c.env.In, c.env.Out).Run(ctx); err != nil {
			return c.env.fail(ctx, log.OpMenu, err)
		}
		return subcommands.ExitSuccess
	})
}

// --- add ---

type addCmd struct {
	env         *Env
	date        string
	category    string
	description string
	amount      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record one expense" }
func (*addCmd) Usage() string {
	return `add -amount <amount> [-date YYYY-MM-DD] [-category <name>] [-description <text>]

  Appends one expense. Empty fields get the same defaults as in the menu:
  today's date, the default category and the default description.
  The amount accepts a comma or a dot as decimal separator.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Expense date, YYYY-MM-DD (default today)")
	f.StringVar(&c.category, "category", "", "Expense category")
	f.StringVar(&c.description, "description", "", "Expense description")
	f.StringVar(&c.amount, "amount", "", "Expense amount, e.g. 23.50 (required)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(c.env.Err, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}

	return c.env.withService(ctx, log.OpAppend, func(svc Expenses) subcommands.ExitStatus {
		rec, err := svc.AddExpense(ctx, core.Input{
			Date:        c.date,
			Category:    c.category,
			Description: c.description,
			Amount:      c.amount,
		})
		if errors.Is(err, core.ErrInvalidAmount) {
			fmt.Fprintln(c.env.Err, msgInvalidAmount)
			return subcommands.ExitFailure
		}
		if err != nil {
			return c.env.fail(ctx, log.OpAppend, err)
		}
		fmt.Fprintf(c.env.Out, "%s %s | %s | %s | %s zł\n", msgSaved, rec.Date, rec.Category, rec.Description, rec.Amount)
		return subcommands.ExitSuccess
	})
}

// --- list ---

type listCmd struct {
	env *Env
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all expenses in insertion order" }
func (*listCmd) Usage() string {
	return `list

  Prints every stored expense in the order it was recorded.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(c.env.Err, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}

	return c.env.withService(ctx, log.OpList, func(svc Expenses) subcommands.ExitStatus {
		records, err := svc.ListAll(ctx)
		if err != nil {
			return c.env.fail(ctx, log.OpList, err)
		}
		writeList(c.env.Out, records)
		return subcommands.ExitSuccess
	})
}

// --- sum ---

type sumCmd struct {
	env *Env
}

func (*sumCmd) Name() string     { return "sum" }
func (*sumCmd) Synopsis() string { return "print the total spent in a month" }
func (*sumCmd) Usage() string {
	return `sum YYYY-MM

  Prints the sum of all expenses dated in the given month. Rows whose
  amount cannot be read are ignored.
`
}
func (*sumCmd) SetFlags(*flag.FlagSet) {}

func (c *sumCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.env.Err, "Error: exactly one YYYY-MM argument is required.")
		return subcommands.ExitUsageError
	}
	ym := strings.TrimSpace(f.Arg(0))

	return c.env.withService(ctx, log.OpSum, func(svc Expenses) subcommands.ExitStatus {
		total, err := svc.SumForMonth(ctx, ym)
		if errors.Is(err, core.ErrInvalidFormat) {
			fmt.Fprintln(c.env.Err, msgInvalidMonth)
			return subcommands.ExitFailure
		}
		if err != nil {
			return c.env.fail(ctx, log.OpSum, err)
		}
		writeSum(c.env.Out, ym, total)
		return subcommands.ExitSuccess
	})
}

// --- summary ---

type summaryCmd struct {
	env *Env
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print a month total broken down by category" }
func (*summaryCmd) Usage() string {
	return `summary YYYY-MM

  Prints per-category totals for the given month followed by the month sum.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.env.Err, "Error: exactly one YYYY-MM argument is required.")
		return subcommands.ExitUsageError
	}

	return c.env.withService(ctx, log.OpSummary, func(svc Expenses) subcommands.ExitStatus {
		summary, err := svc.MonthSummary(ctx, f.Arg(0))
		if errors.Is(err, core.ErrInvalidFormat) {
			fmt.Fprintln(c.env.Err, msgInvalidMonth)
			return subcommands.ExitFailure
		}
		if err != nil {
			return c.env.fail(ctx, log.OpSummary, err)
		}
		writeSummary(c.env.Out, summary)
		return subcommands.ExitSuccess
	})
}
