package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"wydatki/internal/core"
)

const menuText = `
=== KALKULATOR WYDATKÓW (CLI) ===
1) Dodaj wydatek
2) Pokaż wszystkie wydatki
3) Suma za miesiąc (YYYY-MM)
4) Zakończ
Wybierz opcję: `

// Session runs the interactive menu over a line oriented input.
//
// User mistakes (an unknown option, an amount that is not a number, a
// malformed month) print a message and return to the menu. Storage errors
// end the session and are returned to the caller. End of input ends the
// session like option 4.
type Session struct {
	svc Expenses
	in  *bufio.Reader
	out io.Writer
}

func NewSession(svc Expenses, in io.Reader, out io.Writer) *Session {
	return &Session{svc: svc, in: bufio.NewReader(in), out: out}
}

// Run prepares the storage and loops over the menu until the user exits.
func (s *Session) Run(ctx context.Context) error {
	if err := s.svc.EnsureStorage(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := s.prompt(menuText)
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case "1":
			err = s.add(ctx)
		case "2":
			err = s.showAll(ctx)
		case "3":
			err = s.sumForMonth(ctx)
		case "4":
			fmt.Fprintln(s.out, msgGoodbye)
			return nil
		default:
			fmt.Fprintln(s.out, msgBadOption)
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, msgGoodbye)
		return nil
	}
	return err
}

func (s *Session) add(ctx context.Context) error {
	var in core.Input
	var err error

	if in.Date, err = s.prompt(fmt.Sprintf("Data (Enter = %s): ", s.svc.Today())); err != nil {
		return err
	}
	if in.Category, err = s.prompt("Kategoria (np. jedzenie, transport): "); err != nil {
		return err
	}
	if in.Description, err = s.prompt("Opis: "); err != nil {
		return err
	}
	if in.Amount, err = s.prompt("Kwota (np. 23.50): "); err != nil {
		return err
	}

	if _, err := s.svc.AddExpense(ctx, in); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			fmt.Fprintln(s.out, msgInvalidAmount)
			return nil
		}
		return err
	}
	fmt.Fprintln(s.out, msgSaved)
	return nil
}

func (s *Session) showAll(ctx context.Context) error {
	records, err := s.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	writeList(s.out, records)
	return nil
}

func (s *Session) sumForMonth(ctx context.Context) error {
	ym, err := s.prompt("Podaj miesiąc (YYYY-MM): ")
	if err != nil {
		return err
	}

	total, err := s.svc.SumForMonth(ctx, ym)
	if err != nil {
		if errors.Is(err, core.ErrInvalidFormat) {
			fmt.Fprintln(s.out, msgInvalidMonth)
			return nil
		}
		return err
	}
	writeSum(s.out, ym, total)
	return nil
}

// prompt writes label and reads one line, trimmed. A final line without a
// newline is returned as is; io.EOF is reported only when nothing was read.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)

	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
