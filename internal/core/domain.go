package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical form of a record date.
const DateLayout = "2006-01-02"

type (
	// Record is one expense entry as it is persisted. All fields are kept as
	// the raw strings found in the store; Amount is written with exactly two
	// fractional digits but may be anything when read back.
	Record struct {
		Date        string
		Category    string
		Description string
		Amount      string
	}

	// Input holds the raw, user supplied values of a new expense.
	Input struct {
		Date        string
		Category    string
		Description string
		Amount      string
	}

	// Defaults are the values applied to empty input fields.
	Defaults struct {
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidFormat = errors.New("invalid month format, expected YYYY-MM")
)

// Header returns the column names of the store in their fixed order.
func Header() []string {
	return []string{"date", "category", "description", "amount"}
}

// Values returns the record fields in header order.
func (r Record) Values() []string {
	return []string{r.Date, r.Category, r.Description, r.Amount}
}

// RecordFromValues builds a record from fields in header order. Missing
// trailing fields are left empty and extra fields are ignored.
func RecordFromValues(values []string) Record {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return Record{
		Date:        get(0),
		Category:    get(1),
		Description: get(2),
		Amount:      get(3),
	}
}

// DefaultDefaults returns the built-in fallbacks: category "inne" (other)
// and description "-".
func DefaultDefaults() Defaults {
	return Defaults{Category: "inne", Description: "-"}
}

// Merge returns d with every blank field replaced by the one from fallback.
func (d Defaults) Merge(fallback Defaults) Defaults {
	if strings.TrimSpace(d.Category) == "" {
		d.Category = fallback.Category
	}
	if strings.TrimSpace(d.Description) == "" {
		d.Description = fallback.Description
	}
	return d
}

// Apply turns raw input into a record ready to be appended. Empty fields
// get their defaults, the date defaults to today. The amount is parsed
// strictly: on failure no record is produced.
func (d Defaults) Apply(in Input, today time.Time) (Record, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Date:        orDefault(in.Date, today.Format(DateLayout)),
		Category:    orDefault(in.Category, d.Category),
		Description: orDefault(in.Description, d.Description),
		Amount:      FormatAmount(amount),
	}, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
