package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// YearMonth is a validated "YYYY-MM" key.
type YearMonth string

// ParseYearMonth validates s as a four digit year, a hyphen and a two digit
// month between 01 and 12.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	if !yearMonthPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return YearMonth(s), nil
}

// Matches reports whether a stored date falls in the month. This is a plain
// prefix match on the raw date string, not a calendar comparison.
func (ym YearMonth) Matches(date string) bool {
	return strings.HasPrefix(date, string(ym))
}

func (ym YearMonth) String() string {
	return string(ym)
}
