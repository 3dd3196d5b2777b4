package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// MonthSummary is a compact summary for a specific year+month.
type MonthSummary struct {
	Month      YearMonth
	Total      decimal.Decimal
	Count      int // records included in Total
	Skipped    int // matching records whose amount did not parse
	ByCategory []CategoryAmount
}

// Add accounts one matching record. Categories keep first-seen order.
func (s *MonthSummary) Add(category string, amount decimal.Decimal) {
	s.Total = s.Total.Add(amount)
	s.Count++
	for i := range s.ByCategory {
		if s.ByCategory[i].Name == category {
			s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(amount)
			return
		}
	}
	s.ByCategory = append(s.ByCategory, CategoryAmount{Name: category, Amount: amount})
}

// Clone returns a copy of s that shares no memory with it.
func (s MonthSummary) Clone() MonthSummary {
	if s.ByCategory != nil {
		s.ByCategory = append([]CategoryAmount(nil), s.ByCategory...)
	}
	return s
}
