package report

import "outlay/internal/core"

// Summary aggregates a filtered set for the report header cards.
type Summary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summarize computes the summary in one pass. Zero values for an empty set.
func Summarize(filtered []core.Expense) Summary {
	s := Summary{Count: len(filtered)}
	if len(filtered) == 0 {
		return s
	}
	s.Min = filtered[0].Amount
	s.Max = filtered[0].Amount
	for _, e := range filtered {
		s.Total += e.Amount
		if e.Amount < s.Min {
			s.Min = e.Amount
		}
		if e.Amount > s.Max {
			s.Max = e.Amount
		}
	}
	return s
}
