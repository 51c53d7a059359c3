// Package report implements the pure filtering, pagination, and summary
// computations that back the report views and exports. Functions here never
// mutate their input and are deterministic for a given (collection, criteria)
// pair.
package report

import (
	"strings"
	"time"

	"outlay/internal/core"
)

// Criteria describes one filtered view of the collection. Pointer fields
// distinguish "not set" from legitimate zero values.
type Criteria struct {
	TextQuery string
	Category  string
	MinAmount *float64
	MaxAmount *float64
	DateFrom  *time.Time
	DateTo    *time.Time
}

// Empty reports whether no predicate is active.
func (c Criteria) Empty() bool {
	return c.TextQuery == "" && c.Category == "" &&
		c.MinAmount == nil && c.MaxAmount == nil &&
		c.DateFrom == nil && c.DateTo == nil
}

// Filter returns the expenses matching every active predicate, preserving
// the relative order of the input. Predicates are independent; their order
// affects performance only, never the result.
func Filter(expenses []core.Expense, c Criteria) []core.Expense {
	if c.Empty() {
		return append([]core.Expense(nil), expenses...)
	}

	query := strings.ToLower(c.TextQuery)
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		if c.Category != "" && e.Category != c.Category {
			continue
		}
		if c.MinAmount != nil && e.Amount < *c.MinAmount {
			continue
		}
		if c.MaxAmount != nil && e.Amount > *c.MaxAmount {
			continue
		}
		if c.DateFrom != nil && e.Date.Before(*c.DateFrom) {
			continue
		}
		if c.DateTo != nil && e.Date.After(*c.DateTo) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EndOfDay extends a plain calendar date to the last instant of that day so
// an upper date bound includes the whole day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
