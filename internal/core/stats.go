package core

import "time"

// AggregateStatistics is derived from the collection on demand and never
// stored. All totals are zero for an empty collection.
type AggregateStatistics struct {
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	MonthTotal float64 `json:"monthTotal"`
	YearTotal  float64 `json:"yearTotal"`
}

// ComputeStatistics aggregates the collection in a single pass. MonthTotal
// sums expenses dated within the calendar month containing now, YearTotal
// those sharing now's year.
func ComputeStatistics(expenses []Expense, now time.Time) AggregateStatistics {
	stats := AggregateStatistics{Count: len(expenses)}
	if len(expenses) == 0 {
		return stats
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats.Min = expenses[0].Amount
	stats.Max = expenses[0].Amount
	for _, e := range expenses {
		stats.Total += e.Amount
		if e.Amount < stats.Min {
			stats.Min = e.Amount
		}
		if e.Amount > stats.Max {
			stats.Max = e.Amount
		}
		if e.Date.Year() == now.Year() {
			stats.YearTotal += e.Amount
		}
		if !e.Date.Before(monthStart) && e.Date.Before(monthEnd) {
			stats.MonthTotal += e.Amount
		}
	}
	return stats
}
