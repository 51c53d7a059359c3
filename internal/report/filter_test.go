package report

import (
	"reflect"
	"testing"
	"time"

	"outlay/internal/core"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func fixture() []core.Expense {
	return []core.Expense{
		{ID: "1", Title: "Groceries", Amount: 54.20, Category: core.CategoryFood, Date: day(1)},
		{ID: "2", Title: "Bus ticket", Amount: 2.75, Category: core.CategoryTransport, Date: day(3)},
		{ID: "3", Title: "Dinner out", Amount: 38.00, Category: core.CategoryFood, Date: day(5)},
		{ID: "4", Title: "Train to Milan", Amount: 19.90, Category: core.CategoryTransport, Date: day(8)},
		{ID: "5", Title: "Food market", Amount: 12.00, Category: core.CategoryFood, Date: day(12)},
	}
}

func ids(expenses []core.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	min := 10.0
	max := 40.0
	from := day(3)
	to := day(8)

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria returns all", Criteria{}, []string{"1", "2", "3", "4", "5"}},
		{"category keeps original order", Criteria{Category: core.CategoryFood}, []string{"1", "3", "5"}},
		{"text query is case-insensitive substring", Criteria{TextQuery: "foOd"}, []string{"5"}},
		{"min amount inclusive", Criteria{MinAmount: &min}, []string{"1", "3", "4", "5"}},
		{"max amount inclusive", Criteria{MaxAmount: &max}, []string{"2", "3", "4", "5"}},
		{"date range inclusive both ends", Criteria{DateFrom: &from, DateTo: &to}, []string{"2", "3", "4"}},
		{"all predicates combined", Criteria{Category: core.CategoryFood, MinAmount: &min, DateTo: &to}, []string{"1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(fixture(), tt.criteria)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Fatalf("Filter() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	min := 5.0
	criteria := []Criteria{
		{},
		{Category: core.CategoryTransport},
		{TextQuery: "i", MinAmount: &min},
	}
	for _, c := range criteria {
		once := Filter(fixture(), c)
		twice := Filter(once, c)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("filter not idempotent for %+v: %v vs %v", c, ids(once), ids(twice))
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := append([]core.Expense(nil), in...)
	out := Filter(in, Criteria{Category: core.CategoryFood})
	if !reflect.DeepEqual(in, before) {
		t.Fatal("Filter mutated its input")
	}
	if len(out) > 0 {
		out[0].Title = "changed"
		if in[0].Title == "changed" {
			t.Fatal("Filter returned a view aliasing the input")
		}
	}
}

func TestEndOfDay(t *testing.T) {
	d := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	eod := EndOfDay(d)
	if eod.Day() != 8 || eod.Hour() != 23 || eod.Minute() != 59 {
		t.Fatalf("EndOfDay = %v", eod)
	}
	late := time.Date(2024, 3, 8, 18, 30, 0, 0, time.UTC)
	if late.After(eod) {
		t.Fatal("an evening timestamp should not be after EndOfDay of the same day")
	}
}
