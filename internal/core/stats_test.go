package core

import (
	"testing"
	"time"
)

func TestComputeStatistics(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty collection yields zeros", func(t *testing.T) {
		got := ComputeStatistics(nil, now)
		want := AggregateStatistics{}
		if got != want {
			t.Fatalf("ComputeStatistics(nil) = %+v, want zeros", got)
		}
	})

	t.Run("single january expense", func(t *testing.T) {
		expenses := []Expense{{
			Title:    "Coffee",
			Amount:   4.50,
			Category: CategoryFood,
			Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		}}
		got := ComputeStatistics(expenses, now)
		want := AggregateStatistics{Count: 1, Total: 4.5, Min: 4.5, Max: 4.5, MonthTotal: 4.5, YearTotal: 4.5}
		if got != want {
			t.Fatalf("ComputeStatistics = %+v, want %+v", got, want)
		}
	})

	t.Run("month and year windows", func(t *testing.T) {
		expenses := []Expense{
			{Title: "a", Amount: 10, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Title: "b", Amount: 20, Date: time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)},
			{Title: "c", Amount: 40, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{Title: "d", Amount: 80, Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		}
		got := ComputeStatistics(expenses, now)
		if got.Count != 4 || got.Total != 150 {
			t.Errorf("count/total = %d/%v, want 4/150", got.Count, got.Total)
		}
		if got.MonthTotal != 30 {
			t.Errorf("MonthTotal = %v, want 30 (both ends of January inclusive)", got.MonthTotal)
		}
		if got.YearTotal != 70 {
			t.Errorf("YearTotal = %v, want 70", got.YearTotal)
		}
		if got.Min != 10 || got.Max != 80 {
			t.Errorf("min/max = %v/%v, want 10/80", got.Min, got.Max)
		}
	})
}

func TestPreferences(t *testing.T) {
	t.Run("merge fills blanks", func(t *testing.T) {
		got := Preferences{Currency: "EUR"}.Merge()
		if got.Currency != "EUR" || got.Theme != DefaultTheme {
			t.Errorf("Merge() = %+v", got)
		}
		if got := (Preferences{}).Merge(); got != DefaultPreferences() {
			t.Errorf("Merge() of zero value = %+v, want defaults", got)
		}
	})

	t.Run("validate", func(t *testing.T) {
		if err := DefaultPreferences().Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
		if err := (Preferences{Currency: "XXX", Theme: "neon"}).Validate(); err == nil {
			t.Error("unknown currency should be rejected")
		}
		if err := (Preferences{Currency: "USD", Theme: "solarized"}).Validate(); err == nil {
			t.Error("unknown theme should be rejected")
		}
	})
}
