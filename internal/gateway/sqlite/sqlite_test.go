package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"outlay/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "outlay.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses on empty db: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fresh db should hold no expenses, got %d", len(got))
	}

	want := []core.Expense{
		{ID: "a", Title: "Coffee", Amount: 4.5, Category: core.CategoryFood, Date: time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC)},
		{ID: "b", Title: "Bus", Amount: 2.75, Category: core.CategoryTransport, Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Notes: "day pass"},
		{ID: "c", Title: "Cinema", Amount: 12, Category: core.CategoryEntertainment, Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)},
	}
	if err := store.SaveExpenses(ctx, want); err != nil {
		t.Fatalf("SaveExpenses: %v", err)
	}
	got, err = store.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestStore_SnapshotReplacement(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []core.Expense{
		{ID: "a", Title: "x", Amount: 1, Category: core.CategoryOther, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "y", Amount: 2, Category: core.CategoryOther, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	if err := store.SaveExpenses(ctx, first); err != nil {
		t.Fatal(err)
	}

	// Reordered and shrunk snapshot must fully replace the old one.
	second := []core.Expense{first[1]}
	if err := store.SaveExpenses(ctx, second); err != nil {
		t.Fatal(err)
	}
	got, err := store.Expenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("snapshot not replaced: got %+v", got)
	}
}

func TestStore_Preferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	prefs, err := store.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences on empty db: %v", err)
	}
	if prefs != (core.Preferences{}) {
		t.Fatalf("fresh db prefs should be zero, got %+v", prefs)
	}

	want := core.Preferences{Currency: "GBP", Theme: "light"}
	if err := store.SavePreferences(ctx, want); err != nil {
		t.Fatal(err)
	}
	// Upsert path.
	want.Theme = "neon"
	if err := store.SavePreferences(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := store.Preferences(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("prefs = %+v, want %+v", got, want)
	}
}
