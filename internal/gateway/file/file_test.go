package file

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"outlay/internal/core"
)

func TestStore_EmptyDirectory(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	expenses, err := store.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("fresh store should be empty, got %d items", len(expenses))
	}

	prefs, err := store.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs != (core.Preferences{}) {
		t.Errorf("fresh store prefs should be zero, got %+v", prefs)
	}
}

func TestStore_ReadAfterWrite(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	want := []core.Expense{
		{ID: "a", Title: "Coffee", Amount: 4.5, Category: core.CategoryFood, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "Bus", Amount: 2.75, Category: core.CategoryTransport, Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Notes: "day pass"},
	}
	if err := store.SaveExpenses(ctx, want); err != nil {
		t.Fatalf("SaveExpenses: %v", err)
	}
	got, err := store.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	prefs := core.Preferences{Currency: "EUR", Theme: "light"}
	if err := store.SavePreferences(ctx, prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	gotPrefs, err := store.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if gotPrefs != prefs {
		t.Errorf("prefs round trip = %+v, want %+v", gotPrefs, prefs)
	}
}

func TestStore_SaveReplacesWholeCollection(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	first := []core.Expense{{ID: "a", Title: "x", Amount: 1, Category: core.CategoryOther, Date: time.Now()}}
	if err := store.SaveExpenses(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveExpenses(ctx, []core.Expense{}); err != nil {
		t.Fatal(err)
	}
	got, err := store.Expenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("save of empty snapshot should clear the collection, got %d items", len(got))
	}
}

func TestStore_CorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "expenses.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Expenses(context.Background()); err == nil {
		t.Fatal("corrupt expenses file should surface a read error")
	}
}
