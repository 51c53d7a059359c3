package sheets

import (
	"testing"
	"time"

	"outlay/internal/core"
)

func TestMirrorRows(t *testing.T) {
	expenses := []core.Expense{
		{ID: "a", Title: "Coffee", Amount: 4.5, Category: core.CategoryFood, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "Train", Amount: 19.9, Category: core.CategoryTransport, Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Notes: "to Milan"},
	}

	rows := mirrorRows(expenses)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "Title" || rows[0][4] != "Notes" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "Coffee" || rows[1][1] != 4.5 || rows[1][3] != "2024-01-05" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][4] != "to Milan" {
		t.Errorf("notes cell = %v", rows[2][4])
	}
}

func TestMirrorRows_Empty(t *testing.T) {
	rows := mirrorRows(nil)
	if len(rows) != 1 {
		t.Fatalf("empty collection should still produce the header row, got %d rows", len(rows))
	}
}
