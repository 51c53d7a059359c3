package report

import (
	"fmt"
	"testing"
	"time"

	"outlay/internal/core"
)

func manyExpenses(n int) []core.Expense {
	out := make([]core.Expense, n)
	for i := range out {
		out[i] = core.Expense{
			ID:       fmt.Sprintf("e%d", i),
			Title:    fmt.Sprintf("item %d", i),
			Amount:   float64(i + 1),
			Category: core.CategoryOther,
			Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
	}
	return out
}

func TestPaginate_MiddlePage(t *testing.T) {
	p := Paginate(manyExpenses(10), 2, 4)

	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if p.StartIndex != 5 || p.EndIndex != 8 {
		t.Errorf("range = %d–%d, want 5–8", p.StartIndex, p.EndIndex)
	}
	if len(p.Items) != 4 || p.Items[0].ID != "e4" || p.Items[3].ID != "e7" {
		t.Errorf("items = %v, want original indices 4..7", p.Items)
	}
	if got := p.RangeLabel(); got != "5–8" {
		t.Errorf("RangeLabel = %q", got)
	}
}

func TestPaginate_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		pageSize   int
		wantStart  int
		wantEnd    int
		wantCount  int
		wantPages  int
	}{
		{"first page full", 10, 1, 4, 1, 4, 4, 3},
		{"last page short", 10, 3, 4, 9, 10, 2, 3},
		{"exact fit", 8, 2, 4, 5, 8, 4, 2},
		{"single page", 3, 1, 25, 1, 3, 3, 1},
		{"empty collection", 0, 1, 10, 0, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(manyExpenses(tt.total), tt.page, tt.pageSize)
			if p.StartIndex != tt.wantStart || p.EndIndex != tt.wantEnd {
				t.Errorf("range = %d–%d, want %d–%d", p.StartIndex, p.EndIndex, tt.wantStart, tt.wantEnd)
			}
			if len(p.Items) != tt.wantCount {
				t.Errorf("len(items) = %d, want %d", len(p.Items), tt.wantCount)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if tt.wantCount > 0 {
				if p.StartIndex < 1 {
					t.Error("StartIndex must be >= 1")
				}
				if span := p.EndIndex - p.StartIndex + 1; span > tt.pageSize {
					t.Errorf("visible span %d exceeds page size %d", span, tt.pageSize)
				}
			}
		})
	}
}

func TestPaginate_EmptyRangeLabel(t *testing.T) {
	p := Paginate(nil, 1, 10)
	if got := p.RangeLabel(); got != "0" {
		t.Fatalf("RangeLabel for empty set = %q, want \"0\"", got)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, size, want int
	}{
		{0, 10, 4, 1},
		{-5, 10, 4, 1},
		{2, 10, 4, 2},
		{7, 10, 4, 3},
		{3, 0, 10, 1},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total, tt.size); got != tt.want {
			t.Errorf("ClampPage(%d, %d, %d) = %d, want %d", tt.page, tt.total, tt.size, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Fatalf("Summarize(nil) = %+v, want zeros", got)
	}
	got := Summarize([]core.Expense{
		{Amount: 5}, {Amount: 1.5}, {Amount: 12},
	})
	want := Summary{Count: 3, Total: 18.5, Min: 1.5, Max: 12}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}
