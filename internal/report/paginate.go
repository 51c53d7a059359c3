package report

import (
	"fmt"

	"outlay/internal/core"
)

// Page is one visible slice of a filtered collection. StartIndex and
// EndIndex are 1-based inclusive bounds used for "5–8 of 23" range displays.
type Page struct {
	Items      []core.Expense `json:"items"`
	Total      int            `json:"total"`
	StartIndex int            `json:"startIndex"`
	EndIndex   int            `json:"endIndex"`
	TotalPages int            `json:"totalPages"`
}

// TotalPages computes the page count for a collection size, never less
// than one so an empty result still renders a single empty page.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, TotalPages(total, pageSize)]. Callers must
// clamp before handing the page to Paginate.
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if max := TotalPages(total, pageSize); page > max {
		return max
	}
	return page
}

// Paginate slices the filtered collection for a 1-based page. The page must
// already be in range (see ClampPage); out-of-range pages are a caller bug
// and produce an empty slice rather than a panic.
func Paginate(filtered []core.Expense, page, pageSize int) Page {
	total := len(filtered)
	p := Page{
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}
	if total == 0 || pageSize < 1 {
		p.Items = []core.Expense{}
		return p
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start >= total {
		p.Items = []core.Expense{}
		return p
	}
	if end > total {
		end = total
	}

	p.Items = append([]core.Expense(nil), filtered[start:end]...)
	p.StartIndex = start + 1
	p.EndIndex = end
	return p
}

// RangeLabel renders the visible range for the pagination bar. An empty
// result set renders as the literal "0".
func (p Page) RangeLabel() string {
	if p.Total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d–%d", p.StartIndex, p.EndIndex)
}
