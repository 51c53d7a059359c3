package core

import (
	"math"
	"strings"
	"time"
)

// Category is one of the fixed expense categories shared by validation,
// filtering, and the UI.
type Category = string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
	CategoryTravel        Category = "Travel"
	CategoryOther         Category = "Other"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategoryShopping,
		CategoryTravel,
		CategoryOther,
	}
}

// ValidCategory reports whether c belongs to the fixed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single recorded expense. The store owns the canonical
// collection; consumers get value copies.
type Expense struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// Validate checks the field invariants shared by create and update. The ID
// is not checked here; drafts without one are legal and get an ID assigned
// by the store.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: ErrEmptyTitle}
	}
	if e.Amount <= 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return &ValidationError{Field: "amount", Reason: ErrInvalidAmount}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Reason: ErrEmptyCategory}
	}
	if !ValidCategory(e.Category) {
		return &ValidationError{Field: "category", Reason: ErrUnknownCategory}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: ErrMissingDate}
	}
	return nil
}

// Patch carries the fields of a partial update. Nil means "leave unchanged",
// so callers can distinguish clearing notes from not touching them.
type Patch struct {
	Title    *string    `json:"title,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Category *string    `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// Apply merges the patch into a copy of e and returns it. The result still
// has to pass Validate before it may replace the original.
func (p Patch) Apply(e Expense) Expense {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// Empty reports whether the patch touches no fields.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Amount == nil && p.Category == nil && p.Date == nil && p.Notes == nil
}

// ParseDate parses the date formats accepted at API boundaries: a plain
// calendar date (2006-01-02) or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
