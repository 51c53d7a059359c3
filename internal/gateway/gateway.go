// Package gateway defines the persistence port the expense store writes
// through. Implementations exchange whole snapshots: every save replaces the
// full collection, so a write either lands completely or not at all.
package gateway

import (
	"context"

	"outlay/internal/core"
)

// Gateway is the outbound port for durable storage. All implementations must
// guarantee read-after-write within the same process: a successful Save
// followed by the matching read returns the just-written value.
type Gateway interface {
	// Expenses returns the stored collection, or an empty slice when
	// nothing has been stored yet.
	Expenses(ctx context.Context) ([]core.Expense, error)

	// SaveExpenses replaces the stored collection with the given snapshot.
	SaveExpenses(ctx context.Context, expenses []core.Expense) error

	// Preferences returns the stored preferences. A zero value means none
	// are stored; callers layer defaults over the result.
	Preferences(ctx context.Context) (core.Preferences, error)

	// SavePreferences replaces the stored preferences.
	SavePreferences(ctx context.Context, prefs core.Preferences) error
}
