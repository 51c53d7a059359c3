// Package store holds the single source of truth for the expense collection.
// Every mutation builds the next snapshot, writes it through the persistence
// gateway, and only then installs it in memory (persist-then-apply), so
// readers never observe state the backing store has not accepted.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
	"outlay/internal/gateway"
)

// Publisher receives change notifications after a mutation has committed.
// Publishing is best effort: failures are logged, never surfaced to callers.
type Publisher interface {
	PublishExpenseChanged(ctx context.Context, op, id string) error
}

// Change operation names carried on the event bus.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

type Store struct {
	mu       sync.Mutex
	gateway  gateway.Gateway
	events   Publisher
	expenses []core.Expense
	prefs    core.Preferences

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher attaches a change-event publisher. Nil disables publishing.
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.events = p }
}

// WithClock overrides the statistics clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id assignment, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(gw gateway.Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:  gw,
		expenses: []core.Expense{},
		prefs:    core.DefaultPreferences(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates the in-memory state from the gateway. Call once at startup
// before serving.
func (s *Store) Load(ctx context.Context) error {
	expenses, err := s.gateway.Expenses(ctx)
	if err != nil {
		return &core.PersistenceError{Op: "load expenses", Err: err}
	}
	prefs, err := s.gateway.Preferences(ctx)
	if err != nil {
		return &core.PersistenceError{Op: "load preferences", Err: err}
	}

	if expenses == nil {
		expenses = []core.Expense{}
	}

	s.mu.Lock()
	s.expenses = expenses
	s.prefs = prefs.Merge()
	s.mu.Unlock()

	slog.InfoContext(ctx, "Expense store loaded",
		"count", len(expenses),
		"currency", s.prefs.Currency)
	return nil
}

// List returns a snapshot of the collection, newest first. The caller owns
// the returned slice.
func (s *Store) List() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Never nil, so an empty collection serializes as [] rather than null.
	return append(make([]core.Expense, 0, len(s.expenses)), s.expenses...)
}

// Count returns the current collection size.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expenses)
}

// Add validates the draft, assigns an id when absent, persists the new
// snapshot, and prepends the entity so the collection stays newest first.
func (s *Store) Add(ctx context.Context, draft core.Expense) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}
	if draft.ID == "" {
		draft.ID = s.newID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.Expense, 0, len(s.expenses)+1)
	next = append(next, draft)
	next = append(next, s.expenses...)

	if err := s.gateway.SaveExpenses(ctx, next); err != nil {
		return core.Expense{}, &core.PersistenceError{Op: "save expenses", Err: err}
	}
	s.expenses = next

	s.publish(ctx, OpCreated, draft.ID)
	return draft, nil
}

// Update merges the patch into the expense matching id. The merged entity is
// re-validated before anything is written.
func (s *Store) Update(ctx context.Context, id string, patch core.Patch) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return core.Expense{}, fmt.Errorf("update %s: %w", id, core.ErrNotFound)
	}

	merged := patch.Apply(s.expenses[idx])
	merged.ID = id
	if err := merged.Validate(); err != nil {
		return core.Expense{}, err
	}

	next := append([]core.Expense(nil), s.expenses...)
	next[idx] = merged

	if err := s.gateway.SaveExpenses(ctx, next); err != nil {
		return core.Expense{}, &core.PersistenceError{Op: "save expenses", Err: err}
	}
	s.expenses = next

	s.publish(ctx, OpUpdated, id)
	return merged, nil
}

// Remove deletes the expense matching id. Removing an absent id is a no-op:
// no error, no write.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := make([]core.Expense, 0, len(s.expenses)-1)
	next = append(next, s.expenses[:idx]...)
	next = append(next, s.expenses[idx+1:]...)

	if err := s.gateway.SaveExpenses(ctx, next); err != nil {
		return &core.PersistenceError{Op: "save expenses", Err: err}
	}
	s.expenses = next

	s.publish(ctx, OpDeleted, id)
	return nil
}

// Statistics derives the aggregate figures from the current collection.
func (s *Store) Statistics() core.AggregateStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.ComputeStatistics(s.expenses, s.now())
}

// Preferences returns the current preferences.
func (s *Store) Preferences() core.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// UpdatePreferences validates and persists the new preferences.
func (s *Store) UpdatePreferences(ctx context.Context, prefs core.Preferences) (core.Preferences, error) {
	prefs = prefs.Merge()
	if err := prefs.Validate(); err != nil {
		return core.Preferences{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.SavePreferences(ctx, prefs); err != nil {
		return core.Preferences{}, &core.PersistenceError{Op: "save preferences", Err: err}
	}
	s.prefs = prefs
	return prefs, nil
}

// Replace swaps in a complete collection and preferences in one operation,
// used by backup restore. All-or-nothing: if either write fails the
// in-memory state keeps its pre-call value.
func (s *Store) Replace(ctx context.Context, expenses []core.Expense, prefs core.Preferences) error {
	prefs = prefs.Merge()
	if err := prefs.Validate(); err != nil {
		return err
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.SaveExpenses(ctx, expenses); err != nil {
		return &core.PersistenceError{Op: "save expenses", Err: err}
	}
	if err := s.gateway.SavePreferences(ctx, prefs); err != nil {
		// The expense write already landed; restore the previous snapshot so
		// memory and backing store stay consistent with each other.
		if restoreErr := s.gateway.SaveExpenses(ctx, s.expenses); restoreErr != nil {
			slog.ErrorContext(ctx, "Failed to restore expense snapshot after preference write failure",
				"error", restoreErr)
		}
		return &core.PersistenceError{Op: "save preferences", Err: err}
	}

	s.expenses = append([]core.Expense(nil), expenses...)
	s.prefs = prefs

	s.publish(ctx, OpUpdated, "*")
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) publish(ctx context.Context, op, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseChanged(ctx, op, id); err != nil {
		// The mutation already committed; a lost event only delays the
		// mirror until the next resync.
		slog.ErrorContext(ctx, "Failed to publish change event",
			"op", op,
			"expense_id", id,
			"error", err)
	}
}
