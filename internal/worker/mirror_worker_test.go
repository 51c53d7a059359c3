package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/core"
)

type fakeGateway struct {
	expenses []core.Expense
	err      error
	reads    int
}

func (g *fakeGateway) Expenses(ctx context.Context) ([]core.Expense, error) {
	g.reads++
	return g.expenses, g.err
}

func (g *fakeGateway) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	return nil
}

func (g *fakeGateway) Preferences(ctx context.Context) (core.Preferences, error) {
	return core.DefaultPreferences(), nil
}

func (g *fakeGateway) SavePreferences(ctx context.Context, prefs core.Preferences) error {
	return nil
}

type fakeMirror struct {
	replaced [][]core.Expense
	err      error
}

func (m *fakeMirror) Replace(ctx context.Context, expenses []core.Expense) error {
	if m.err != nil {
		return m.err
	}
	m.replaced = append(m.replaced, expenses)
	return nil
}

func TestMirrorWorker_HandleEvent(t *testing.T) {
	gw := &fakeGateway{expenses: []core.Expense{
		{ID: "a", Title: "Coffee", Amount: 4.5, Category: core.CategoryFood, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}}
	mirror := &fakeMirror{}
	w := NewMirrorWorker(gw, mirror)

	msg := &amqp.ExpenseEvent{Op: "created", ID: "a", Timestamp: time.Now()}
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if gw.reads != 1 {
		t.Errorf("gateway reads = %d, want 1", gw.reads)
	}
	if len(mirror.replaced) != 1 || len(mirror.replaced[0]) != 1 {
		t.Fatalf("mirror.replaced = %v", mirror.replaced)
	}
	if mirror.replaced[0][0].ID != "a" {
		t.Errorf("mirrored expense = %+v", mirror.replaced[0][0])
	}
}

func TestMirrorWorker_GatewayErrorSurfaces(t *testing.T) {
	gw := &fakeGateway{err: errors.New("disk gone")}
	w := NewMirrorWorker(gw, &fakeMirror{})

	err := w.HandleEvent(context.Background(), &amqp.ExpenseEvent{Op: "deleted", ID: "x"})
	if err == nil {
		t.Fatal("expected error when gateway read fails")
	}
}

func TestMirrorWorker_MirrorErrorSurfaces(t *testing.T) {
	gw := &fakeGateway{}
	mirror := &fakeMirror{err: errors.New("quota exceeded")}
	w := NewMirrorWorker(gw, mirror)

	if err := w.Resync(context.Background()); err == nil {
		t.Fatal("expected error when mirror write fails")
	}
}

func TestMirrorWorker_StartupSync(t *testing.T) {
	gw := &fakeGateway{expenses: []core.Expense{}}
	mirror := &fakeMirror{}
	w := NewMirrorWorker(gw, mirror)

	if err := w.StartupSync(context.Background()); err != nil {
		t.Fatalf("StartupSync: %v", err)
	}
	if len(mirror.replaced) != 1 {
		t.Errorf("mirror writes = %d, want 1", len(mirror.replaced))
	}
}
