// Package worker keeps the Google Sheets mirror in step with the persistence
// gateway. Change events only say that something changed; the worker re-reads
// the full collection and rewrites the mirror, so a lost or reordered event is
// repaired by the next one (or by the periodic resync).
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/gateway"
)

// Mirror is the sink the worker writes the collection snapshot to.
type Mirror interface {
	Replace(ctx context.Context, expenses []core.Expense) error
}

// MirrorWorker reads the expense collection from the gateway and mirrors it.
type MirrorWorker struct {
	gateway gateway.Gateway
	mirror  Mirror
}

func NewMirrorWorker(gw gateway.Gateway, mirror Mirror) *MirrorWorker {
	return &MirrorWorker{
		gateway: gw,
		mirror:  mirror,
	}
}

// HandleEvent processes a single expense change event from AMQP.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing change event",
		"op", msg.Op,
		"id", msg.ID)

	if err := w.Resync(ctx); err != nil {
		return fmt.Errorf("resync after %s event: %w", msg.Op, err)
	}
	return nil
}

// Resync reads the full collection and rewrites the mirror sheet.
func (w *MirrorWorker) Resync(ctx context.Context) error {
	expenses, err := w.gateway.Expenses(ctx)
	if err != nil {
		return fmt.Errorf("read expenses from gateway: %w", err)
	}

	if err := w.mirror.Replace(ctx, expenses); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}

	slog.InfoContext(ctx, "Mirror resynced", "expenses", len(expenses))
	return nil
}

// StartupSync runs one full resync at worker startup.
// This is useful to recover from missed AMQP events or worker downtime.
func (w *MirrorWorker) StartupSync(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup mirror sync")
	if err := w.Resync(ctx); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}
