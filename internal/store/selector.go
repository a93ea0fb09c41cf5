package store

import (
	"log/slog"
	"sync/atomic"
)

// Selector holds the process-wide reference to the active backend. It is set
// once at startup and may be swapped at runtime (the admin migration trigger
// redirects all future calls to the hosted backend).
//
// Swap is lock-free; requests in flight during a swap may observe either the
// old or the new backend, which is a benign transient given that swaps only
// happen at startup or via an explicit admin action.
type Selector struct {
	active atomic.Pointer[activeBackend]
	logger *slog.Logger
}

type activeBackend struct {
	store Store
}

// NewSelector creates a Selector with the given initial backend.
func NewSelector(initial Store, logger *slog.Logger) *Selector {
	if initial == nil {
		panic("initial backend cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	sel := &Selector{logger: logger.With(slog.String("component", "selector"))}
	sel.active.Store(&activeBackend{store: initial})
	return sel
}

// Active returns the currently active backend.
func (sel *Selector) Active() Store {
	return sel.active.Load().store
}

// Swap atomically replaces the active backend. All subsequent Active calls
// observe the new backend.
func (sel *Selector) Swap(next Store) {
	if next == nil {
		panic("backend cannot be nil")
	}
	prev := sel.active.Swap(&activeBackend{store: next})
	sel.logger.Info("active storage backend swapped",
		slog.String("from", prev.store.Name()),
		slog.String("to", next.Name()))
}
