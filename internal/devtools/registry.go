package devtools

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Collector gathers the current tabs, typically by dispatching the
// devtools:customTabs hook.
type Collector func(ctx context.Context) ([]Tab, error)

// Registry caches the tabs produced by a Collector. Tabs are rebuilt on
// every Refresh, so their views always reflect the current state of their
// owners.
type Registry struct {
	collect Collector

	mu   sync.RWMutex
	tabs []Tab
	gen  uint64
}

// NewRegistry creates a Registry backed by collect.
func NewRegistry(collect Collector) *Registry {
	return &Registry{collect: collect}
}

// Refresh recollects the tabs.
func (r *Registry) Refresh(ctx context.Context) error {
	tabs, err := r.collect(ctx)
	if err != nil {
		return fmt.Errorf("collect devtools tabs: %w", err)
	}
	r.mu.Lock()
	r.tabs = tabs
	r.gen++
	gen := r.gen
	r.mu.Unlock()
	slog.Debug("devtools tabs refreshed", "tabs", len(tabs), "generation", gen)
	return nil
}

// Tabs returns the tabs of the last refresh.
func (r *Registry) Tabs() []Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tab, len(r.tabs))
	copy(out, r.tabs)
	return out
}

// Generation counts successful refreshes.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Action returns action index of the named tab's launch view.
func (r *Registry) Action(name string, index int) (Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tab := range r.tabs {
		if tab.Name != name {
			continue
		}
		if index < 0 || index >= len(tab.View.Actions) {
			return Action{}, fmt.Errorf("%w: %s[%d]", ErrActionNotFound, name, index)
		}
		return tab.View.Actions[index], nil
	}
	return Action{}, fmt.Errorf("%w: %s", ErrTabNotFound, name)
}

// RunAction runs action index of the named tab's launch view and waits
// for it.
func (r *Registry) RunAction(ctx context.Context, name string, index int) error {
	action, err := r.Action(name, index)
	if err != nil {
		return err
	}
	if action.Handle == nil {
		return nil
	}
	return action.Handle(ctx)
}
