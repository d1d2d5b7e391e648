package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// registry is the default implementation of the Registry interface.
type registry struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	timeout  time.Duration
}

// NewRegistry creates a new Registry with the default timeout.
func NewRegistry() Registry {
	return NewRegistryWithTimeout(DefaultHookTimeout)
}

// NewRegistryWithTimeout creates a new Registry with a custom timeout duration.
func NewRegistryWithTimeout(timeout time.Duration) Registry {
	if timeout <= 0 {
		timeout = DefaultHookTimeout
	}
	return &registry{
		handlers: make(map[EventType][]Handler),
		timeout:  timeout,
	}
}

// Register adds a handler to the registry for its declared event type.
func (r *registry) Register(handler Handler) {
	event := handler.EventType()
	r.mu.Lock()
	r.handlers[event] = append(r.handlers[event], handler)
	count := len(r.handlers[event])
	r.mu.Unlock()
	slog.Debug("handler registered",
		"event", string(event),
		"handler_count", count,
	)
}

// Dispatch runs the handlers of event in order within the registry timeout.
func (r *registry) Dispatch(ctx context.Context, event EventType, payload *Payload) error {
	if payload == nil {
		return ErrNilPayload
	}
	handlers := r.Handlers(event)
	if len(handlers) == 0 {
		slog.Debug("no handlers registered for event", "event", string(event))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for i, h := range handlers {
		slog.Debug("dispatching handler",
			"event", string(event),
			"handler_index", i,
			"handler_total", len(handlers),
		)

		err := h.Handle(ctx, payload)

		if ctx.Err() != nil {
			slog.Error("hook execution timed out",
				"event", string(event),
				"handler_index", i,
				"timeout", r.timeout.String(),
			)
			return fmt.Errorf("%w: %v", ErrHookTimeout, ctx.Err())
		}
		if err != nil {
			slog.Error("handler returned error",
				"event", string(event),
				"handler_index", i,
				"error", err.Error(),
			)
			return fmt.Errorf("handler %d for event %s: %w", i, event, err)
		}
	}
	return nil
}

// Handlers returns a copy of the handlers registered for event.
func (r *registry) Handlers(event EventType) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handler, len(r.handlers[event]))
	copy(out, r.handlers[event])
	return out
}
