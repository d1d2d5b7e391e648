// Package hook dispatches the lifecycle events through which the generator,
// addons and devtools integration exchange data.
package hook

import (
	"context"
	"errors"
	"time"

	"github.com/nuxt/nuxt-eslint/internal/addon"
	"github.com/nuxt/nuxt-eslint/internal/devtools"
)

// DefaultHookTimeout bounds one dispatch of an event.
const DefaultHookTimeout = 30 * time.Second

// Sentinel errors for hook dispatch.
var (
	// ErrHookTimeout indicates that a dispatch exceeded its timeout.
	ErrHookTimeout = errors.New("hook: execution timed out")

	// ErrNilPayload indicates a dispatch without a payload.
	ErrNilPayload = errors.New("hook: nil payload")
)

// EventType names a lifecycle event.
type EventType string

const (
	// EventPrepareTypes collects type declarations for the build directory.
	EventPrepareTypes EventType = "prepare:types"

	// EventConfigAddons lets handlers append addons to the generator.
	EventConfigAddons EventType = "eslint:config:addons"

	// EventCustomTabs collects custom devtools tabs.
	EventCustomTabs EventType = "devtools:customTabs"

	// EventCustomTabsRefresh asks devtools to collect its tabs again.
	EventCustomTabsRefresh EventType = "devtools:customTabs:refresh"
)

// ValidEventTypes returns every supported event.
func ValidEventTypes() []EventType {
	return []EventType{
		EventPrepareTypes,
		EventConfigAddons,
		EventCustomTabs,
		EventCustomTabsRefresh,
	}
}

// IsValidEventType reports whether et is a supported event.
func IsValidEventType(et EventType) bool {
	for _, v := range ValidEventTypes() {
		if v == et {
			return true
		}
	}
	return false
}

// Payload is the mutable data shared by the handlers of one dispatch.
// Each event uses one field; handlers append to it.
type Payload struct {
	// Declarations receives lines for prepare:types.
	Declarations []string

	// Addons receives addons for eslint:config:addons.
	Addons *addon.Registry

	// Tabs receives tabs for devtools:customTabs.
	Tabs []devtools.Tab
}

// Handler processes one event type.
type Handler interface {
	// Handle processes the event. ctx carries the dispatch timeout.
	Handle(ctx context.Context, payload *Payload) error

	// EventType returns the event type this handler processes.
	EventType() EventType
}

// HandlerFunc adapts a function to Handler for a fixed event.
type HandlerFunc struct {
	Event EventType
	Fn    func(ctx context.Context, payload *Payload) error
}

// Handle implements Handler.
func (h HandlerFunc) Handle(ctx context.Context, payload *Payload) error {
	return h.Fn(ctx, payload)
}

// EventType implements Handler.
func (h HandlerFunc) EventType() EventType { return h.Event }

// On builds a Handler from a function.
func On(event EventType, fn func(ctx context.Context, payload *Payload) error) Handler {
	return HandlerFunc{Event: event, Fn: fn}
}

// Registry manages handler registration and event dispatching.
type Registry interface {
	// Register adds a handler for its declared event type.
	Register(handler Handler)

	// Dispatch runs every handler of event sequentially in registration
	// order. The first error stops the chain.
	Dispatch(ctx context.Context, event EventType, payload *Payload) error

	// Handlers returns the handlers registered for event.
	Handlers(event EventType) []Handler
}
