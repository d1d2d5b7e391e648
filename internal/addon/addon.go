// Package addon defines the providers that contribute imports and config
// fragments to the generated ESLint flat config, and the ordered registry
// they are collected from.
package addon

import (
	"context"
	"fmt"
	"log/slog"
)

// ImportLine is one symbol imported by the generated module.
// Duplicates are allowed and rendered as given.
type ImportLine struct {
	From string `json:"from"`
	Name string `json:"name"`
	As   string `json:"as,omitempty"`
}

// Result is what an addon contributes. Either list may be empty.
type Result struct {
	Imports []ImportLine
	Configs []string
}

// Addon contributes imports and config fragments to the generated module.
type Addon interface {
	// Name identifies the addon in logs and errors.
	Name() string

	// GetConfigs returns the addon's contribution. A nil result is valid.
	GetConfigs(ctx context.Context) (*Result, error)
}

// Func adapts a function to the Addon interface.
type Func struct {
	AddonName string
	Fn        func(ctx context.Context) (*Result, error)
}

// Name implements Addon.
func (f Func) Name() string { return f.AddonName }

// GetConfigs implements Addon.
func (f Func) GetConfigs(ctx context.Context) (*Result, error) { return f.Fn(ctx) }

// Registry is an explicit, ordered list of addons.
type Registry struct {
	addons []Addon
}

// NewRegistry creates a registry seeded with the given addons.
func NewRegistry(seed ...Addon) *Registry {
	r := &Registry{}
	r.Add(seed...)
	return r
}

// Add appends addons; invocation order is registration order.
func (r *Registry) Add(addons ...Addon) {
	for _, a := range addons {
		if a == nil {
			continue
		}
		r.addons = append(r.addons, a)
		slog.Debug("addon registered", "addon", a.Name(), "addon_count", len(r.addons))
	}
}

// List returns a copy of the registered addons in order.
func (r *Registry) List() []Addon {
	out := make([]Addon, len(r.addons))
	copy(out, r.addons)
	return out
}

// Len returns the number of registered addons.
func (r *Registry) Len() int {
	return len(r.addons)
}

// Collect invokes every addon sequentially and concatenates the results in
// order. The first failing addon aborts collection; nothing partial is
// returned.
func Collect(ctx context.Context, addons []Addon) (*Result, error) {
	out := &Result{}
	for i, a := range addons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := a.GetConfigs(ctx)
		if err != nil {
			return nil, fmt.Errorf("addon %d (%s): %w", i, a.Name(), err)
		}
		if res == nil {
			slog.Debug("addon contributed nothing", "addon", a.Name())
			continue
		}
		out.Imports = append(out.Imports, res.Imports...)
		out.Configs = append(out.Configs, res.Configs...)
		slog.Debug("addon collected",
			"addon", a.Name(),
			"imports", len(res.Imports),
			"configs", len(res.Configs),
		)
	}
	return out, nil
}
