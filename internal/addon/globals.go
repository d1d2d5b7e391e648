package addon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/nuxt/nuxt-eslint/internal/config"
)

// GlobalsAddonName is the name of the built-in import globals addon.
const GlobalsAddonName = "nuxt:eslint:import-globals"

// Globals declares every auto-imported name as a readonly ESLint global,
// so rules such as no-undef accept code relying on auto-imports.
type Globals struct {
	names []string
}

// NewGlobals creates the addon from the auto-import names of a project.
// Names are deduplicated and sorted so the emitted fragment is stable.
func NewGlobals(names []string) *Globals {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	slices.Sort(out)
	return &Globals{names: out}
}

// NewGlobalsFromConfig collects the auto-import names of the project and of
// every layer.
func NewGlobalsFromConfig(cfg *config.Config) *Globals {
	names := append([]string{}, cfg.Imports.Globals...)
	for _, layer := range cfg.Layers {
		names = append(names, layer.Imports.Globals...)
	}
	return NewGlobals(names)
}

// Name implements Addon.
func (g *Globals) Name() string { return GlobalsAddonName }

// GetConfigs implements Addon. It contributes nothing when the project has
// no auto-imports.
func (g *Globals) GetConfigs(_ context.Context) (*Result, error) {
	if len(g.names) == 0 {
		return nil, nil
	}

	globals := config.NewFeatures()
	for _, n := range g.names {
		globals.Set(n, "readonly")
	}
	wrapper := config.NewFeatures()
	wrapper.Set("globals", globals)

	raw, err := wrapper.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode globals: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indent globals: %w", err)
	}

	fragment := strings.Join([]string{
		"// Set globals from imports registry",
		"{",
		"  name: 'nuxt/import-globals',",
		"  languageOptions: " + pretty.String(),
		"}",
	}, "\n")

	return &Result{Configs: []string{fragment}}, nil
}
