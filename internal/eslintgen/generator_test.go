package eslintgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuxt/nuxt-eslint/internal/addon"
	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/template"
	"github.com/nuxt/nuxt-eslint/pkg/models"
)

// stubResolver maps every specifier to /abs/<specifier>.mjs and records the
// lookups it served.
type stubResolver struct {
	calls []string
	fail  map[string]bool
}

func (s *stubResolver) Resolve(specifier, _ string) (string, error) {
	s.calls = append(s.calls, specifier)
	if s.fail[specifier] {
		return "", fmt.Errorf("%w: %s", ErrModuleNotFound, specifier)
	}
	return "/abs/" + specifier + ".mjs", nil
}

func newTestGenerator(r Resolver) *Generator {
	return NewGenerator(template.NewEmbeddedRenderer(), r, nil)
}

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default("/proj")
	require.NoError(t, err)
	return cfg
}

const expectedDefaultModule = `// ESLint config generated by Nuxt
/// <reference path="./eslint-typegen.d.ts" />

import { composer } from 'file:///abs/eslint-flat-config-utils.mjs';
import typegen from 'file:///abs/eslint-typegen.mjs';
import { createConfigForNuxt, defineFlatConfigs, resolveOptions } from 'file:///abs/@nuxt/eslint-config/flat.mjs';

export { defineFlatConfigs }

export const configs = composer()

export const options = resolveOptions({
  "features": {
    "standalone": true
  },
  "dirs": {
    "pages": [
      "pages"
    ],
    "composables": [
      "composables",
      "utils"
    ],
    "components": [
      "components"
    ],
    "layouts": [
      "layouts"
    ],
    "plugins": [
      "plugins"
    ],
    "middleware": [
      "middleware"
    ],
    "modules": [
      "modules"
    ],
    "servers": [],
    "root": [
      "/proj"
    ],
    "src": [
      ""
    ]
  }
})

configs.append(
// Nuxt Configs
createConfigForNuxt(options)
)

export function withNuxt(...customs) {
  return configs.clone().append(...customs).onResolved(configs => typegen(configs, { dtsPath: new URL("./eslint-typegen.d.ts", import.meta.url) }))
}

export default withNuxt`

func TestGenerateDefaultProject(t *testing.T) {
	out, err := newTestGenerator(&stubResolver{}).Generate(context.Background(), defaultConfig(t), nil)
	require.NoError(t, err)
	assert.Equal(t, expectedDefaultModule, string(out.Config))
	assert.True(t, strings.HasPrefix(string(out.Types), `import type { FlatConfigComposer, FlatConfigItem } from "eslint-flat-config-utils"`))
	assert.True(t, strings.HasSuffix(string(out.Types), "export { withNuxt, defineFlatConfigs, configs, options }"))
}

func TestGenerateAddonOrdering(t *testing.T) {
	addons := []addon.Addon{
		addon.Func{AddonName: "a", Fn: func(context.Context) (*addon.Result, error) {
			return &addon.Result{
				Imports: []addon.ImportLine{{From: "x", Name: "pluginX"}},
				Configs: []string{"A"},
			}, nil
		}},
		addon.Func{AddonName: "b", Fn: func(context.Context) (*addon.Result, error) {
			return &addon.Result{Configs: []string{"B"}}, nil
		}},
	}
	res := &stubResolver{}
	out, err := newTestGenerator(res).Generate(context.Background(), defaultConfig(t), addons)
	require.NoError(t, err)

	text := string(out.Config)
	assert.Contains(t, text, "configs.append(\n"+BaseConfig+",\n\nA,\n\nB\n)")
	assert.Contains(t, text, "import { pluginX } from 'file:///abs/x.mjs';")
	assert.Equal(t, []string{"eslint-flat-config-utils", "eslint-typegen", "@nuxt/eslint-config/flat", "x"}, res.calls)
	assert.Equal(t, 4, strings.Count(text, "\nimport "))
}

func TestGenerateIsIdempotent(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.ESLint.Config.Options = config.NewFeatures()
	cfg.ESLint.Config.Options.Set("stylistic", true)
	cfg.Layers = append(cfg.Layers, models.Layer{SrcDir: "/proj/layers/base"})
	g := newTestGenerator(&stubResolver{})

	first, err := g.Generate(context.Background(), cfg, []addon.Addon{addon.NewGlobals([]string{"useState"})})
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), cfg, []addon.Addon{addon.NewGlobals([]string{"useState"})})
	require.NoError(t, err)
	assert.Equal(t, first.Config, second.Config)
	assert.Equal(t, first.Types, second.Types)
}

func TestGenerateLeavesBuiltinsUnresolved(t *testing.T) {
	addons := []addon.Addon{addon.Func{AddonName: "builtins", Fn: func(context.Context) (*addon.Result, error) {
		return &addon.Result{Imports: []addon.ImportLine{
			{From: "node:path", Name: "join"},
			{From: "fs", Name: "default", As: "fs"},
			{From: "virtual:thing", Name: "*", As: "thing"},
		}}, nil
	}}}
	res := &stubResolver{}
	out, err := newTestGenerator(res).Generate(context.Background(), defaultConfig(t), addons)
	require.NoError(t, err)

	text := string(out.Config)
	assert.Contains(t, text, "import { join } from 'node:path';")
	assert.Contains(t, text, "import fs from 'fs';")
	assert.Contains(t, text, "import * as thing from 'virtual:thing';")
	assert.NotContains(t, res.calls, "fs")
	assert.NotContains(t, res.calls, "node:path")
}

func TestGenerateFailures(t *testing.T) {
	t.Run("addon error aborts", func(t *testing.T) {
		boom := errors.New("boom")
		addons := []addon.Addon{addon.Func{AddonName: "bad", Fn: func(context.Context) (*addon.Result, error) {
			return nil, boom
		}}}
		out, err := newTestGenerator(&stubResolver{}).Generate(context.Background(), defaultConfig(t), addons)
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, out)
	})

	t.Run("resolution error aborts", func(t *testing.T) {
		res := &stubResolver{fail: map[string]bool{"eslint-typegen": true}}
		out, err := newTestGenerator(res).Generate(context.Background(), defaultConfig(t), nil)
		assert.ErrorIs(t, err, ErrModuleNotFound)
		assert.Nil(t, out)
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.ESLint.Config.Disabled = true
		_, err := newTestGenerator(&stubResolver{}).Generate(context.Background(), cfg, nil)
		assert.ErrorIs(t, err, ErrGenerationDisabled)
	})
}

func TestMarshalOptionsKeepsFeatureOrder(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.ESLint.Config.Options = config.NewFeatures()
	cfg.ESLint.Config.Options.Set("tooling", "<b>&")
	cfg.ESLint.Config.Options.Set("standalone", false)

	got, err := MarshalOptions(cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "{\n  \"features\": {\n    \"standalone\": false,\n    \"tooling\": \"<b>&\"\n  },"), got)
	assert.False(t, strings.HasSuffix(got, "\n"))
}
