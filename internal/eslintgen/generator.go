package eslintgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/nuxt/nuxt-eslint/internal/addon"
	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/core/project"
	"github.com/nuxt/nuxt-eslint/internal/defs"
	"github.com/nuxt/nuxt-eslint/internal/template"
)

// BaseConfig is the first config fragment of every generated module.
const BaseConfig = "// Nuxt Configs\ncreateConfigForNuxt(options)"

// RequiredImports returns the imports every generated module starts with.
func RequiredImports() []addon.ImportLine {
	return []addon.ImportLine{
		{From: "eslint-flat-config-utils", Name: "composer"},
		{From: "eslint-typegen", Name: "default", As: "typegen"},
		{From: "@nuxt/eslint-config/flat", Name: "createConfigForNuxt"},
		{From: "@nuxt/eslint-config/flat", Name: "defineFlatConfigs"},
		{From: "@nuxt/eslint-config/flat", Name: "resolveOptions"},
	}
}

// Output holds the generated file contents.
type Output struct {
	// Config is the eslint.config.mjs module.
	Config []byte

	// Types is the eslint.config.d.mts companion.
	Types []byte
}

// Generator renders the flat config module.
type Generator struct {
	renderer template.Renderer
	resolver Resolver
	logger   *slog.Logger
}

// NewGenerator creates a Generator. A nil resolver uses NewNodeResolver.
func NewGenerator(renderer template.Renderer, resolver Resolver, logger *slog.Logger) *Generator {
	if resolver == nil {
		resolver = NewNodeResolver()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{renderer: renderer, resolver: resolver, logger: logger}
}

// Generate collects the addons in order and renders both generated files.
// Any addon or resolution failure aborts without output.
func (g *Generator) Generate(ctx context.Context, cfg *config.Config, addons []addon.Addon) (*Output, error) {
	if !cfg.ESLint.Config.Enabled() {
		return nil, ErrGenerationDisabled
	}

	imports := RequiredImports()
	configs := []string{BaseConfig}

	collected, err := addon.Collect(ctx, addons)
	if err != nil {
		return nil, fmt.Errorf("collect addons: %w", err)
	}
	imports = append(imports, collected.Imports...)
	configs = append(configs, collected.Configs...)

	imports, err = g.NormalizeImports(imports, cfg.RootDir)
	if err != nil {
		return nil, err
	}

	options, err := MarshalOptions(cfg)
	if err != nil {
		return nil, err
	}

	module, err := g.renderer.Render(template.GeneratedConfigTemplate, template.ConfigContext{
		Imports:     StringifyImports(imports),
		Options:     options,
		Configs:     configs,
		TypegenPath: defs.TypegenDTS,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", defs.GeneratedConfigMJS, err)
	}
	types, err := g.renderer.Render(template.GeneratedTypesTemplate, nil)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", defs.GeneratedConfigDTS, err)
	}

	g.logger.Debug("eslint config generated",
		"imports", len(imports),
		"configs", len(configs),
		"bytes", len(module),
	)
	return &Output{Config: module, Types: types}, nil
}

// NormalizeImports rewrites every specifier that is neither a builtin nor
// scheme-prefixed into the file URL it resolves to from rootDir.
func (g *Generator) NormalizeImports(lines []addon.ImportLine, rootDir string) ([]addon.ImportLine, error) {
	out := make([]addon.ImportLine, len(lines))
	resolved := make(map[string]string)
	for i, line := range lines {
		out[i] = line
		if keepSpecifier(line.From) {
			continue
		}
		u, ok := resolved[line.From]
		if !ok {
			path, err := g.resolver.Resolve(line.From, rootDir)
			if err != nil {
				return nil, fmt.Errorf("normalize import %q: %w", line.From, err)
			}
			u = FileURL(path)
			resolved[line.From] = u
			g.logger.Debug("import resolved", "specifier", line.From, "url", u)
		}
		out[i].From = u
	}
	return out, nil
}

// basicOptions is the argument of resolveOptions in the generated module.
type basicOptions struct {
	Features *config.Features `json:"features"`
	Dirs     project.DirsMap  `json:"dirs"`
}

// MarshalOptions serializes {features, dirs} as two-space indented JSON
// without HTML escaping, matching JSON.stringify(value, null, 2).
func MarshalOptions(cfg *config.Config) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(basicOptions{
		Features: cfg.ESLint.Config.GenOptions(),
		Dirs:     project.ResolveDirs(cfg),
	}); err != nil {
		return "", fmt.Errorf("marshal options: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// RenderDeclarations renders the declarations collected through the
// prepare:types hook.
func (g *Generator) RenderDeclarations(declarations []string) ([]byte, error) {
	out, err := g.renderer.Render(template.DeclarationsTemplate, template.DeclarationsContext{Declarations: declarations})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", defs.TypesDeclarationDTS, err)
	}
	return out, nil
}
