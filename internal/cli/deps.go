// Package cli provides the Cobra command tree and dependency injection
// wiring for the nuxt-eslint CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/core/project"
	"github.com/nuxt/nuxt-eslint/internal/defs"
	"github.com/nuxt/nuxt-eslint/internal/eslintgen"
	"github.com/nuxt/nuxt-eslint/internal/hook"
	"github.com/nuxt/nuxt-eslint/internal/template"
	"github.com/nuxt/nuxt-eslint/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config      *config.ConfigManager
	Hooks       hook.Registry
	Renderer    template.Renderer
	Resolver    eslintgen.Resolver
	Generator   *eslintgen.Generator
	Initializer project.Initializer
	Theme       *ui.Theme
	Headless    *ui.HeadlessManager
	Reporter    *ui.Reporter
	Out         io.Writer
	Logger      *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies. Operator
// output goes to out.
func InitDependencies(out io.Writer, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	theme := ui.NewTheme()
	headless := ui.NewHeadlessManager()
	reporter := ui.NewReporter(theme, headless, out)
	renderer := template.NewEmbeddedRenderer()
	resolver := eslintgen.NewNodeResolver()

	deps = &Dependencies{
		Config:      config.NewConfigManager(),
		Hooks:       hook.NewRegistry(),
		Renderer:    renderer,
		Resolver:    resolver,
		Generator:   eslintgen.NewGenerator(renderer, resolver, logger),
		Initializer: project.NewInitializer(renderer, bootstrapReporter{reporter}, logger),
		Theme:       theme,
		Headless:    headless,
		Reporter:    reporter,
		Out:         out,
		Logger:      logger,
	}
	registerBuiltinHooks(deps.Hooks)
}

// registerBuiltinHooks installs the handlers the module itself provides.
func registerBuiltinHooks(reg hook.Registry) {
	reg.Register(hook.On(hook.EventPrepareTypes, func(_ context.Context, p *hook.Payload) error {
		p.Declarations = append(p.Declarations, defs.TypegenReference)
		return nil
	}))
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// LoadConfig loads the project description. configPath wins when set;
// otherwise nuxt-eslint.yaml is searched upward from rootDir, and a default
// single-layer project rooted at rootDir is used when none exists.
func (d *Dependencies) LoadConfig(configPath, rootDir string) (*config.Config, error) {
	if configPath == "" {
		found, err := project.FindUp(rootDir, defs.ProjectFileYAML)
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	cfg, err := d.Config.Load(configPath, rootDir)
	if err != nil {
		return nil, err
	}
	d.Logger.Debug("project loaded",
		"config", configPath,
		"root", cfg.RootDir,
		"build_dir", cfg.BuildDir,
		"layers", len(cfg.Layers),
	)
	return cfg, nil
}

// requireDeps guards commands run without InitDependencies.
func requireDeps() (*Dependencies, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies not initialized")
	}
	return deps, nil
}
