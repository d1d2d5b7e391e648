package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nuxt/nuxt-eslint/internal/addon"
	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/core/project"
	"github.com/nuxt/nuxt-eslint/internal/defs"
	"github.com/nuxt/nuxt-eslint/internal/eslintgen"
	"github.com/nuxt/nuxt-eslint/internal/hook"
	"github.com/nuxt/nuxt-eslint/internal/ui"
)

// bootstrapReporter renders the migration hint as Markdown.
type bootstrapReporter struct {
	*ui.Reporter
}

func (r bootstrapReporter) Info(msg string) {
	r.Markdown(msg)
}

// generateResult lists what one generation run produced.
type generateResult struct {
	Files        *eslintgen.WrittenFiles
	Declarations string
	Addons       int
	Init         *project.InitResult
}

// collectAddons seeds the registry with the built-in addons and lets
// eslint:config:addons handlers append theirs.
func collectAddons(ctx context.Context, d *Dependencies, cfg *config.Config) ([]addon.Addon, error) {
	registry := addon.NewRegistry(addon.NewGlobalsFromConfig(cfg))
	if err := d.Hooks.Dispatch(ctx, hook.EventConfigAddons, &hook.Payload{Addons: registry}); err != nil {
		return nil, fmt.Errorf("collect addons: %w", err)
	}
	return registry.List(), nil
}

// generateConfig writes the generated module, its type stub and the
// collected type declarations into the build directory.
func generateConfig(ctx context.Context, d *Dependencies, cfg *config.Config) (*generateResult, error) {
	addons, err := collectAddons(ctx, d, cfg)
	if err != nil {
		return nil, err
	}
	out, err := d.Generator.Generate(ctx, cfg, addons)
	if err != nil {
		return nil, err
	}
	files, err := eslintgen.WriteOutput(cfg.BuildDir, out)
	if err != nil {
		return nil, err
	}

	payload := &hook.Payload{}
	if err := d.Hooks.Dispatch(ctx, hook.EventPrepareTypes, payload); err != nil {
		return nil, fmt.Errorf("prepare types: %w", err)
	}
	decls, err := d.Generator.RenderDeclarations(payload.Declarations)
	if err != nil {
		return nil, err
	}
	declPath := filepath.Join(cfg.BuildDir, defs.TypesDeclarationDTS)
	if err := eslintgen.WriteFileAtomic(declPath, decls); err != nil {
		return nil, err
	}

	d.Logger.Info("eslint config written", "path", files.Config, "addons", len(addons))
	return &generateResult{Files: files, Declarations: declPath, Addons: len(addons)}, nil
}

// bootstrapRootConfig creates the root eslint.config.mjs when the project
// has no flat config yet.
func bootstrapRootConfig(ctx context.Context, d *Dependencies, cfg *config.Config) (*project.InitResult, error) {
	return d.Initializer.Init(ctx, project.InitOptions{
		RootDir:             cfg.RootDir,
		GeneratedConfigPath: filepath.Join(cfg.BuildDir, defs.GeneratedConfigMJS),
	})
}

// setupOptions tunes one runSetup call.
type setupOptions struct {
	// SkipInit suppresses the root stub regardless of autoInit.
	SkipInit bool
}

// runSetup is the full module setup: generation, then the root stub when
// autoInit allows it. Generation disabled in the project file skips both.
func runSetup(ctx context.Context, d *Dependencies, cfg *config.Config, opts setupOptions) (*generateResult, error) {
	if !cfg.ESLint.Config.Enabled() {
		d.Logger.Debug("config generation disabled")
		return nil, nil
	}
	res, err := generateConfig(ctx, d, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.ESLint.Config.AutoInit() && !opts.SkipInit {
		initRes, err := bootstrapRootConfig(ctx, d, cfg)
		if err != nil {
			return nil, err
		}
		res.Init = initRes
	}
	return res, nil
}
