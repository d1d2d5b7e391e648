package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nuxt/nuxt-eslint/internal/defs"
	"github.com/nuxt/nuxt-eslint/internal/template"
)

// MigrationHint is reported after the root config stub has been created.
const MigrationHint = "If you have .eslintrc or .eslintignore files, you might want to migrate them to the new config file"

// Reporter receives operator-facing messages.
type Reporter interface {
	Success(msg string)
	Info(msg string)
}

// InitOptions configures the root config initialization.
type InitOptions struct {
	RootDir             string // Absolute project root.
	GeneratedConfigPath string // Absolute path of the generated eslint.config.mjs.
}

// InitResult summarizes the outcome of the root config initialization.
type InitResult struct {
	Created  bool   // True if the stub was written by this call.
	Path     string // The stub path, or the existing config that was found.
	Existing bool   // True if an existing flat config short-circuited the run.
}

// Initializer creates the root eslint.config.mjs when the project has none.
type Initializer interface {
	Init(ctx context.Context, opts InitOptions) (*InitResult, error)
}

// rootConfigInitializer is the concrete implementation of Initializer.
type rootConfigInitializer struct {
	renderer template.Renderer
	reporter Reporter
	logger   *slog.Logger
}

// NewInitializer creates an Initializer with the given dependencies.
func NewInitializer(renderer template.Renderer, reporter Reporter, logger *slog.Logger) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &rootConfigInitializer{
		renderer: renderer,
		reporter: reporter,
		logger:   logger,
	}
}

// Init searches upward from the root for any recognised flat config. If one
// exists nothing is written and nothing is reported. Otherwise it writes a
// stub that imports the generated module by relative path.
func (i *rootConfigInitializer) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.RootDir == "" || !filepath.IsAbs(opts.RootDir) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoot, opts.RootDir)
	}

	existing, err := FindFlatConfig(opts.RootDir)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		i.logger.Debug("flat config already present", "path", existing)
		return &InitResult{Path: existing, Existing: true}, nil
	}

	importPath, err := RelativeImportPath(opts.RootDir, opts.GeneratedConfigPath)
	if err != nil {
		return nil, err
	}
	content, err := i.renderer.Render(template.RootConfigTemplate, template.RootConfigContext{ImportPath: importPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitFailed, err)
	}

	targetPath := filepath.Join(opts.RootDir, defs.RootConfigMJS)
	created, err := writeIfAbsent(targetPath, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	if !created {
		// Lost a race against another writer; treat it as an existing config.
		return &InitResult{Path: targetPath, Existing: true}, nil
	}

	i.logger.Info("root eslint config created", "path", targetPath, "import", importPath)
	if i.reporter != nil {
		i.reporter.Success(fmt.Sprintf("ESLint config file created at %s", targetPath))
		i.reporter.Info(MigrationHint)
	}
	return &InitResult{Created: true, Path: targetPath}, nil
}

// RelativeImportPath expresses target relative to rootDir as an ES module
// specifier. Bare results are prefixed with ./ because the module loader
// would otherwise treat them as package names.
func RelativeImportPath(rootDir, target string) (string, error) {
	rel, err := filepath.Rel(rootDir, target)
	if err != nil {
		return "", fmt.Errorf("relative import path: %w", err)
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "./") && !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel, nil
}

// writeIfAbsent creates path exclusively. It reports false without error
// when the file already exists.
func writeIfAbsent(path string, content []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return false, err
	}
	return true, f.Close()
}
