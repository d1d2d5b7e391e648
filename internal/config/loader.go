package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nuxt/nuxt-eslint/pkg/models"
)

// EnvBuildDir overrides the build directory of any loaded project.
const EnvBuildDir = "NUXT_ESLINT_BUILD_DIR"

// Loader reads the project file and turns it into a resolved Config.
type Loader struct{}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the project file at path, applies defaults, resolves every
// directory to an absolute path and validates the result.
func (l *Loader) Load(path string) (*Config, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrInvalidYAML, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := resolve(cfg, filepath.Dir(absPath)); err != nil {
		return nil, err
	}

	slog.Debug("project file loaded",
		"path", absPath,
		"root", cfg.RootDir,
		"layers", len(cfg.Layers),
	)
	return cfg, nil
}

// Default returns the configuration of a project without a project file:
// a single layer rooted at rootDir and default options.
func Default(rootDir string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := resolve(cfg, rootDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve anchors relative directories at baseDir, applies the environment
// override, fills the implicit layer and validates.
func resolve(cfg *Config, baseDir string) error {
	applyDefaults(cfg)

	root := cfg.RootDir
	if root == "" {
		root = baseDir
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(baseDir, root)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root dir: %w", err)
	}
	cfg.RootDir = root

	if env := os.Getenv(EnvBuildDir); env != "" {
		cfg.BuildDir = env
	}
	if !filepath.IsAbs(cfg.BuildDir) {
		cfg.BuildDir = filepath.Join(root, cfg.BuildDir)
	}

	if len(cfg.Layers) == 0 {
		cfg.Layers = []models.Layer{{SrcDir: root}}
	}
	for i := range cfg.Layers {
		src := cfg.Layers[i].SrcDir
		if !filepath.IsAbs(src) {
			cfg.Layers[i].SrcDir = filepath.Join(root, src)
		}
	}

	return Validate(cfg)
}
