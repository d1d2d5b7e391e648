package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nuxt/nuxt-eslint/pkg/models"
)

// Config is the project description read from nuxt-eslint.yaml.
// RootDir and BuildDir are absolute after Load.
type Config struct {
	RootDir  string               `yaml:"rootDir"`
	BuildDir string               `yaml:"buildDir"`
	Dir      models.DirOverrides  `yaml:"dir"`
	Imports  models.ImportsConfig `yaml:"imports"`
	Layers   []models.Layer       `yaml:"layers"`
	ESLint   ModuleOptions        `yaml:"eslint"`
	DevTools DevToolsConfig       `yaml:"devtools"`
}

// ModuleOptions are the options of the ESLint module itself.
type ModuleOptions struct {
	Config ConfigOption `yaml:"config"`
}

// ConfigOption is `eslint.config`: a boolean, or a mapping of autoInit plus
// opaque feature flags.
type ConfigOption struct {
	// Disabled is true for `config: false`.
	Disabled bool

	// Options holds the mapping form; nil for the boolean form.
	Options *Features
}

// Enabled reports whether config generation should run.
func (o ConfigOption) Enabled() bool {
	return !o.Disabled
}

// AutoInit reports whether the root config stub may be created.
// Defaults to true when autoInit is absent; a present value counts by its
// truthiness, so null, 0 and "" turn it off.
func (o ConfigOption) AutoInit() bool {
	v, ok := o.Options.Get("autoInit")
	if !ok {
		return DefaultAutoInit
	}
	return truthy(v)
}

// truthy follows JavaScript truthiness for decoded feature values.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// GenOptions returns the feature flags handed to resolveOptions:
// {standalone: true, ...config}.
func (o ConfigOption) GenOptions() *Features {
	base := NewFeatures()
	base.Set("standalone", DefaultStandalone)
	return base.Merge(o.Options)
}

// UnmarshalYAML accepts `config: <bool>` or `config: {...}`.
func (o *ConfigOption) UnmarshalYAML(node *yaml.Node) error {
	*o = ConfigOption{}
	if node.Kind == yaml.ScalarNode {
		if node.ShortTag() == "!!null" {
			return nil
		}
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("eslint.config: expected boolean or mapping at line %d", node.Line)
		}
		o.Disabled = !enabled
		return nil
	}
	features := NewFeatures()
	if err := features.UnmarshalYAML(node); err != nil {
		return fmt.Errorf("eslint.config: %w", err)
	}
	o.Options = features
	return nil
}

// MarshalYAML writes the boolean or mapping form back.
func (o ConfigOption) MarshalYAML() (any, error) {
	if o.Disabled {
		return false, nil
	}
	if o.Options == nil {
		return true, nil
	}
	return o.Options, nil
}

// DevToolsConfig configures the devtools integration.
type DevToolsConfig struct {
	Enabled   bool            `yaml:"enabled"`
	Inspector InspectorConfig `yaml:"inspector"`
}

// InspectorConfig configures the ESLint config inspector subprocess.
type InspectorConfig struct {
	// Port is the preferred port; the search scans upward to PortMax.
	Port    int `yaml:"port"`
	PortMax int `yaml:"portMax"`

	// Package is the npm package providing the inspector.
	Package string `yaml:"package"`

	// Command runs the inspector entry script (node by default).
	Command string `yaml:"command"`
}
