package config

import "github.com/nuxt/nuxt-eslint/internal/defs"

// Default value constants to avoid magic numbers and strings.
const (
	DefaultAutoInit   = true
	DefaultStandalone = true

	DefaultDevToolsEnabled  = true
	DefaultInspectorPort    = 8123
	DefaultInspectorPortMax = 10000
	DefaultInspectorPackage = "@eslint/config-inspector"
	DefaultInspectorCommand = "node"
)

// NewDefaultConfig returns a Config with every default applied.
// RootDir is left empty; Load fills it from the project file location.
func NewDefaultConfig() *Config {
	return &Config{
		BuildDir: defs.DefaultBuildDir,
		DevTools: DevToolsConfig{
			Enabled: DefaultDevToolsEnabled,
			Inspector: InspectorConfig{
				Port:    DefaultInspectorPort,
				PortMax: DefaultInspectorPortMax,
				Package: DefaultInspectorPackage,
				Command: DefaultInspectorCommand,
			},
		},
	}
}

// applyDefaults fills zero values left by a partial project file.
func applyDefaults(cfg *Config) {
	if cfg.BuildDir == "" {
		cfg.BuildDir = defs.DefaultBuildDir
	}
	ins := &cfg.DevTools.Inspector
	if ins.Port == 0 {
		ins.Port = DefaultInspectorPort
	}
	if ins.PortMax == 0 {
		ins.PortMax = DefaultInspectorPortMax
	}
	if ins.Package == "" {
		ins.Package = DefaultInspectorPackage
	}
	if ins.Command == "" {
		ins.Command = DefaultInspectorCommand
	}
}
