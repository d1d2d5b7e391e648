package config

import (
	"fmt"
	"log/slog"
	"sync"
)

// ConfigManager provides thread-safe access to the loaded project
// configuration and supports reloading it when the project file changes.
// It must be initialized via Load() before use.
type ConfigManager struct {
	mu        sync.RWMutex
	config    *Config
	path      string
	loader    *Loader
	callbacks []func(*Config)
}

// NewConfigManager creates a new ConfigManager instance in uninitialized state.
func NewConfigManager() *ConfigManager {
	return &ConfigManager{loader: NewLoader()}
}

// Load reads the project file at path. An empty path selects the default
// configuration rooted at rootDir.
func (m *ConfigManager) Load(path, rootDir string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		cfg *Config
		err error
	)
	if path == "" {
		cfg, err = Default(rootDir)
	} else {
		cfg, err = m.loader.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	m.config = cfg
	m.path = path
	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the project file path, empty for default configurations.
func (m *ConfigManager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Reload re-reads the project file and notifies OnChange callbacks.
// On error the previous configuration stays active.
func (m *ConfigManager) Reload() (*Config, error) {
	m.mu.Lock()
	if m.config == nil {
		m.mu.Unlock()
		return nil, ErrNotInitialized
	}
	if m.path == "" {
		cfg := m.config
		m.mu.Unlock()
		return cfg, nil
	}
	cfg, err := m.loader.Load(m.path)
	if err != nil {
		m.mu.Unlock()
		slog.Warn("config reload failed, keeping previous configuration", "path", m.path, "error", err)
		return nil, fmt.Errorf("reload config: %w", err)
	}
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	return cfg, nil
}

// OnChange registers a callback invoked after every successful Reload.
func (m *ConfigManager) OnChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}
