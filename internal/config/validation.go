package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for correctness. All problems are
// collected into a single *ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateInspector(&cfg.DevTools.Inspector)...)
	errs = append(errs, validateFeatures(cfg.ESLint.Config)...)
	errs = append(errs, validateLayers(cfg)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateInspector(ins *InspectorConfig) []ValidationError {
	var errs []ValidationError

	if ins.Port < 1 || ins.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "devtools.inspector.port",
			Message: "must be between 1 and 65535",
			Value:   ins.Port,
			Wrapped: ErrInvalidConfig,
		})
	}
	if ins.PortMax < ins.Port || ins.PortMax > 65535 {
		errs = append(errs, ValidationError{
			Field:   "devtools.inspector.portMax",
			Message: "must be between port and 65535",
			Value:   ins.PortMax,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateFeatures checks that every feature flag survives JSON encoding,
// since the flags are emitted verbatim into the generated module.
func validateFeatures(opt ConfigOption) []ValidationError {
	if opt.Options == nil {
		return nil
	}
	if err := checkSerializable("eslint.config", opt.Options); err != nil {
		wrapped := ErrNotSerializable
		if !errors.Is(err, ErrNotSerializable) {
			wrapped = ErrInvalidConfig
		}
		return []ValidationError{{
			Field:   "eslint.config",
			Message: err.Error(),
			Wrapped: wrapped,
		}}
	}
	return nil
}

func validateLayers(cfg *Config) []ValidationError {
	var errs []ValidationError
	for i, layer := range cfg.Layers {
		if layer.SrcDir == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("layers[%d].srcDir", i),
				Message: "must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}
