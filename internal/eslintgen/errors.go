// Package eslintgen emits the generated ESLint flat config module and its
// type stub from the resolved project directories and the addon results.
package eslintgen

import "errors"

// Sentinel errors for the eslintgen package.
var (
	// ErrModuleNotFound indicates that an import specifier could not be
	// resolved from the project root.
	ErrModuleNotFound = errors.New("eslintgen: module not found")

	// ErrInvalidPackage indicates an unreadable or malformed package.json.
	ErrInvalidPackage = errors.New("eslintgen: invalid package.json")

	// ErrGenerationDisabled indicates that config generation is turned off
	// in the project file.
	ErrGenerationDisabled = errors.New("eslintgen: config generation disabled")
)
