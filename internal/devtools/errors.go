// Package devtools exposes custom devtools tabs and runs the ESLint config
// inspector behind the "ESLint Config" tab.
package devtools

import "errors"

// Sentinel errors for the devtools package.
var (
	// ErrNoPortAvailable indicates every port in the search range is taken.
	ErrNoPortAvailable = errors.New("devtools: no available port")

	// ErrProcessExited indicates the inspector exited before it answered.
	ErrProcessExited = errors.New("devtools: inspector exited before becoming ready")

	// ErrNotReady indicates a readiness probe that did not get a 2xx answer.
	ErrNotReady = errors.New("devtools: inspector not ready")

	// ErrInspectorNotFound indicates the inspector package is not installed.
	ErrInspectorNotFound = errors.New("devtools: config inspector not installed")

	// ErrTabNotFound indicates an unknown tab name.
	ErrTabNotFound = errors.New("devtools: tab not found")

	// ErrActionNotFound indicates an action index outside the tab's actions.
	ErrActionNotFound = errors.New("devtools: action not found")
)
