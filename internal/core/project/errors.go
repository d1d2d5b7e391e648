// Package project models a Nuxt project on disk for nuxt-eslint: it locates
// the project file and existing flat configs, resolves the conventional
// directories of every layer, and creates the root eslint.config.mjs stub.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrProjectFileNotFound indicates no nuxt-eslint.yaml exists in the
	// start directory or any parent directory.
	ErrProjectFileNotFound = errors.New("project: project file not found")

	// ErrInvalidRoot indicates the given project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("project: invalid project root path")

	// ErrInitFailed indicates the root config stub could not be written.
	ErrInitFailed = errors.New("project: initialization failed")
)
