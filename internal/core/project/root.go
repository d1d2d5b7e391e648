package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nuxt/nuxt-eslint/internal/defs"
)

// FindUp looks for any of names in dir and then in every parent directory.
// At each level the names are tried in order. It returns the first match,
// or an empty string when the filesystem root is reached without a match.
func FindUp(dir string, names ...string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(absDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", nil
		}
		absDir = parent
	}
}

// FindProjectFile locates nuxt-eslint.yaml starting at dir and walking up.
func FindProjectFile(dir string) (string, error) {
	path, err := FindUp(dir, defs.ProjectFileYAML)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("%w (searched from %s)", ErrProjectFileNotFound, dir)
	}
	return path, nil
}

// FindFlatConfig returns the path of an existing flat config visible from
// rootDir, or an empty string when there is none.
func FindFlatConfig(rootDir string) (string, error) {
	return FindUp(rootDir, defs.FlatConfigNames...)
}
