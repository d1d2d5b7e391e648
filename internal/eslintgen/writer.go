package eslintgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/nuxt/nuxt-eslint/internal/defs"
)

// WrittenFiles lists the absolute paths produced by WriteOutput.
type WrittenFiles struct {
	Config string
	Types  string
}

// WriteOutput writes both generated files into buildDir.
func WriteOutput(buildDir string, out *Output) (*WrittenFiles, error) {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return nil, fmt.Errorf("create build dir: %w", err)
	}
	files := &WrittenFiles{
		Config: filepath.Join(buildDir, defs.GeneratedConfigMJS),
		Types:  filepath.Join(buildDir, defs.GeneratedConfigDTS),
	}
	if err := WriteFileAtomic(files.Config, out.Config); err != nil {
		return nil, err
	}
	if err := WriteFileAtomic(files.Types, out.Types); err != nil {
		return nil, err
	}
	return files, nil
}

// WriteFileAtomic replaces path with content so readers observe either the
// old or the new file, never a partial one. Unchanged content is not
// rewritten, which keeps file watchers quiet.
func WriteFileAtomic(path string, content []byte) error {
	if existing, err := os.ReadFile(path); err == nil && string(existing) == string(content) {
		return nil
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
