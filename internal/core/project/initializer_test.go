package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nuxt/nuxt-eslint/internal/defs"
	"github.com/nuxt/nuxt-eslint/internal/template"
)

type recordingReporter struct {
	success []string
	info    []string
}

func (r *recordingReporter) Success(msg string) { r.success = append(r.success, msg) }
func (r *recordingReporter) Info(msg string)    { r.info = append(r.info, msg) }

func newTestInitializer(rep Reporter) Initializer {
	return NewInitializer(template.NewEmbeddedRenderer(), rep, nil)
}

func TestInitializerInit(t *testing.T) {
	t.Run("creates_stub_when_absent", func(t *testing.T) {
		root := t.TempDir()
		rep := &recordingReporter{}
		generated := filepath.Join(root, ".nuxt", "eslint.config.mjs")

		res, err := newTestInitializer(rep).Init(context.Background(), InitOptions{
			RootDir:             root,
			GeneratedConfigPath: generated,
		})
		if err != nil {
			t.Fatalf("Init error: %v", err)
		}
		if !res.Created || res.Existing {
			t.Errorf("result = %+v, want created", res)
		}

		data, err := os.ReadFile(filepath.Join(root, defs.RootConfigMJS))
		if err != nil {
			t.Fatalf("read stub: %v", err)
		}
		if !strings.Contains(string(data), "import withNuxt from './.nuxt/eslint.config.mjs'") {
			t.Errorf("stub does not import generated module:\n%s", data)
		}
		if len(rep.success) != 1 || !strings.Contains(rep.success[0], root) {
			t.Errorf("success messages = %v", rep.success)
		}
		if len(rep.info) != 1 || rep.info[0] != MigrationHint {
			t.Errorf("info messages = %v", rep.info)
		}
	})

	for _, name := range defs.FlatConfigNames {
		t.Run("existing_"+name, func(t *testing.T) {
			root := t.TempDir()
			existing := filepath.Join(root, name)
			if err := os.WriteFile(existing, []byte("export default []\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			rep := &recordingReporter{}

			res, err := newTestInitializer(rep).Init(context.Background(), InitOptions{
				RootDir:             root,
				GeneratedConfigPath: filepath.Join(root, ".nuxt", "eslint.config.mjs"),
			})
			if err != nil {
				t.Fatalf("Init error: %v", err)
			}
			if res.Created || !res.Existing || res.Path != existing {
				t.Errorf("result = %+v", res)
			}
			if len(rep.success)+len(rep.info) != 0 {
				t.Error("nothing must be reported when a config exists")
			}
			entries, _ := os.ReadDir(root)
			if len(entries) != 1 {
				t.Errorf("expected only the existing file, found %d entries", len(entries))
			}
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		root := t.TempDir()
		ini := newTestInitializer(&recordingReporter{})
		opts := InitOptions{RootDir: root, GeneratedConfigPath: filepath.Join(root, ".nuxt", "eslint.config.mjs")}

		first, err := ini.Init(context.Background(), opts)
		if err != nil || !first.Created {
			t.Fatalf("first Init = %+v, %v", first, err)
		}
		second, err := ini.Init(context.Background(), opts)
		if err != nil {
			t.Fatalf("second Init error: %v", err)
		}
		if second.Created {
			t.Error("second Init must not write again")
		}
	})

	t.Run("relative_root_rejected", func(t *testing.T) {
		_, err := newTestInitializer(nil).Init(context.Background(), InitOptions{RootDir: "proj"})
		if !errors.Is(err, ErrInvalidRoot) {
			t.Errorf("expected ErrInvalidRoot, got: %v", err)
		}
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestInitializer(nil).Init(ctx, InitOptions{RootDir: t.TempDir()})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got: %v", err)
		}
	})

	t.Run("write_failure_propagates", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "missing")
		_, err := newTestInitializer(nil).Init(context.Background(), InitOptions{
			RootDir:             root,
			GeneratedConfigPath: filepath.Join(root, ".nuxt", "eslint.config.mjs"),
		})
		if !errors.Is(err, ErrInitFailed) {
			t.Errorf("expected ErrInitFailed, got: %v", err)
		}
	})
}

func TestRelativeImportPath(t *testing.T) {
	tests := []struct {
		root, target, want string
	}{
		{"/proj", "/proj/.nuxt/eslint.config.mjs", "./.nuxt/eslint.config.mjs"},
		{"/proj/app", "/proj/.nuxt/eslint.config.mjs", "../.nuxt/eslint.config.mjs"},
		{"/proj", "/proj/eslint.config.mjs", "./eslint.config.mjs"},
	}
	for _, tt := range tests {
		got, err := RelativeImportPath(tt.root, tt.target)
		if err != nil {
			t.Fatalf("RelativeImportPath error: %v", err)
		}
		if got != tt.want {
			t.Errorf("RelativeImportPath(%q, %q) = %q, want %q", tt.root, tt.target, got, tt.want)
		}
	}
}
