package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// nodeModulesFixture installs the packages the generated module imports.
var nodeModulesFixture = map[string]string{
	"node_modules/eslint-flat-config-utils/package.json":   `{"name":"eslint-flat-config-utils","main":"dist/index.mjs"}`,
	"node_modules/eslint-flat-config-utils/dist/index.mjs": "",
	"node_modules/eslint-typegen/package.json":             `{"name":"eslint-typegen","exports":{".":{"import":"./dist/index.mjs"}}}`,
	"node_modules/eslint-typegen/dist/index.mjs":           "",
	"node_modules/@nuxt/eslint-config/package.json":        `{"name":"@nuxt/eslint-config","exports":{"./flat":"./dist/flat.mjs"}}`,
	"node_modules/@nuxt/eslint-config/dist/flat.mjs":       "",
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// newTestDeps installs headless dependencies that write to the returned
// buffer and removes them when the test ends.
func newTestDeps(t *testing.T) (*Dependencies, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	InitDependencies(out, nil)
	d := GetDeps()
	d.Headless.ForceHeadless(true)
	t.Cleanup(func() { SetDeps(nil) })
	return d, out
}

// resetFlags restores every flag of the command tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns the error.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return rootCmd.ExecuteContext(context.Background())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
