package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate .nuxt/eslint.config.mjs",
	Long: `Generate the ESLint flat config module and its type declarations into the
build directory, then create a root eslint.config.mjs when the project has no
flat config and autoInit is enabled.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Bool("no-init", false, "Do not create the root eslint.config.mjs")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	root, err := rootDir(cmd)
	if err != nil {
		return err
	}
	cfg, err := d.LoadConfig(getStringFlag(cmd, "config"), root)
	if err != nil {
		return err
	}
	res, err := runSetup(commandContext(cmd), d, cfg, setupOptions{SkipInit: getBoolFlag(cmd, "no-init")})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if res == nil {
		d.Reporter.Warn("ESLint config generation is disabled in the project file")
		return nil
	}

	rel := func(p string) string {
		if r, err := filepath.Rel(cfg.RootDir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}
	details := []string{
		renderKV("Config", rel(res.Files.Config)),
		renderKV("Types", rel(res.Files.Types)),
		renderKV("Declarations", rel(res.Declarations)),
		renderKV("Addons", strconv.Itoa(res.Addons)),
	}
	if res.Init != nil && res.Init.Existing {
		details = append(details, renderKV("Root config", rel(res.Init.Path)))
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard("ESLint config generated", details...))
	return nil
}
