package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nuxt/nuxt-eslint/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the root eslint.config.mjs",
	Long: `Create a root eslint.config.mjs that extends the generated config. Nothing is
written when any flat config already exists in the project root or above it.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runInit(cmd *cobra.Command, _ []string) error {
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

	if !getBoolFlag(cmd, "yes") {
		ok, err := ui.Confirm(d.Theme, d.Headless,
			"Create eslint.config.mjs?",
			fmt.Sprintf("A root ESLint config extending the generated one will be written to %s", cfg.RootDir),
			true)
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				return nil
			}
			return err
		}
		if !ok {
			return nil
		}
	}

	res, err := bootstrapRootConfig(commandContext(cmd), d, cfg)
	if err != nil {
		return err
	}
	if res.Existing {
		d.Reporter.Info(fmt.Sprintf("Flat config already present at %s", res.Path))
	}
	return nil
}
