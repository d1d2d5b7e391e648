package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nuxt/nuxt-eslint/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "nuxt-eslint",
	Short: "Generate the ESLint flat config of a Nuxt project",
	Long: `nuxt-eslint generates .nuxt/eslint.config.mjs from the directory layout of a
layered Nuxt project, creates a root eslint.config.mjs that extends it, and can
launch the ESLint config inspector.

The project is described by nuxt-eslint.yaml, searched upward from --root.
Without one, a single-layer project with default options is assumed.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose := getBoolFlag(cmd, "verbose")
		logger := newLogger(cmd.ErrOrStderr(), verbose)
		slog.SetDefault(logger)
		if deps == nil {
			InitDependencies(cmd.OutOrStdout(), logger)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("nuxt-eslint %s\n", version.GetFullVersion()))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to nuxt-eslint.yaml (default: searched upward from --root)")
	rootCmd.PersistentFlags().String("root", "", "Project root directory (default: current directory)")
}

// newLogger returns a text logger on w. Debug records are kept only when
// verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// rootDir returns --root as an absolute path, or the working directory.
func rootDir(cmd *cobra.Command) (string, error) {
	if root := getStringFlag(cmd, "root"); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("resolve root %q: %w", root, err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
