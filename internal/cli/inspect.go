package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nuxt/nuxt-eslint/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Launch the ESLint config inspector",
	Long: `Launch @eslint/config-inspector from the project's node_modules on a free port
between the configured port and portMax, wait until it answers and print its
URL. The inspector runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
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

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := newDevtoolsSession(ctx, d, cfg)
	defer func() { _ = session.Inspector.Close() }()

	spinner := ui.NewSpinner(d.Theme, d.Headless, cmd.ErrOrStderr(), "Starting ESLint config inspector")
	err = session.Inspector.Launch(ctx)
	spinner.Stop()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("launch inspector: %w", err)
	}

	d.Reporter.Success("ESLint config inspector is ready")
	d.Reporter.Link("Open", session.Inspector.URL())
	d.Reporter.Info("Press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
