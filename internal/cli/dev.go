package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/devtools"
	"github.com/nuxt/nuxt-eslint/internal/watch"
)

// DefaultDevAddr is the listen address of the devtools bridge.
const DefaultDevAddr = "127.0.0.1:3300"

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Regenerate on change and serve the devtools bridge",
	Long: `Generate the ESLint config, then keep it current: the project file and every
layer source directory are watched and changes trigger a debounced
regeneration. When devtools are enabled, the "ESLint Config" tab is served on
--addr under /__nuxt_eslint.`,
	Args: cobra.NoArgs,
	RunE: runDev,
}

func init() {
	rootCmd.AddCommand(devCmd)
	devCmd.Flags().String("addr", DefaultDevAddr, "Listen address of the devtools bridge")
}

func runDev(cmd *cobra.Command, _ []string) error {
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

	if _, err := runSetup(ctx, d, cfg, setupOptions{}); err != nil {
		return err
	}
	d.Reporter.Success("ESLint config generated")

	watcher, err := newProjectWatcher(d, cfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})

	if cfg.DevTools.Enabled {
		session := newDevtoolsSession(gctx, d, cfg)
		server := devtools.NewServer(gctx, session.Tabs, d.Logger)
		addr := getStringFlag(cmd, "addr")
		d.Reporter.Link("Devtools bridge", "http://"+addr+devtools.BridgePrefix+"/tabs")
		g.Go(func() error {
			defer func() { _ = session.Inspector.Close() }()
			if err := server.Serve(gctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("devtools bridge: %w", err)
			}
			return nil
		})
	}

	d.Reporter.Info("Watching for changes, press Ctrl+C to stop")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newProjectWatcher watches the project file and the layer sources.
// Each batch of changes runs regenerate.
func newProjectWatcher(d *Dependencies, cfg *config.Config) (*watch.Watcher, error) {
	paths := make([]string, 0, len(cfg.Layers)+1)
	if p := d.Config.Path(); p != "" {
		paths = append(paths, p)
	}
	for _, layer := range cfg.Layers {
		paths = append(paths, layer.SrcDir)
	}

	return watch.New(watch.Options{
		Paths:  paths,
		Ignore: []string{cfg.BuildDir},
		Logger: d.Logger,
		OnChange: func(ctx context.Context, changed []string) error {
			return regenerate(ctx, d, changed)
		},
	})
}

// regenerate reloads the project file and regenerates the build output.
// The root stub is bootstrapped once at startup only, so a stub the user
// removed during the session stays removed. A failing run is reported and
// the previous output stays in place.
func regenerate(ctx context.Context, d *Dependencies, changed []string) error {
	d.Logger.Debug("project changed", "paths", changed)
	next, err := d.Config.Reload()
	if err != nil {
		d.Reporter.Warn(fmt.Sprintf("Project file invalid, keeping previous config: %v", err))
		return err
	}
	if _, err := runSetup(ctx, d, next, setupOptions{SkipInit: true}); err != nil {
		d.Reporter.Error(fmt.Sprintf("Regeneration failed: %v", err))
		return err
	}
	d.Reporter.Success("ESLint config regenerated")
	return nil
}
