package devtools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/internal/resilience"
)

// Inspector tab identity.
const (
	InspectorTabName     = "eslint-config"
	InspectorTabTitle    = "ESLint Config"
	InspectorTabIcon     = "https://raw.githubusercontent.com/eslint/config-inspector/main/app/public/favicon.svg"
	InspectorDescription = "Start ESLint config inspector to analyze the local ESLint configs"
	InspectorActionLabel = "Launch"

	InspectorProcessID   = "eslint-config-inspector"
	InspectorProcessName = "ESLint Config Viewer"
)

// Readiness timing of the inspector.
const (
	DefaultProbeAttempts = 100
	DefaultProbeInterval = 500 * time.Millisecond
	DefaultSettleDelay   = 2 * time.Second
)

// State is the lifecycle state of the inspector.
type State int

const (
	StateUnlaunched State = iota
	StateLaunching
	StatePolling
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnlaunched:
		return "unlaunched"
	case StateLaunching:
		return "launching"
	case StatePolling:
		return "polling"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// PackageResolver finds a file inside an installed package.
type PackageResolver interface {
	Resolve(specifier, fromDir string) (string, error)
}

// InspectorOptions configures an Inspector. Zero timing fields take the
// defaults above; a negative SettleDelay disables the settle wait.
type InspectorOptions struct {
	RootDir string
	Config  config.InspectorConfig

	Resolver PackageResolver
	Starter  Starter
	Prober   Prober

	// Refresh is called after the process starts and after every state
	// change visible in the tab.
	Refresh func(ctx context.Context) error

	ProbeAttempts int
	ProbeInterval time.Duration
	SettleDelay   time.Duration

	Logger *slog.Logger
}

// Inspector launches the ESLint config inspector on demand and tracks its
// readiness. It is safe for concurrent use.
type Inspector struct {
	opts InspectorOptions

	// procCtx scopes the subprocess lifetime, which outlives Launch calls.
	procCtx context.Context

	mu    sync.Mutex
	state State
	proc  Process
	port  int
	url   string
	err   error
}

// NewInspector creates an Inspector. Subprocesses are tied to ctx and are
// killed when it is cancelled.
func NewInspector(ctx context.Context, opts InspectorOptions) *Inspector {
	if opts.ProbeAttempts <= 0 {
		opts.ProbeAttempts = DefaultProbeAttempts
	}
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = DefaultProbeInterval
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	} else if opts.SettleDelay == 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Starter == nil {
		opts.Starter = &ExecStarter{}
	}
	if opts.Prober == nil {
		opts.Prober = NewHTTPProber(opts.ProbeInterval)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Inspector{opts: opts, procCtx: ctx}
}

// State returns the current state.
func (i *Inspector) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// URL returns the inspector URL once it is ready.
func (i *Inspector) URL() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.url
}

// Port returns the allocated port, or 0 before launch.
func (i *Inspector) Port() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.port
}

// Err returns the error of the last failed launch.
func (i *Inspector) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Tab renders the inspector tab for the current state.
func (i *Inspector) Tab() Tab {
	i.mu.Lock()
	defer i.mu.Unlock()

	tab := Tab{Name: InspectorTabName, Title: InspectorTabTitle, Icon: InspectorTabIcon}
	if i.url != "" {
		tab.View = View{Type: ViewIframe, Src: i.url}
		return tab
	}
	tab.View = View{
		Type:        ViewLaunch,
		Description: InspectorDescription,
		Actions: []Action{{
			Label:   InspectorActionLabel,
			Pending: i.proc != nil,
			Handle:  i.Launch,
		}},
	}
	return tab
}

// Launch starts the inspector and blocks until it is ready, it failed or
// ctx is done. Calling Launch while a launch is in flight or after the
// inspector is ready does nothing.
//
// When the probes run out while the process is still alive the URL is set
// anyway. When the process exits first the state becomes StateFailed and
// the tab offers the launch action again.
func (i *Inspector) Launch(ctx context.Context) error {
	i.mu.Lock()
	switch i.state {
	case StateLaunching, StatePolling, StateReady:
		i.mu.Unlock()
		i.opts.Logger.Debug("inspector launch ignored", "state", i.state.String())
		return nil
	}
	i.state = StateLaunching
	i.err = nil
	i.mu.Unlock()

	proc, port, err := i.start()
	if err != nil {
		return i.fail(ctx, err)
	}

	i.mu.Lock()
	i.proc = proc
	i.port = port
	i.state = StatePolling
	i.mu.Unlock()
	i.refresh(ctx)

	url := "http://localhost:" + strconv.Itoa(port)
	if err := i.waitReady(ctx, proc, url); err != nil {
		if errors.Is(err, ErrProcessExited) {
			return i.fail(ctx, err)
		}
		_ = proc.Stop()
		i.mu.Lock()
		i.proc = nil
		i.state = StateUnlaunched
		i.mu.Unlock()
		i.refresh(context.WithoutCancel(ctx))
		return err
	}

	i.mu.Lock()
	i.url = url
	i.state = StateReady
	i.mu.Unlock()
	i.opts.Logger.Info("eslint config inspector ready", "url", url)
	i.refresh(ctx)
	return nil
}

// start resolves the inspector entry point, picks a port and spawns it.
func (i *Inspector) start() (Process, int, error) {
	cfg := i.opts.Config
	if i.opts.Resolver == nil {
		return nil, 0, ErrInspectorNotFound
	}
	manifest, err := i.opts.Resolver.Resolve(cfg.Package+"/package.json", i.opts.RootDir)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInspectorNotFound, err)
	}
	bin := filepath.Join(filepath.Dir(manifest), "bin.mjs")

	port, err := FindAvailablePort(cfg.Port, cfg.Port, cfg.PortMax)
	if err != nil {
		return nil, 0, err
	}

	proc, err := i.opts.Starter.Start(i.procCtx, Command{
		ID:   InspectorProcessID,
		Name: InspectorProcessName,
		Path: cfg.Command,
		Args: []string{bin, "--no-open"},
		Dir:  i.opts.RootDir,
		Env:  map[string]string{"PORT": strconv.Itoa(port)},
	})
	if err != nil {
		return nil, 0, err
	}
	i.opts.Logger.Info("eslint config inspector started", "port", port, "bin", bin)
	return proc, port, nil
}

// waitReady races the readiness probes against the process exiting.
func (i *Inspector) waitReady(ctx context.Context, proc Process, url string) error {
	g, gctx := errgroup.WithContext(ctx)
	ready := make(chan struct{})

	g.Go(func() error {
		policy := resilience.FixedPolicy(i.opts.ProbeAttempts, i.opts.ProbeInterval, ErrNotReady)
		attempt := 0
		err := resilience.Retry(gctx, policy, func() error {
			attempt++
			perr := i.opts.Prober.Probe(gctx, url)
			if perr == nil {
				return nil
			}
			i.opts.Logger.Debug("inspector probe", "attempt", attempt, "error", perr)
			// Request timeouts and refused connections are ordinary misses.
			return fmt.Errorf("%w: %v", ErrNotReady, perr)
		})
		if gctx.Err() != nil {
			return gctx.Err()
		}
		if err != nil {
			i.opts.Logger.Warn("inspector did not answer, using it anyway",
				"url", url, "attempts", attempt)
		}
		if err := sleepCtx(gctx, i.opts.SettleDelay); err != nil {
			return err
		}
		close(ready)
		return nil
	})

	g.Go(func() error {
		select {
		case <-proc.Done():
			if perr := proc.Err(); perr != nil {
				return fmt.Errorf("%w: %v", ErrProcessExited, perr)
			}
			return ErrProcessExited
		case <-ready:
			return nil
		case <-gctx.Done():
			return nil
		}
	})

	err := g.Wait()
	if err == nil {
		// The exit watcher may have lost a race with a process that
		// exited during the settle delay.
		select {
		case <-proc.Done():
			return ErrProcessExited
		default:
		}
		return nil
	}
	if errors.Is(err, ErrProcessExited) {
		return err
	}
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	return err
}

func (i *Inspector) fail(ctx context.Context, err error) error {
	i.mu.Lock()
	i.state = StateFailed
	i.proc = nil
	i.err = err
	i.mu.Unlock()
	i.opts.Logger.Warn("eslint config inspector failed", "error", err)
	i.refresh(context.WithoutCancel(ctx))
	return err
}

func (i *Inspector) refresh(ctx context.Context) {
	if i.opts.Refresh == nil {
		return
	}
	if err := i.opts.Refresh(ctx); err != nil {
		i.opts.Logger.Warn("devtools refresh failed", "error", err)
	}
}

// Close stops a running inspector.
func (i *Inspector) Close() error {
	i.mu.Lock()
	proc := i.proc
	i.proc = nil
	i.url = ""
	i.state = StateUnlaunched
	i.mu.Unlock()
	if proc == nil {
		return nil
	}
	return proc.Stop()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
