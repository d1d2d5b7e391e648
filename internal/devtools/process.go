package devtools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Command describes a subprocess to start.
type Command struct {
	// ID and Name label the process in logs.
	ID   string
	Name string

	Path string
	Args []string
	Dir  string

	// Env is added to the current environment.
	Env map[string]string
}

// Process is a started subprocess.
type Process interface {
	// Done is closed when the process has exited.
	Done() <-chan struct{}

	// Err returns the exit error once Done is closed.
	Err() error

	// Stop terminates the process and waits for it to exit.
	Stop() error
}

// Starter starts subprocesses.
type Starter interface {
	Start(ctx context.Context, cmd Command) (Process, error)
}

// ExecStarter starts real subprocesses with os/exec. Output goes to Stdout
// and Stderr when set and is discarded otherwise.
type ExecStarter struct {
	Stdout io.Writer
	Stderr io.Writer

	// StopTimeout is how long Stop waits after an interrupt before killing.
	StopTimeout time.Duration
}

type execProcess struct {
	cmd     *exec.Cmd
	done    chan struct{}
	err     error
	timeout time.Duration
	once    sync.Once
}

// Start implements Starter. The process is killed when ctx is cancelled.
func (s *ExecStarter) Start(ctx context.Context, c Command) (Process, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", c.Name, err)
	}
	slog.Debug("subprocess started", "id", c.ID, "name", c.Name, "pid", cmd.Process.Pid)

	timeout := s.StopTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	p := &execProcess{cmd: cmd, done: make(chan struct{}), timeout: timeout}
	go func() {
		p.err = cmd.Wait()
		slog.Debug("subprocess exited", "id", c.ID, "error", p.err)
		close(p.done)
	}()
	return p, nil
}

func (p *execProcess) Done() <-chan struct{} { return p.done }

func (p *execProcess) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

func (p *execProcess) Stop() error {
	p.once.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		_ = p.cmd.Process.Signal(syscall.SIGTERM)
		select {
		case <-p.done:
		case <-time.After(p.timeout):
			_ = p.cmd.Process.Kill()
			<-p.done
		}
	})
	return nil
}
