package devtools

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeProcess is a Process controlled by the test.
type fakeProcess struct {
	done    chan struct{}
	once    sync.Once
	err     error
	stopped atomic.Bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{done: make(chan struct{})}
}

func (p *fakeProcess) exit(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

func (p *fakeProcess) Done() <-chan struct{} { return p.done }

func (p *fakeProcess) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

func (p *fakeProcess) Stop() error {
	p.stopped.Store(true)
	p.exit(errors.New("signal: terminated"))
	return nil
}

// fakeStarter records started commands and hands out fakeProcesses.
type fakeStarter struct {
	mu       sync.Mutex
	commands []Command
	procs    []*fakeProcess
	err      error
}

func (s *fakeStarter) Start(_ context.Context, cmd Command) (Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p := newFakeProcess()
	s.commands = append(s.commands, cmd)
	s.procs = append(s.procs, p)
	return p, nil
}

func (s *fakeStarter) started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands)
}

// fakeProber fails until okAfter probes have been made; okAfter <= 0 never
// succeeds. onProbe runs before each answer.
type fakeProber struct {
	calls   atomic.Int32
	okAfter int32
	onProbe func(n int32)
	mu      sync.Mutex
	urls    []string
}

func (p *fakeProber) Probe(_ context.Context, url string) error {
	n := p.calls.Add(1)
	p.mu.Lock()
	p.urls = append(p.urls, url)
	p.mu.Unlock()
	if p.onProbe != nil {
		p.onProbe(n)
	}
	if p.okAfter > 0 && n >= p.okAfter {
		return nil
	}
	return errors.New("connection refused")
}

// staticResolver resolves every specifier below dir/node_modules.
type staticResolver struct {
	dir string
	err error
}

func (r staticResolver) Resolve(specifier, _ string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return filepath.Join(r.dir, "node_modules", filepath.FromSlash(specifier)), nil
}

// freePort returns a port that was free a moment ago.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
