package fortune

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/fortuned-dev/fortuned/pkg/debug"
)

// Runner abstracts external command execution so the generator can be
// exercised without the quote source or formatter installed.
type Runner interface {
	// LookPath reports where name resolves on the command search path.
	LookPath(name string) (string, error)

	// Run executes a command, feeding stdin to the child when non-nil,
	// and returns its captured standard output.
	Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec under a per-invocation timeout.
// Cancelling the context kills the child and releases its pipes on every
// exit path.
type ExecRunner struct {
	// Timeout bounds each command execution.
	Timeout time.Duration
}

// NewExecRunner creates a runner with the given per-command timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ExecRunner{Timeout: timeout}
}

// LookPath checks if a binary exists in PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes a command and returns its standard output. A non-zero
// exit wraps the tail of stderr into the returned error.
func (r *ExecRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		debug.Log("generator", "command finished", "name", name, "duration", time.Since(start))
	}()

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// MockRunner implements Runner for testing.
type MockRunner struct {
	mu       sync.Mutex
	lookPath map[string]string
	commands map[string]mockResult
	stdins   map[string][]byte
	calls    []string
}

type mockResult struct {
	stdout []byte
	err    error
}

// NewMockRunner creates a new mock runner with no commands configured.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		lookPath: make(map[string]string),
		commands: make(map[string]mockResult),
		stdins:   make(map[string][]byte),
	}
}

// SetLookPath configures the mock to resolve name to the given path.
func (m *MockRunner) SetLookPath(name, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookPath[name] = path
}

// SetCommand configures the mock result for a command name.
func (m *MockRunner) SetCommand(name string, stdout []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[name] = mockResult{stdout: stdout, err: err}
}

// Stdin returns the stdin bytes the last Run call for name received.
func (m *MockRunner) Stdin(name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stdins[name]
}

// Calls returns the command names passed to Run, in order.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LookPath implements Runner.
func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path, ok := m.lookPath[name]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

// Run implements Runner.
func (m *MockRunner) Run(_ context.Context, stdin []byte, name string, _ ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, name)
	m.stdins[name] = stdin

	if result, ok := m.commands[name]; ok {
		return result.stdout, result.err
	}
	return nil, exec.ErrNotFound
}
