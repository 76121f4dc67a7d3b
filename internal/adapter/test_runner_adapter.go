package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	m "guut.dev/pkg/guut/internal/model"
)

const (
	// DefaultTimeout bounds a single sandboxed process.
	DefaultTimeout = 10 * time.Second
	// DefaultOutputLimitBytes caps the raw output captured from one process.
	DefaultOutputLimitBytes = 1 << 20

	waitDelay = 2 * time.Second
)

// GoTestRequest describes one `go test` invocation inside a sandbox.
type GoTestRequest struct {
	// Dir is the module root the command runs in.
	Dir string
	// Package is the package pattern, e.g. "./internal/calc".
	Package string
	// Run lists the test function names to execute. Empty runs none.
	Run []string
	// CoverProfile enables coverage collection into the given file.
	CoverProfile string
	// CoverPkg is passed to -coverpkg when CoverProfile is set.
	CoverPkg string
	Timeout  time.Duration
}

// DebuggerRequest describes one scripted debugger session over a test binary.
type DebuggerRequest struct {
	Dir     string
	Package string
	Run     []string
	// Command is the debugger executable, "dlv" by default.
	Command string
	// Script is fed to the debugger on stdin.
	Script  string
	Timeout time.Duration
}

// TestRunnerAdapter abstracts the Go toolchain invocations of a sandbox.
type TestRunnerAdapter interface {
	// RunGoTest runs `go test` and reports the process outcome. A timeout or a
	// non-zero exit is data, not an error; errors mean the process could not
	// be started.
	RunGoTest(ctx context.Context, req GoTestRequest) (m.ExecutionResult, error)

	// CompileGoTest builds the test binary of a package without running it.
	CompileGoTest(ctx context.Context, req GoTestRequest) (m.ExecutionResult, error)

	// RunDebugger runs the package tests under a debugger driven by a script.
	RunDebugger(ctx context.Context, req DebuggerRequest) (m.ExecutionResult, error)
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct {
	timeout     time.Duration
	outputLimit int
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter. A zero
// timeout selects DefaultTimeout.
func NewLocalTestRunnerAdapter(timeout time.Duration) *LocalTestRunnerAdapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &LocalTestRunnerAdapter{
		timeout:     timeout,
		outputLimit: DefaultOutputLimitBytes,
	}
}

// RunGoTest runs `go test -v -count=1` for the requested test functions.
func (a *LocalTestRunnerAdapter) RunGoTest(ctx context.Context, req GoTestRequest) (m.ExecutionResult, error) {
	args := []string{"test", "-v", "-count=1", "-run", RunPattern(req.Run)}

	if req.CoverProfile != "" {
		args = append(args, "-coverprofile", req.CoverProfile)
		if req.CoverPkg != "" {
			args = append(args, "-coverpkg", req.CoverPkg)
		}
	}

	args = append(args, req.Package)

	return a.run(ctx, req.Dir, "go", args, "", req.Timeout)
}

// CompileGoTest runs `go test -c` and discards the binary.
func (a *LocalTestRunnerAdapter) CompileGoTest(ctx context.Context, req GoTestRequest) (m.ExecutionResult, error) {
	out := filepath.Join(req.Dir, ".guut-compile.test")

	defer func() {
		_ = os.Remove(out)
	}()

	return a.run(ctx, req.Dir, "go", []string{"test", "-c", "-o", out, req.Package}, "", req.Timeout)
}

// RunDebugger runs `dlv test` with the script on stdin.
func (a *LocalTestRunnerAdapter) RunDebugger(ctx context.Context, req DebuggerRequest) (m.ExecutionResult, error) {
	command := req.Command
	if command == "" {
		command = "dlv"
	}

	args := []string{
		"test", req.Package,
		"--allow-non-terminal-interactive=true",
		"--", "-test.v", "-test.run", RunPattern(req.Run),
	}

	return a.run(ctx, req.Dir, command, args, DebuggerInput(req.Script), req.Timeout)
}

func (a *LocalTestRunnerAdapter) run(
	ctx context.Context,
	dir, name string,
	args []string,
	input string,
	timeout time.Duration,
) (m.ExecutionResult, error) {
	if strings.TrimSpace(dir) == "" {
		return m.ExecutionResult{}, errors.New("workdir must not be empty")
	}

	if timeout <= 0 {
		timeout = a.timeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204 - name is the go tool or the configured debugger
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	output := newLimitedBuffer(a.outputLimit)
	cmd.Stdout = output
	cmd.Stderr = output

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := m.ExecutionResult{
		Command:  append([]string{name}, args...),
		Dir:      dir,
		Input:    input,
		Duration: duration,
	}

	if err != nil {
		switch {
		case ctx.Err() != nil:
			// The caller gave up; the outcome says nothing about the program.
			return m.ExecutionResult{}, fmt.Errorf("failed to run %s: %w", name, ctx.Err())
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			result.ExitCode = -1
			result.TimedOut = true
			output.WriteString(fmt.Sprintf("\nprocess timed out after %s", timeout))
		default:
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				result.ExitCode = exitErr.ExitCode()
			} else if cmd.ProcessState != nil {
				result.ExitCode = cmd.ProcessState.ExitCode()
			} else {
				return m.ExecutionResult{}, fmt.Errorf("failed to run %s: %w", name, err)
			}
		}
	}

	result.Output = output.String()

	return result, nil
}

// RunPattern builds an anchored -run pattern selecting exactly names. An empty
// list selects nothing.
func RunPattern(names []string) string {
	if len(names) == 0 {
		return "^$"
	}

	return "^(" + strings.Join(names, "|") + ")$"
}

// DebuggerInput terminates a debugger script so the debugger exits once the
// script is exhausted.
func DebuggerInput(script string) string {
	script = strings.TrimRight(script, "\n")
	if script == "" {
		return "exit\n"
	}

	lines := strings.Split(script, "\n")
	switch strings.TrimSpace(lines[len(lines)-1]) {
	case "exit", "quit", "q":
		return script + "\n"
	}

	return script + "\nexit\n"
}

type limitedBuffer struct {
	max       int
	data      bytes.Buffer
	truncated bool
}

func newLimitedBuffer(max int) *limitedBuffer {
	if max <= 0 {
		max = DefaultOutputLimitBytes
	}

	return &limitedBuffer{max: max}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	written := len(p)

	remaining := b.max - b.data.Len()
	if remaining <= 0 {
		b.truncated = b.truncated || len(p) > 0

		return written, nil
	}

	if len(p) > remaining {
		p = p[:remaining]
		b.truncated = true
	}

	b.data.Write(p)

	return written, nil
}

func (b *limitedBuffer) WriteString(s string) {
	_, _ = b.Write([]byte(s))
}

func (b *limitedBuffer) String() string {
	if !b.truncated {
		return b.data.String()
	}

	return b.data.String() + "\n...[output truncated]"
}
