package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result carries the exit code of a finished command alongside the error
// returned by os/exec. Code is 0 only when Err is nil.
type Result struct {
	Code int
	Err  error
}

// OK reports whether the command exited cleanly.
func (r Result) OK() bool { return r.Code == 0 && r.Err == nil }

// AsError returns nil for a clean exit, otherwise an error naming the command line.
func (r Result) AsError(name string, args ...string) error {
	if r.OK() {
		return nil
	}
	line := strings.Join(append([]string{name}, args...), " ")
	if r.Err != nil {
		return fmt.Errorf("%s: %w", line, r.Err)
	}
	return fmt.Errorf("%s exited with code %d", line, r.Code)
}

// Host runs binaries on the local machine with the terminal attached.
// Commands never inherit a working directory from the process: every call
// names the directory it runs in.
type Host struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Trace echoes each command line to Stderr before it runs.
	Trace bool
}

// NewHost returns a Host wired to the process's standard streams.
func NewHost(trace bool) *Host {
	return &Host{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Trace: trace}
}

// Run executes name in dir, streaming stdout/stderr and forwarding stdin so
// interactive prompts reach the user. No timeout is applied beyond ctx.
func (h *Host) Run(ctx context.Context, dir, name string, args ...string) Result {
	h.trace(dir, name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = h.Stdin
	cmd.Stdout = h.Stdout
	cmd.Stderr = h.Stderr
	err := cmd.Run()
	return Result{Code: exitCode(ctx, err), Err: err}
}

// Capture executes name in dir and returns its stdout. Stderr still streams
// to the host so tool diagnostics stay visible.
func (h *Host) Capture(ctx context.Context, dir, name string, args ...string) (string, Result) {
	h.trace(dir, name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = h.Stderr
	out, err := cmd.Output()
	return string(out), Result{Code: exitCode(ctx, err), Err: err}
}

func (h *Host) trace(dir, name string, args []string) {
	if !h.Trace || h.Stderr == nil {
		return
	}
	fmt.Fprintf(h.Stderr, "+ (%s) %s\n", dir, strings.Join(append([]string{name}, args...), " "))
}

func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		return ee.ExitCode()
	}
	// killed by signal or never started
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 124
	}
	return 1
}
