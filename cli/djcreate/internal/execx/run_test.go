package execx

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func quietHost() (*Host, *bytes.Buffer) {
	var stderr bytes.Buffer
	return &Host{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &stderr}, &stderr
}

func TestRunReportsExitCode(t *testing.T) {
	skipWithoutShell(t)
	h, _ := quietHost()
	res := h.Run(context.Background(), t.TempDir(), "sh", "-c", "exit 3")
	if res.Code != 3 {
		t.Fatalf("expected code 3, got %d (err=%v)", res.Code, res.Err)
	}
	if res.OK() {
		t.Fatal("non-zero exit must not be OK")
	}
	err := res.AsError("sh", "-c", "exit 3")
	if err == nil || !strings.Contains(err.Error(), "sh -c exit 3") {
		t.Fatalf("error should name the command line, got %v", err)
	}
}

func TestCaptureRunsInGivenDir(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker"), []byte("here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, _ := quietHost()
	out, res := h.Capture(context.Background(), dir, "cat", "marker")
	if !res.OK() {
		t.Fatalf("capture failed: %+v", res)
	}
	if out != "here\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunMissingBinary(t *testing.T) {
	h, _ := quietHost()
	res := h.Run(context.Background(), t.TempDir(), "djcreate-no-such-binary")
	if res.Code != 1 || res.Err == nil {
		t.Fatalf("expected code 1 with error, got %+v", res)
	}
}

func TestRunDeadline(t *testing.T) {
	skipWithoutShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	h, _ := quietHost()
	res := h.Run(ctx, t.TempDir(), "sleep", "5")
	if res.OK() {
		t.Fatal("expected the deadline to kill the child")
	}
}

func TestTraceEchoesCommand(t *testing.T) {
	skipWithoutShell(t)
	h, stderr := quietHost()
	h.Trace = true
	dir := t.TempDir()
	if res := h.Run(context.Background(), dir, "true"); !res.OK() {
		t.Fatalf("true failed: %+v", res)
	}
	if got := stderr.String(); !strings.Contains(got, "+ ("+dir+") true") {
		t.Fatalf("trace line missing: %q", got)
	}
}

func TestRunForwardsStdin(t *testing.T) {
	skipWithoutShell(t)
	var stdout bytes.Buffer
	h := &Host{Stdin: strings.NewReader("admin\n"), Stdout: &stdout, Stderr: &bytes.Buffer{}}

	res := h.Run(context.Background(), t.TempDir(), "sh", "-c", `read x; echo "got $x"`)
	if !res.OK() {
		t.Fatalf("run failed: %+v", res)
	}
	if got := stdout.String(); got != "got admin\n" {
		t.Fatalf("stdin not forwarded to the child, stdout=%q", got)
	}
}
