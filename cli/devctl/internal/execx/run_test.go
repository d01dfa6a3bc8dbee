package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	requireSh(t)
	res := Run(context.Background(), Cmd{Argv: []string{"sh", "-c", "exit 3"}, Stdout: &bytes.Buffer{}})
	if res.Code != 3 {
		t.Fatalf("code=%d, want 3", res.Code)
	}
	var ee *ExitError
	if !errors.As(res.Err, &ee) {
		t.Fatalf("expected *ExitError, got %T", res.Err)
	}
	if StatusCode(res.Err) != 3 {
		t.Fatalf("StatusCode=%d", StatusCode(res.Err))
	}
}

func TestRunSuccess(t *testing.T) {
	requireSh(t)
	res := Run(context.Background(), Cmd{Argv: []string{"sh", "-c", "true"}})
	if res.Code != 0 || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunMissingBinaryIsSetupError(t *testing.T) {
	res := Run(context.Background(), Cmd{Argv: []string{"devctl-definitely-not-installed"}})
	var se *SetupError
	if !errors.As(res.Err, &se) {
		t.Fatalf("expected *SetupError, got %T (%v)", res.Err, res.Err)
	}
	if res.Code != CodeNotFound {
		t.Fatalf("code=%d, want %d", res.Code, CodeNotFound)
	}
	if !strings.HasPrefix(se.Error(), "setup error:") {
		t.Fatalf("unexpected message %q", se.Error())
	}
}

func TestRunEmptyArgv(t *testing.T) {
	res := Run(context.Background(), Cmd{})
	var se *SetupError
	if !errors.As(res.Err, &se) || res.Code != CodeFailure {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunEnvOverlayDoesNotLeak(t *testing.T) {
	requireSh(t)
	t.Setenv("DEVCTL_EXECX_BASE", "base")
	var out bytes.Buffer
	res := Run(context.Background(), Cmd{
		Argv:   []string{"sh", "-c", `printf '%s %s' "$DEVCTL_EXECX_BASE" "$DEVCTL_EXECX_OVERLAY"`},
		Env:    map[string]string{"DEVCTL_EXECX_OVERLAY": "overlay"},
		Stdout: &out,
	})
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	if out.String() != "base overlay" {
		t.Fatalf("stdout=%q", out.String())
	}
	if _, ok := os.LookupEnv("DEVCTL_EXECX_OVERLAY"); ok {
		t.Fatalf("overlay leaked into parent environment")
	}

	out.Reset()
	Run(context.Background(), Cmd{
		Argv:   []string{"sh", "-c", `printf '%s' "$DEVCTL_EXECX_OVERLAY"`},
		Stdout: &out,
	})
	if out.String() != "" {
		t.Fatalf("overlay leaked into later call: %q", out.String())
	}
}

func TestRunOverlayOverridesInherited(t *testing.T) {
	requireSh(t)
	t.Setenv("DEVCTL_EXECX_VALUE", "inherited")
	var out bytes.Buffer
	Run(context.Background(), Cmd{
		Argv:   []string{"sh", "-c", `printf '%s' "$DEVCTL_EXECX_VALUE"`},
		Env:    map[string]string{"DEVCTL_EXECX_VALUE": "overlay"},
		Stdout: &out,
	})
	if out.String() != "overlay" {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestRunStdin(t *testing.T) {
	requireSh(t)
	var out bytes.Buffer
	Run(context.Background(), Cmd{
		Argv:   []string{"sh", "-c", "cat"},
		Stdin:  strings.NewReader("FROM alpine\n"),
		Stdout: &out,
	})
	if out.String() != "FROM alpine\n" {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestRunSignalledChild(t *testing.T) {
	requireSh(t)
	res := Run(context.Background(), Cmd{Argv: []string{"sh", "-c", "kill -TERM $$"}})
	if res.Code != 128+15 {
		t.Fatalf("code=%d, want %d", res.Code, 128+15)
	}
}

func TestCapture(t *testing.T) {
	requireSh(t)
	out, res := Capture(context.Background(), "sh", "-c", "echo hello")
	if res.Code != 0 || strings.TrimSpace(out) != "hello" {
		t.Fatalf("out=%q res=%+v", out, res)
	}
}

type codedErr struct{ code int }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) ExitCode() int { return e.code }

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("plain"), 1},
		{&ExitError{Argv: []string{"x"}, Code: 9}, 9},
		{fmt.Errorf("wrapped: %w", &ExitError{Argv: []string{"x"}, Code: 4}), 4},
		{&SetupError{Argv: []string{"x"}, Code: CodeNotFound, Err: exec.ErrNotFound}, CodeNotFound},
		{codedErr{code: 42}, 42},
		{codedErr{code: 0}, 1},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Fatalf("StatusCode(%v)=%d, want %d", tc.err, got, tc.want)
		}
	}
}
