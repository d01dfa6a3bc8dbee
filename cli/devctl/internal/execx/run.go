package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"syscall"
)

// Exit codes used when the child never produced one of its own.
const (
	CodeFailure      = 1
	CodeNotRunnable  = 126
	CodeNotFound     = 127
	CodeTimeout      = 124
	signalCodeOffset = 128
)

// Cmd describes a single child process invocation.
type Cmd struct {
	Argv []string
	// Env is applied on top of the inherited environment for this child only.
	Env    map[string]string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the argv the way a shell trace would.
func (c Cmd) String() string {
	return strings.Join(c.Argv, " ")
}

type Result struct {
	Code int
	Err  error
}

// ExitError is returned when the child ran and exited non-zero.
type ExitError struct {
	Argv []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", argvName(e.Argv), e.Code)
}

func (e *ExitError) ExitCode() int { return e.Code }

// SetupError is returned when the child could not be launched at all
// (binary missing, permission denied, bad working directory).
type SetupError struct {
	Argv []string
	Code int
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup error: %s: %v", argvName(e.Argv), e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

func (e *SetupError) ExitCode() int { return e.Code }

// StatusCode maps an error returned anywhere in a task chain to the process
// exit status. Errors carrying their own code (ExitCode() int) keep it.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		if code := coded.ExitCode(); code != 0 {
			return code
		}
	}
	return CodeFailure
}

// Run starts the child, waits for it and reports its status. Stdio defaults
// to the calling process's own streams so shells and pagers work.
func Run(ctx context.Context, c Cmd) Result {
	if len(c.Argv) == 0 || strings.TrimSpace(c.Argv[0]) == "" {
		err := &SetupError{Argv: c.Argv, Code: CodeFailure, Err: errors.New("empty command")}
		return Result{Code: err.Code, Err: err}
	}
	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = mergeEnv(os.Environ(), c.Env)
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		serr := &SetupError{Argv: c.Argv, Code: setupCode(err), Err: err}
		return Result{Code: serr.Code, Err: serr}
	}

	// The terminal delivers SIGINT to the whole foreground group, so the child
	// sees it already; devctl must only survive long enough to report the
	// child's status. SIGTERM aimed at devctl alone is passed on.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				if sig == syscall.SIGTERM {
					_ = cmd.Process.Signal(sig)
				}
			case <-done:
				return
			}
		}
	}()
	err := cmd.Wait()
	signal.Stop(sigs)
	close(done)

	if err == nil {
		return Result{}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return Result{Code: CodeTimeout, Err: &ExitError{Argv: c.Argv, Code: CodeTimeout}}
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := exitCode(ee)
		return Result{Code: code, Err: &ExitError{Argv: c.Argv, Code: code}}
	}
	return Result{Code: CodeFailure, Err: &SetupError{Argv: c.Argv, Code: CodeFailure, Err: err}}
}

// Capture runs a command and returns stdout as string and exit code.
func Capture(ctx context.Context, name string, args ...string) (string, Result) {
	var out bytes.Buffer
	res := Run(ctx, Cmd{
		Argv:   append([]string{name}, args...),
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: io.Discard,
	})
	return out.String(), res
}

func exitCode(ee *exec.ExitError) int {
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalCodeOffset + int(ws.Signal())
	}
	if code := ee.ExitCode(); code > 0 {
		return code
	}
	return CodeFailure
}

func setupCode(err error) int {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return CodeNotRunnable
	default:
		return CodeFailure
	}
}

// mergeEnv appends the overlay in key order; exec keeps the last value for a
// duplicated key, so overlay entries win over inherited ones.
func mergeEnv(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}
	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(base)+len(keys))
	env = append(env, base...)
	for _, k := range keys {
		env = append(env, k+"="+overlay[k])
	}
	return env
}

func orReader(r io.Reader, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w io.Writer, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}

func argvName(argv []string) string {
	if len(argv) == 0 {
		return "<empty>"
	}
	return argv[0]
}
