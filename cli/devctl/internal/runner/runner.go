package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"devkit/cli/devctl/internal/execx"
)

// Executor runs one child process to completion. A non-nil error means the
// child failed or could not be started; execx.StatusCode recovers its status.
type Executor interface {
	Run(ctx context.Context, cmd execx.Cmd) error
}

// Runner is the production Executor backed by execx.
type Runner struct {
	// DryRun prints each command to Trace instead of running it.
	DryRun bool
	Trace  io.Writer
	Log    *log.Logger

	exec func(context.Context, execx.Cmd) execx.Result
}

// New returns a Runner. A nil trace writes to stderr.
func New(dryRun bool, trace io.Writer, logger *log.Logger) *Runner {
	if trace == nil {
		trace = os.Stderr
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Runner{DryRun: dryRun, Trace: trace, Log: logger, exec: execx.Run}
}

func (r *Runner) Run(ctx context.Context, cmd execx.Cmd) error {
	line := TraceLine(cmd)
	if r.DryRun {
		fmt.Fprintln(r.Trace, line)
		return nil
	}
	r.Log.Debug(line)
	res := r.exec(ctx, cmd)
	if res.Err != nil {
		r.Log.WithFields(log.Fields{"code": res.Code, "cmd": cmd.String()}).Debug("command failed")
		return res.Err
	}
	return nil
}

// Host runs a host binary in dir ("" for the current directory) with the
// caller's stdio.
func Host(ctx context.Context, e Executor, dir, name string, args ...string) error {
	return e.Run(ctx, execx.Cmd{Argv: append([]string{name}, args...), Dir: dir})
}

// HostEnv is Host with an environment overlay for the child only.
func HostEnv(ctx context.Context, e Executor, dir string, env map[string]string, name string, args ...string) error {
	return e.Run(ctx, execx.Cmd{Argv: append([]string{name}, args...), Env: env, Dir: dir})
}

// TraceLine renders a command as `+ K=V argv...`, env keys sorted.
func TraceLine(cmd execx.Cmd) string {
	var b strings.Builder
	b.WriteString("+ ")
	keys := make([]string, 0, len(cmd.Env))
	for k := range cmd.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k + "=" + cmd.Env[k] + " ")
	}
	b.WriteString(cmd.String())
	return b.String()
}
