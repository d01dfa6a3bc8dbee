package compose

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"devkit/cli/devctl/internal/execx"
	"devkit/cli/devctl/internal/runner"
)

// Mode selects the compose subcommand used for ExecInService.
type Mode string

const (
	ModeExec Mode = "exec"
	ModeRun  Mode = "run"
)

// ParseMode accepts the DC variable values; empty means exec.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exec":
		return ModeExec, nil
	case "run":
		return ModeRun, nil
	default:
		return "", fmt.Errorf("unknown compose mode %q (want exec or run)", s)
	}
}

// DefaultBinary is the compose entry point when none is configured.
var DefaultBinary = []string{"docker", "compose"}

var errNoService = errors.New("service name required")

// Wrapper carries the per-project compose settings shared by every call.
type Wrapper struct {
	Binary  []string
	Files   []string
	Project string
	Mode    Mode
	// Interactive is sampled once when the wrapper is built; false adds -T.
	Interactive bool
	Exec        runner.Executor
}

// NonInteractive returns a copy that never asks for a pseudo-terminal.
func (w *Wrapper) NonInteractive() *Wrapper {
	cp := *w
	cp.Interactive = false
	return &cp
}

func (w *Wrapper) base() []string {
	bin := w.Binary
	if len(bin) == 0 {
		bin = DefaultBinary
	}
	args := append([]string{}, bin...)
	if p := strings.TrimSpace(w.Project); p != "" {
		args = append(args, "-p", p)
	}
	for _, f := range w.Files {
		if strings.TrimSpace(f) == "" {
			continue
		}
		args = append(args, "-f", f)
	}
	return args
}

// ComposeArgs builds a plain compose call such as `build` or `up -d`.
func (w *Wrapper) ComposeArgs(args ...string) []string {
	return append(w.base(), args...)
}

// ExecArgs builds the argv for running argv inside an already running
// service. Env entries become -e flags in key order.
func (w *Wrapper) ExecArgs(service string, argv []string, env map[string]string) []string {
	mode := w.Mode
	if mode == "" {
		mode = ModeExec
	}
	args := append(w.base(), string(mode))
	if !w.Interactive {
		args = append(args, "-T")
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+env[k])
	}
	args = append(args, service)
	return append(args, argv...)
}

// RunOnceArgs builds the argv for a disposable container of service that
// does not start its dependencies and is removed on exit.
func (w *Wrapper) RunOnceArgs(service string, argv []string) []string {
	args := append(w.base(), "run")
	if !w.Interactive {
		args = append(args, "-T")
	}
	args = append(args, "--no-deps", "--rm", service)
	return append(args, argv...)
}

func (w *Wrapper) ExecInService(ctx context.Context, service string, argv ...string) error {
	return w.ExecInServiceWithEnv(ctx, service, nil, argv...)
}

func (w *Wrapper) ExecInServiceWithEnv(ctx context.Context, service string, env map[string]string, argv ...string) error {
	if strings.TrimSpace(service) == "" {
		return errNoService
	}
	return w.Exec.Run(ctx, execx.Cmd{Argv: w.ExecArgs(service, argv, env)})
}

func (w *Wrapper) RunOnceInService(ctx context.Context, service string, argv ...string) error {
	if strings.TrimSpace(service) == "" {
		return errNoService
	}
	return w.Exec.Run(ctx, execx.Cmd{Argv: w.RunOnceArgs(service, argv)})
}

// Compose runs a lifecycle subcommand (build, up, down, logs, ps).
func (w *Wrapper) Compose(ctx context.Context, args ...string) error {
	return w.Exec.Run(ctx, execx.Cmd{Argv: w.ComposeArgs(args...)})
}
