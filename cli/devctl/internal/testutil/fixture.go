// Package testutil holds fakes shared by task tests.
package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/compose"
	"devkit/cli/devctl/internal/config"
	"devkit/cli/devctl/internal/execx"
	"devkit/cli/devctl/internal/logging"
)

type rule struct {
	match func([]string) bool
	code  int
	times int // remaining failures; <0 means always
}

// Recorder is a runner.Executor that records every command and fails the
// ones matching a scripted rule.
type Recorder struct {
	Cmds  []execx.Cmd
	rules []*rule
}

// FailWhen makes every command matching match exit with code.
func (r *Recorder) FailWhen(match func([]string) bool, code int) {
	r.rules = append(r.rules, &rule{match: match, code: code, times: -1})
}

// FailTimes makes the first n matching commands exit with code.
func (r *Recorder) FailTimes(match func([]string) bool, code, n int) {
	r.rules = append(r.rules, &rule{match: match, code: code, times: n})
}

func (r *Recorder) Run(_ context.Context, cmd execx.Cmd) error {
	r.Cmds = append(r.Cmds, cmd)
	for _, rl := range r.rules {
		if rl.times == 0 || !rl.match(cmd.Argv) {
			continue
		}
		if rl.times > 0 {
			rl.times--
		}
		return &execx.ExitError{Argv: cmd.Argv, Code: rl.code}
	}
	return nil
}

// Lines returns each recorded argv joined by spaces.
func (r *Recorder) Lines() []string {
	out := make([]string, 0, len(r.Cmds))
	for _, c := range r.Cmds {
		out = append(out, c.String())
	}
	return out
}

// Index returns the position of the first recorded command containing sub,
// or -1.
func (r *Recorder) Index(sub string) int {
	for i, l := range r.Lines() {
		if strings.Contains(l, sub) {
			return i
		}
	}
	return -1
}

// Contains matches argv whose joined form contains sub.
func Contains(sub string) func([]string) bool {
	return func(argv []string) bool { return strings.Contains(strings.Join(argv, " "), sub) }
}

// HasSuffix matches argv whose joined form ends with sub.
func HasSuffix(sub string) func([]string) bool {
	return func(argv []string) bool { return strings.HasSuffix(strings.Join(argv, " "), sub) }
}

// Env is a task context wired to a Recorder, a non-interactive compose
// wrapper and default config.
type Env struct {
	Rec      *Recorder
	Registry *cmdregistry.Registry
	Stdout   *bytes.Buffer
	Stderr   *bytes.Buffer
	Config   config.Config
	// Dir is a fresh temporary project directory.
	Dir string
}

// NewEnv builds an Env; register tasks on Env.Registry before calling Run.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	return &Env{
		Rec:      &Recorder{},
		Registry: cmdregistry.New(),
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Config:   config.Default(),
		Dir:      t.TempDir(),
	}
}

// Context returns a task context for name/args.
func (e *Env) Context(name string, args ...string) *cmdregistry.Context {
	return &cmdregistry.Context{
		Ctx:     context.Background(),
		Task:    name,
		Args:    args,
		Program: "devctl",
		Dir:     e.Dir,
		Config:  e.Config,
		Compose: &compose.Wrapper{
			Binary:      e.Config.BinaryArgs(),
			Files:       e.Config.Compose.Files,
			Project:     e.Config.Compose.Project,
			Mode:        compose.Mode(e.Config.Runtime.Mode),
			Interactive: false,
			Exec:        e.Rec,
		},
		Exec:     e.Rec,
		Registry: e.Registry,
		Stdout:   e.Stdout,
		Stderr:   e.Stderr,
		Log:      logging.Discard(),
	}
}

// Run looks up and runs a registered task the way the dispatcher would.
func (e *Env) Run(t *testing.T, name string, args ...string) error {
	t.Helper()
	h, ok := e.Registry.Lookup(name)
	if !ok {
		t.Fatalf("task %s not registered", name)
	}
	return h(e.Context(name, args...))
}
