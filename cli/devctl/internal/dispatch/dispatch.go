// Package dispatch resolves the requested task name against the registry,
// runs it, reports elapsed time and turns the outcome into an exit status.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/execx"
)

// HelpTask is dispatched when no task name is given.
const HelpTask = "help"

type Dispatcher struct {
	Registry *cmdregistry.Registry
	// Base is copied for every dispatch; Task, Args and Ctx are filled in.
	Base   cmdregistry.Context
	Stderr io.Writer
	Log    *log.Logger

	now func() time.Time
}

func New(reg *cmdregistry.Registry, base cmdregistry.Context, stderr io.Writer, logger *log.Logger) *Dispatcher {
	if stderr == nil {
		stderr = os.Stderr
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Dispatcher{Registry: reg, Base: base, Stderr: stderr, Log: logger, now: time.Now}
}

// Dispatch runs argv[0] with argv[1:] and returns the process exit status.
// The registry is sealed first; an unknown name runs nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, argv []string) int {
	d.Registry.Seal()
	name, args := HelpTask, []string{}
	if len(argv) > 0 {
		name, args = argv[0], append([]string{}, argv[1:]...)
	}
	h, ok := d.Registry.Lookup(name)
	if !ok {
		err := &cmdregistry.UnknownTaskError{Name: name}
		fmt.Fprintln(d.Stderr, err.Error())
		return execx.StatusCode(err)
	}

	tc := d.Base
	tc.Ctx = ctx
	tc.Task = name
	tc.Args = args
	tc.Registry = d.Registry
	if tc.Log == nil {
		tc.Log = d.Log
	}

	start := d.now()
	err := h(&tc)
	elapsed := d.now().Sub(start)

	code := execx.StatusCode(err)
	if err != nil {
		d.Log.WithFields(log.Fields{"task": name, "status": code}).WithError(err).Error("task failed")
	}
	fmt.Fprintf(d.Stderr, "\nTask completed in %s\n", FormatElapsed(elapsed))
	return code
}

// FormatElapsed renders d as minutes and seconds with millisecond
// precision, e.g. 0m1.234s.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := d / time.Minute
	s := (d - m*time.Minute).Seconds()
	return fmt.Sprintf("%dm%.3fs", int64(m), s)
}
