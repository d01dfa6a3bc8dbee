package cmdregistry

import (
	"context"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"devkit/cli/devctl/internal/compose"
	"devkit/cli/devctl/internal/config"
	"devkit/cli/devctl/internal/runner"
)

// Context carries the pre-parsed data and handles that task handlers need.
type Context struct {
	Ctx     context.Context
	Task    string
	Args    []string
	Program string
	// Dir is the project directory relative paths are resolved against.
	Dir string

	Config   config.Config
	Compose  *compose.Wrapper
	Exec     runner.Executor
	Registry *Registry

	Stdout io.Writer
	Stderr io.Writer
	Log    *log.Logger
}

// Context returns the request context, never nil.
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Path resolves p against Dir unless it is already absolute.
func (c *Context) Path(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Call runs another registered task synchronously with the given args and
// returns its error unchanged, so a failing step stops the caller.
func (c *Context) Call(name string, args ...string) error {
	if c.Registry == nil {
		return &UnknownTaskError{Name: name}
	}
	h, ok := c.Registry.Lookup(name)
	if !ok {
		return &UnknownTaskError{Name: name}
	}
	sub := *c
	sub.Task = name
	sub.Args = args
	if c.Log != nil {
		c.Log.WithFields(log.Fields{"task": name, "from": c.Task}).Debug("calling task")
	}
	return h(&sub)
}

// Steps runs fns in order and returns the first error.
func Steps(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
