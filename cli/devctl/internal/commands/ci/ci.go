// Package ci registers ci:test, the fail-fast pipeline a CI job runs from
// a fresh checkout.
package ci

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/compose"
	"devkit/cli/devctl/internal/environ"
	"devkit/cli/devctl/internal/readiness"
)

func Register(r *cmdregistry.Registry) {
	r.Register("ci:test", "Execute Django tests in a CI environment", handleTest)
}

func handleTest(ctx *cmdregistry.Context) error {
	args := ctx.Args
	return cmdregistry.Steps(
		func() error { return ctx.Call("lint:dockerfile", args...) },
		func() error { return ensureEnvFile(ctx) },
		func() error { return ctx.Compose.Compose(ctx.Context(), "build") },
		func() error { return ctx.Compose.Compose(ctx.Context(), "up", "-d") },
		func() error { return waitForDatabase(ctx) },
		func() error { return ctx.Compose.Compose(ctx.Context(), "logs") },
		func() error { return ctx.Call("lint", args...) },
		func() error { return ctx.Call("format:imports", "--check") },
		func() error { return ctx.Call("format", "--check") },
		func() error { return ctx.Call("manage", "migrate") },
		func() error { return ctx.Call("test", args...) },
	)
}

func ensureEnvFile(ctx *cmdregistry.Context) error {
	path, example := ctx.Path(ctx.Config.Env.File), ctx.Path(ctx.Config.Env.Example)
	if ctx.Config.Runtime.DryRun {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(ctx.Stderr, "+ cp %s %s\n", ctx.Config.Env.Example, ctx.Config.Env.File)
		}
		return nil
	}
	created, err := environ.EnsureFile(path, example)
	if err != nil {
		return err
	}
	if created {
		ctx.Log.WithField("file", ctx.Config.Env.File).Info("created from " + ctx.Config.Env.Example)
	}
	return nil
}

// loadEnv reads the dotenv file. A dry run that skipped creating it falls
// back to the template.
func loadEnv(ctx *cmdregistry.Context) (map[string]string, error) {
	vars, err := environ.LoadFile(ctx.Path(ctx.Config.Env.File))
	if err != nil && ctx.Config.Runtime.DryRun && errors.Is(err, environ.ErrEnvFileMissing) {
		return environ.LoadFile(ctx.Path(ctx.Config.Env.Example))
	}
	return vars, err
}

func waitForDatabase(ctx *cmdregistry.Context) error {
	vars, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	user := strings.TrimSpace(vars["POSTGRES_USER"])
	if user == "" {
		return fmt.Errorf("POSTGRES_USER is not set in %s", ctx.Config.Env.File)
	}
	env := map[string]string{"PGPASSWORD": vars["POSTGRES_PASSWORD"]}

	// Readiness always targets the running service, whatever DC says.
	w := ctx.Compose.NonInteractive()
	w.Mode = compose.ModeExec
	service := ctx.Config.Services.Database

	policy := readiness.Policy{
		Attempts: ctx.Config.Readiness.Attempts,
		Interval: ctx.Config.Readiness.IntervalDuration(),
		Notify: func(attempt int, err error) {
			ctx.Log.WithFields(log.Fields{"service": service, "attempt": attempt}).Info("waiting for database")
		},
	}
	err = readiness.Poll(ctx.Context(), policy, func(c context.Context) error {
		return w.ExecInServiceWithEnv(c, service, env, "psql", "-U", user, user, "-c", "SELECT 1")
	})
	if err != nil {
		return fmt.Errorf("%s: %w", service, err)
	}
	return nil
}
