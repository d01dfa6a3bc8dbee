// Package servicecmd registers the internal passthrough tasks other tasks
// build on: _dc runs a command in a running service, _dc_run in a
// disposable one. Both take the service name as their first argument.
package servicecmd

import (
	"fmt"

	"devkit/cli/devctl/internal/cmdregistry"
)

const (
	TaskExec    = "_dc"
	TaskRunOnce = "_dc_run"
)

func Register(r *cmdregistry.Registry) {
	r.Register(TaskExec, "Run a command in a running service", handleExec)
	r.Register(TaskRunOnce, "Run a command in a disposable service container", handleRunOnce)
}

func handleExec(ctx *cmdregistry.Context) error {
	service, argv, err := split(ctx)
	if err != nil {
		return err
	}
	return ctx.Compose.ExecInService(ctx.Context(), service, argv...)
}

func handleRunOnce(ctx *cmdregistry.Context) error {
	service, argv, err := split(ctx)
	if err != nil {
		return err
	}
	return ctx.Compose.RunOnceInService(ctx.Context(), service, argv...)
}

func split(ctx *cmdregistry.Context) (string, []string, error) {
	if len(ctx.Args) == 0 {
		return "", nil, fmt.Errorf("%s: usage: %s SERVICE [ARGS...]", ctx.Task, ctx.Task)
	}
	return ctx.Args[0], ctx.Args[1:], nil
}
