// Package deps registers the Python (uv) and JavaScript (yarn) dependency
// tasks.
package deps

import (
	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/commands/servicecmd"
)

func Register(r *cmdregistry.Registry) {
	r.Register("deps:install", "Install back-end and front-end dependencies", handleInstall)
	r.Register("uv", "Install Python dependencies and write lock file", handleUV)
	r.Register("uv:outdated", "List any installed packages that are outdated", handleUVOutdated)
	r.Register("yarn", "Install yarn dependencies and write lock file", handleYarn)
	r.Register("yarn:outdated", "List any installed packages that are outdated", handleYarnOutdated)
}

// handleInstall rebuilds the images first unless any argument is given,
// then installs both dependency sets in disposable containers.
func handleInstall(ctx *cmdregistry.Context) error {
	svc := ctx.Config.Services
	steps := []func() error{}
	if len(ctx.Args) == 0 {
		steps = append(steps,
			func() error { return ctx.Compose.Compose(ctx.Context(), "down") },
			func() error { return ctx.Compose.Compose(ctx.Context(), "build") },
		)
	}
	steps = append(steps,
		func() error { return ctx.Call(servicecmd.TaskRunOnce, svc.Assets, "yarn", "install") },
		func() error {
			return ctx.Call(servicecmd.TaskRunOnce, svc.App, "bash", "-c", "cd .. && bin/uv-install")
		},
	)
	return cmdregistry.Steps(steps...)
}

func handleUV(ctx *cmdregistry.Context) error {
	return ctx.Call("cmd", append([]string{"uv"}, ctx.Args...)...)
}

func handleUVOutdated(ctx *cmdregistry.Context) error {
	argv := append([]string{ctx.Config.Services.App, "uv", "tree", "--outdated", "--depth", "1"}, ctx.Args...)
	return ctx.Call(servicecmd.TaskRunOnce, argv...)
}

func handleYarn(ctx *cmdregistry.Context) error {
	return ctx.Call(servicecmd.TaskExec, append([]string{ctx.Config.Services.Assets, "yarn"}, ctx.Args...)...)
}

func handleYarnOutdated(ctx *cmdregistry.Context) error {
	return ctx.Call(servicecmd.TaskRunOnce, append([]string{ctx.Config.Services.Assets, "yarn", "outdated"}, ctx.Args...)...)
}
