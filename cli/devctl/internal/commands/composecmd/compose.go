package composecmd

import (
	"devkit/cli/devctl/internal/cmdregistry"
)

// Register adds compose lifecycle commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("up", "Start all services in the background", lifecycle("up", "-d"))
	r.Register("down", "Stop and remove all services", lifecycle("down"))
	r.Register("build", "Build service images", lifecycle("build"))
	r.Register("restart", "Restart services", lifecycle("restart"))
	r.Register("ps", "List service containers", lifecycle("ps"))
	r.Register("logs", "Show service logs", lifecycle("logs"))
}

func lifecycle(sub ...string) cmdregistry.Handler {
	return func(ctx *cmdregistry.Context) error {
		args := append(append([]string{}, sub...), ctx.Args...)
		return ctx.Compose.Compose(ctx.Context(), args...)
	}
}
