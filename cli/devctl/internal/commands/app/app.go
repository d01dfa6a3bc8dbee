// Package app registers the tasks that run inside the application service:
// cmd, manage, test and shell.
package app

import (
	"devkit/cli/devctl/internal/cmdregistry"
)

// Register adds the app service tasks to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("cmd", "Run any command you want in the app container", handleCmd)
	r.Register("manage", "Run any manage.py commands", handleManage)
	r.Register("test", "Run Python tests", handleTest)
	r.Register("shell", "Start a shell session in the app container", handleShell)
}

func handleCmd(ctx *cmdregistry.Context) error {
	return ctx.Compose.ExecInService(ctx.Context(), ctx.Config.Services.App, ctx.Args...)
}

func handleManage(ctx *cmdregistry.Context) error {
	// Static files must be collected before the test runner starts.
	if len(ctx.Args) > 0 && ctx.Args[0] == "test" {
		if err := ctx.Call("cmd", "python3", "manage.py", "collectstatic", "--no-input"); err != nil {
			return err
		}
	}
	return ctx.Call("cmd", append([]string{"python3", "manage.py"}, ctx.Args...)...)
}

func handleTest(ctx *cmdregistry.Context) error {
	return ctx.Call("manage", append([]string{"test"}, ctx.Args...)...)
}

func handleShell(ctx *cmdregistry.Context) error {
	return ctx.Call("cmd", append([]string{"bash"}, ctx.Args...)...)
}
