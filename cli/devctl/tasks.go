package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/commands/app"
	"devkit/cli/devctl/internal/commands/assets"
	"devkit/cli/devctl/internal/commands/ci"
	"devkit/cli/devctl/internal/commands/clean"
	composecmd "devkit/cli/devctl/internal/commands/composecmd"
	"devkit/cli/devctl/internal/commands/db"
	"devkit/cli/devctl/internal/commands/deps"
	"devkit/cli/devctl/internal/commands/help"
	preflightcmd "devkit/cli/devctl/internal/commands/preflight"
	"devkit/cli/devctl/internal/commands/quality"
	"devkit/cli/devctl/internal/commands/servicecmd"
)

// buildRegistry registers every task. Order is the order help lists them in.
func buildRegistry(root *cobra.Command) *cmdregistry.Registry {
	r := cmdregistry.New()
	servicecmd.Register(r)
	app.Register(r)
	quality.Register(r)
	db.Register(r)
	deps.Register(r)
	assets.Register(r)
	clean.Register(r)
	composecmd.Register(r)
	preflightcmd.Register(r)
	ci.Register(r)
	r.Register("completion", "Print a shell completion script (bash, zsh, fish, powershell)", completionTask(root))
	help.Register(r)
	return r
}

func completionTask(root *cobra.Command) cmdregistry.Handler {
	return func(ctx *cmdregistry.Context) error {
		shell := "bash"
		if len(ctx.Args) > 0 {
			shell = ctx.Args[0]
		}
		switch shell {
		case "bash":
			return root.GenBashCompletionV2(ctx.Stdout, true)
		case "zsh":
			return root.GenZshCompletion(ctx.Stdout)
		case "fish":
			return root.GenFishCompletion(ctx.Stdout, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(ctx.Stdout)
		}
		return fmt.Errorf("completion: unsupported shell %q", shell)
	}
}
