package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/compose"
	"devkit/cli/devctl/internal/config"
	"devkit/cli/devctl/internal/dispatch"
	"devkit/cli/devctl/internal/environ"
	"devkit/cli/devctl/internal/logging"
	"devkit/cli/devctl/internal/runner"
)

type globalFlags struct {
	dryRun     bool
	debug      bool
	help       bool
	configPath string
}

// newRootCommand wires the single root command. Global flags are only
// recognised before the task name; everything after it belongs to the task.
func newRootCommand(code *int) *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "devctl [flags] <task> [args...]",
		Short:         "Project task runner for the docker compose development stack",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := runTask(cmd, g, args)
			*code = c
			return err
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			var names []string
			for _, d := range buildRegistry(cmd.Root()).Public() {
				names = append(names, d.Name+"\t"+d.Summary)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
	}
	root.Flags().SetInterspersed(false)
	root.Flags().BoolVar(&g.dryRun, "dry-run", false, "Print commands instead of running them")
	root.Flags().BoolVar(&g.debug, "debug", false, "Log every command at debug level")
	root.Flags().StringVar(&g.configPath, "config", "", "Configuration file path (devctl.yaml or devctl.toml)")
	root.Flags().BoolVarP(&g.help, "help", "h", false, "List tasks")
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		h := g
		h.help = true
		c, err := runTask(cmd, h, nil)
		if err != nil {
			cmd.PrintErrln(err)
			if c == 0 {
				c = 1
			}
		}
		*code = c
	})
	return root
}

// runTask loads configuration, builds the task context and dispatches.
// The returned error is only set when no task ran.
func runTask(cmd *cobra.Command, g globalFlags, args []string) (int, error) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	wd, err := os.Getwd()
	if err != nil {
		return 1, err
	}
	cfg, path, err := config.Load(g.configPath, wd, os.Getenv)
	if err != nil {
		return 1, err
	}
	if g.dryRun {
		cfg.Runtime.DryRun = true
	}
	if g.debug {
		cfg.Runtime.Debug = true
	}
	level := cfg.Runtime.LogLevel
	if cfg.Runtime.Debug {
		level = "debug"
	}
	logger := logging.New(level, stderr)
	logger.WithField("path", path).Debug("configuration loaded")

	mode, err := compose.ParseMode(cfg.Runtime.Mode)
	if err != nil {
		return 1, err
	}
	exec := runner.New(cfg.Runtime.DryRun, stderr, logger)
	wrapper := &compose.Wrapper{
		Binary:      cfg.BinaryArgs(),
		Files:       cfg.Compose.Files,
		Project:     cfg.Compose.Project,
		Mode:        mode,
		Interactive: environ.Interactive(os.Stdout, cfg.Runtime.TTY),
		Exec:        exec,
	}
	base := cmdregistry.Context{
		Program: filepath.Base(os.Args[0]),
		Dir:     wd,
		Config:  cfg,
		Compose: wrapper,
		Exec:    exec,
		Stdout:  stdout,
		Stderr:  stderr,
		Log:     logger,
	}
	if g.help {
		args = []string{dispatch.HelpTask}
	}
	d := dispatch.New(buildRegistry(cmd.Root()), base, stderr, logger)
	return d.Dispatch(context.Background(), args), nil
}

// execute runs the CLI with args and returns the process exit status.
// Flag errors exit 2.
func execute(args []string, stdout, stderr io.Writer) int {
	code := 0
	root := newRootCommand(&code)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		root.PrintErrln(err)
		if code == 0 {
			code = 2
		}
	}
	return code
}
