// Package assets registers the front-end build tasks. They run on the host
// of whoever invokes them, normally inside the assets container through its
// package.json scripts, with paths relative to the project directory.
package assets

import (
	"fmt"
	"os"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/runner"
)

const (
	jsOutDir  = "../public/js"
	cssOutDir = "../public/css"
)

// getenv is swapped in tests.
var getenv = os.Getenv

func Register(r *cmdregistry.Registry) {
	r.Register("yarn:build:js", "Build JS assets, this is meant to be run from within the assets container", handleBuildJS)
	r.Register("yarn:build:css", "Build CSS assets, this is meant to be run from within the assets container", handleBuildCSS)
}

func handleBuildJS(ctx *cmdregistry.Context) error {
	if err := mkdir(ctx, jsOutDir); err != nil {
		return err
	}
	args := append([]string{"esbuild.config.mjs"}, ctx.Args...)
	return runner.Host(ctx.Context(), ctx.Exec, ctx.Dir, "node", args...)
}

func handleBuildCSS(ctx *cmdregistry.Context) error {
	if err := mkdir(ctx, cssOutDir); err != nil {
		return err
	}
	mode := "--watch"
	if getenv("NODE_ENV") == "production" {
		mode = "--minify"
	}
	args := append([]string{"-i", "css/app.css", "-o", cssOutDir + "/app.css", mode}, ctx.Args...)
	return runner.HostEnv(ctx.Context(), ctx.Exec, ctx.Dir, map[string]string{"DEBUG": "0"}, "tailwindcss", args...)
}

func mkdir(ctx *cmdregistry.Context, dir string) error {
	if ctx.Config.Runtime.DryRun {
		fmt.Fprintf(ctx.Stderr, "+ mkdir -p %s\n", dir)
		return nil
	}
	if err := os.MkdirAll(ctx.Path(dir), 0o755); err != nil {
		return fmt.Errorf("%s: %w", ctx.Task, err)
	}
	return nil
}
