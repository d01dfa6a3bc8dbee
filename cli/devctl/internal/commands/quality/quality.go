// Package quality registers the lint and format tasks plus the quality
// aggregate that runs all of them.
package quality

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/execx"
	"devkit/cli/devctl/internal/runner"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Register adds lint:*, format:* and quality to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("lint:dockerfile", "Lint Dockerfile", handleLintDockerfile)
	r.Register("lint:shell", "Lint shell scripts", handleLintShell)
	r.Register("lint", "Lint Python code", handleLint)
	r.Register("format:imports", "Sort Python imports", handleFormatImports)
	r.Register("format", "Format Python code", handleFormat)
	r.Register("quality", "Perform all code quality commands together", handleQuality)
}

func handleLintDockerfile(ctx *cmdregistry.Context) error {
	lint := ctx.Config.Lint
	dockerfile := ctx.Path(lint.Dockerfile)
	data, err := os.ReadFile(dockerfile)
	if err != nil {
		return fmt.Errorf("lint:dockerfile: %w", err)
	}
	argv := []string{ctx.Config.Compose.Engine, "container", "run", "--rm", "-i"}
	if cfgPath := ctx.Path(lint.HadolintConfig); fileExists(cfgPath) {
		abs, err := filepath.Abs(cfgPath)
		if err != nil {
			return err
		}
		argv = append(argv, "-v", abs+":/.config/hadolint.yaml")
	}
	argv = append(argv, lint.HadolintImage, "hadolint")
	argv = append(argv, ctx.Args...)
	argv = append(argv, "-")
	return ctx.Exec.Run(ctx.Context(), execx.Cmd{Argv: argv, Stdin: bytes.NewReader(data)})
}

func handleLintShell(ctx *cmdregistry.Context) error {
	root := ctx.Dir
	if root == "" {
		root = "."
	}
	scripts, err := FindShellScripts(root, ctx.Config.Lint.ShellExcludes)
	if err != nil {
		return fmt.Errorf("lint:shell: %w", err)
	}
	if len(scripts) == 0 {
		ctx.Log.Info("lint:shell: no shell scripts found")
		return nil
	}
	var argv []string
	if _, err := lookPath("shellcheck"); err == nil {
		argv = []string{"shellcheck"}
	} else {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		argv = []string{ctx.Config.Compose.Engine, "container", "run", "--rm", "-i", "-v", abs + ":/mnt", ctx.Config.Lint.ShellcheckImg}
	}
	argv = append(argv, ctx.Args...)
	argv = append(argv, scripts...)
	return runner.Host(ctx.Context(), ctx.Exec, ctx.Dir, argv[0], argv[1:]...)
}

func handleLint(ctx *cmdregistry.Context) error {
	return ctx.Call("cmd", append([]string{"ruff", "check"}, ctx.Args...)...)
}

func handleFormatImports(ctx *cmdregistry.Context) error {
	return ctx.Call("lint", append([]string{"--select", "I", "--fix"}, ctx.Args...)...)
}

func handleFormat(ctx *cmdregistry.Context) error {
	return ctx.Call("cmd", append([]string{"ruff", "format", "."}, ctx.Args...)...)
}

func handleQuality(ctx *cmdregistry.Context) error {
	return cmdregistry.Steps(
		func() error { return ctx.Call("lint:dockerfile") },
		func() error { return ctx.Call("lint:shell") },
		func() error { return ctx.Call("lint") },
		func() error { return ctx.Call("format:imports") },
		func() error { return ctx.Call("format") },
	)
}

// FindShellScripts walks root and returns "./"-prefixed paths of regular
// files whose first line is a shell shebang. Directories named in excludes
// (by base name or by path relative to root) are skipped.
func FindShellScripts(root string, excludes []string) ([]string, error) {
	skip := make(map[string]bool, len(excludes))
	for _, e := range excludes {
		skip[filepath.Clean(e)] = true
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && (skip[rel] || skip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, err := hasShellShebang(path)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, "./"+filepath.ToSlash(rel))
		}
		return nil
	})
	return out, err
}

func hasShellShebang(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "#!") && strings.Contains(line, "sh"), nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
