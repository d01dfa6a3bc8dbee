package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/execx"
	"devkit/cli/devctl/internal/tableview"
)

// Swapped in tests.
var (
	capture  = execx.Capture
	lookPath = exec.LookPath
)

const (
	statusOK      = "ok"
	statusMissing = "missing"
	statusWarn    = "warn"
)

type check struct {
	name     string
	status   string
	detail   string
	required bool
}

// Register adds the preflight command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("preflight", "Check host tools and project files", handle)
}

func handle(ctx *cmdregistry.Context) error {
	checks := []check{
		probe(ctx.Context(), "engine", true, ctx.Config.Compose.Engine, "version", "--format", "{{.Server.Version}}"),
		probe(ctx.Context(), "compose", true, append(ctx.Config.BinaryArgs(), "version", "--short")...),
		shellcheck(),
		envFile(ctx),
	}

	rows := make([][]string, 0, len(checks))
	failed := 0
	for _, c := range checks {
		rows = append(rows, []string{c.name, c.status, c.detail})
		if c.required && c.status != statusOK {
			failed++
		}
	}
	fmt.Fprintln(ctx.Stdout, tableview.Boxed([]string{"check", "status", "detail"}, rows, nil))
	if failed > 0 {
		return fmt.Errorf("preflight: %d required check(s) failed", failed)
	}
	return nil
}

func probe(ctx context.Context, name string, required bool, argv ...string) check {
	c := check{name: name, required: required}
	if len(argv) == 0 || argv[0] == "" {
		c.status, c.detail = statusMissing, "not configured"
		return c
	}
	out, res := capture(ctx, argv[0], argv[1:]...)
	switch {
	case res.Err == nil:
		c.status, c.detail = statusOK, firstLine(out)
	default:
		var se *execx.SetupError
		if errors.As(res.Err, &se) {
			c.status = statusMissing
		} else {
			c.status = statusWarn
		}
		c.detail = fmt.Sprintf("%s (exit %d)", strings.Join(argv, " "), res.Code)
	}
	return c
}

func shellcheck() check {
	c := check{name: "shellcheck"}
	path, err := lookPath("shellcheck")
	if err != nil {
		c.status, c.detail = statusWarn, "not on PATH, lint:shell will use a container"
		return c
	}
	c.status, c.detail = statusOK, path
	return c
}

func envFile(ctx *cmdregistry.Context) check {
	c := check{name: "env file", required: true}
	file, example := ctx.Config.Env.File, ctx.Config.Env.Example
	switch {
	case exists(ctx.Path(file)):
		c.status, c.detail = statusOK, file
	case exists(ctx.Path(example)):
		c.status, c.detail = statusWarn, fmt.Sprintf("%s missing, ci:test will copy %s", file, example)
		c.required = false
	default:
		c.status, c.detail = statusMissing, fmt.Sprintf("neither %s nor %s found", file, example)
	}
	return c
}

func exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
