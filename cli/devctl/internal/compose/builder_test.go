package compose

import (
	"context"
	"strings"
	"testing"

	"devkit/cli/devctl/internal/execx"
)

type recordExec struct{ cmds []execx.Cmd }

func (r *recordExec) Run(_ context.Context, c execx.Cmd) error {
	r.cmds = append(r.cmds, c)
	return nil
}

func joined(args []string) string { return strings.Join(args, " ") }

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeExec, "exec": ModeExec, "RUN": ModeRun} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q)=%q,%v", in, got, err)
		}
	}
	if _, err := ParseMode("start"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestExecArgsInteractive(t *testing.T) {
	w := &Wrapper{Interactive: true}
	got := joined(w.ExecArgs("web", []string{"bash"}, nil))
	if got != "docker compose exec web bash" {
		t.Fatalf("argv=%q", got)
	}
}

func TestExecArgsNonInteractiveDisablesTTY(t *testing.T) {
	w := &Wrapper{Interactive: false}
	got := joined(w.ExecArgs("web", []string{"ruff", "check"}, nil))
	if got != "docker compose exec -T web ruff check" {
		t.Fatalf("argv=%q", got)
	}
}

func TestExecArgsNeverStartsService(t *testing.T) {
	for _, interactive := range []bool{true, false} {
		w := &Wrapper{Interactive: interactive}
		for _, a := range w.ExecArgs("web", []string{"ls"}, nil) {
			if a == "up" || a == "start" || a == "run" {
				t.Fatalf("exec argv starts the service: %v", w.ExecArgs("web", []string{"ls"}, nil))
			}
		}
	}
}

func TestExecArgsModeEnvFilesProject(t *testing.T) {
	w := &Wrapper{
		Binary:  []string{"podman", "compose"},
		Files:   []string{"compose.yaml", " ", "compose.ci.yaml"},
		Project: "shop",
		Mode:    ModeRun,
	}
	got := joined(w.ExecArgs("postgres", []string{"psql", "-c", "SELECT 1"}, map[string]string{"PGPASSWORD": "pw", "A": "1"}))
	want := "podman compose -p shop -f compose.yaml -f compose.ci.yaml run -T -e A=1 -e PGPASSWORD=pw postgres psql -c SELECT 1"
	if got != want {
		t.Fatalf("argv=%q\nwant=%q", got, want)
	}
}

func TestRunOnceArgsSkipsDependencies(t *testing.T) {
	w := &Wrapper{Interactive: true}
	got := joined(w.RunOnceArgs("js", []string{"yarn", "install"}))
	if got != "docker compose run --no-deps --rm js yarn install" {
		t.Fatalf("argv=%q", got)
	}
	w.Interactive = false
	got = joined(w.RunOnceArgs("web", []string{"uv", "tree"}))
	if got != "docker compose run -T --no-deps --rm web uv tree" {
		t.Fatalf("argv=%q", got)
	}
}

func TestRunOnceIgnoresExecMode(t *testing.T) {
	w := &Wrapper{Mode: ModeExec, Interactive: true}
	args := w.RunOnceArgs("js", []string{"yarn", "outdated"})
	if args[2] != "run" {
		t.Fatalf("argv=%v", args)
	}
}

func TestWrapperDelegatesToExecutor(t *testing.T) {
	rec := &recordExec{}
	w := &Wrapper{Exec: rec, Interactive: true}
	ctx := context.Background()
	if err := w.ExecInService(ctx, "redis", "redis-cli"); err != nil {
		t.Fatal(err)
	}
	if err := w.RunOnceInService(ctx, "js", "yarn", "outdated"); err != nil {
		t.Fatal(err)
	}
	if err := w.Compose(ctx, "up", "-d"); err != nil {
		t.Fatal(err)
	}
	if len(rec.cmds) != 3 {
		t.Fatalf("cmds=%v", rec.cmds)
	}
	if got := rec.cmds[2].String(); got != "docker compose up -d" {
		t.Fatalf("compose argv=%q", got)
	}
	if err := w.ExecInService(ctx, " ", "ls"); err == nil {
		t.Fatal("expected error for empty service")
	}
	if len(rec.cmds) != 3 {
		t.Fatalf("empty service must not run anything")
	}
}

func TestNonInteractiveCopy(t *testing.T) {
	w := &Wrapper{Interactive: true}
	ni := w.NonInteractive()
	if ni.Interactive || !w.Interactive {
		t.Fatalf("NonInteractive must not mutate the receiver")
	}
}
