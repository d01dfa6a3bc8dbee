package servicecmd

import (
	"testing"

	"devkit/cli/devctl/internal/testutil"
)

func TestExecPassthrough(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, TaskExec, "js", "yarn", "lint"); err != nil {
		t.Fatal(err)
	}
	if got := env.Rec.Lines(); len(got) != 1 || got[0] != "docker compose exec -T js yarn lint" {
		t.Fatalf("lines=%v", got)
	}
}

func TestRunOncePassthrough(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, TaskRunOnce, "web", "uv", "lock"); err != nil {
		t.Fatal(err)
	}
	if got := env.Rec.Lines(); len(got) != 1 || got[0] != "docker compose run -T --no-deps --rm web uv lock" {
		t.Fatalf("lines=%v", got)
	}
}

func TestExecModeRunFromConfig(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Config.Runtime.Mode = "run"
	Register(env.Registry)
	if err := env.Run(t, TaskExec, "web", "true"); err != nil {
		t.Fatal(err)
	}
	if got := env.Rec.Lines(); len(got) != 1 || got[0] != "docker compose run -T web true" {
		t.Fatalf("lines=%v", got)
	}
}

func TestMissingService(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, TaskRunOnce); err == nil {
		t.Fatal("expected usage error")
	}
	if len(env.Rec.Cmds) != 0 {
		t.Fatalf("lines=%v", env.Rec.Lines())
	}
}

func TestInternalNamesHiddenFromHelp(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if pub := env.Registry.Public(); len(pub) != 0 {
		t.Fatalf("public=%v", pub)
	}
}
