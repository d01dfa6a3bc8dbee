package app

import (
	"strings"
	"testing"

	"devkit/cli/devctl/internal/execx"
	"devkit/cli/devctl/internal/testutil"
)

func TestCmdExecsInAppService(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, "cmd", "ls", "-la"); err != nil {
		t.Fatal(err)
	}
	lines := env.Rec.Lines()
	if len(lines) != 1 || lines[0] != "docker compose exec -T web ls -la" {
		t.Fatalf("lines=%v", lines)
	}
}

func TestTestCollectsStaticFirst(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, "test", "-k", "users"); err != nil {
		t.Fatal(err)
	}
	lines := env.Rec.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines=%v", lines)
	}
	if !strings.HasSuffix(lines[0], "web python3 manage.py collectstatic --no-input") {
		t.Fatalf("first=%q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "web python3 manage.py test -k users") {
		t.Fatalf("second=%q", lines[1])
	}
}

func TestManageStopsWhenCollectstaticFails(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	env.Rec.FailWhen(testutil.Contains("collectstatic"), 4)
	err := env.Run(t, "manage", "test")
	if execx.StatusCode(err) != 4 {
		t.Fatalf("status=%d err=%v", execx.StatusCode(err), err)
	}
	if len(env.Rec.Cmds) != 1 {
		t.Fatalf("test run must not start after collectstatic failed: %v", env.Rec.Lines())
	}
}

func TestManageWithoutTestSkipsCollectstatic(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, "manage", "migrate"); err != nil {
		t.Fatal(err)
	}
	if lines := env.Rec.Lines(); len(lines) != 1 || !strings.HasSuffix(lines[0], "manage.py migrate") {
		t.Fatalf("lines=%v", lines)
	}
}

func TestShell(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	if err := env.Run(t, "shell"); err != nil {
		t.Fatal(err)
	}
	if lines := env.Rec.Lines(); len(lines) != 1 || !strings.HasSuffix(lines[0], "-T web bash") {
		t.Fatalf("lines=%v", lines)
	}
}
