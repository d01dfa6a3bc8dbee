package clean

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"devkit/cli/devctl/internal/testutil"
)

func seed(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestTargets(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, "public/app.js", "public/.keep", "public/js/a.js", ".ruff_cache/x", "src/main.py")
	got, err := Targets(dir, []string{"public/*.*", "public/js", ".ruff_cache", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".ruff_cache", filepath.Join("public", "app.js"), filepath.Join("public", "js")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCleanRemovesAndRecreatesKeep(t *testing.T) {
	env := testutil.NewEnv(t)
	Register(env.Registry)
	seed(t, env.Dir, "public/app.js", "public/css/app.css", "public_collected/admin/x.css", ".coverage", "manage.py")

	if err := env.Run(t, "clean"); err != nil {
		t.Fatal(err)
	}
	for _, gone := range []string{"public/app.js", "public/css", "public_collected/admin", ".coverage"} {
		if exists(filepath.Join(env.Dir, gone)) {
			t.Fatalf("%s still exists", gone)
		}
	}
	for _, kept := range []string{"manage.py", "public/.keep", "public_collected/.keep"} {
		if !exists(filepath.Join(env.Dir, kept)) {
			t.Fatalf("%s missing", kept)
		}
	}
	if len(env.Rec.Cmds) != 0 {
		t.Fatalf("clean must not spawn processes: %v", env.Rec.Lines())
	}
}

func TestCleanDryRun(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Config.Runtime.DryRun = true
	env.Config.Clean.Paths = []string{".coverage"}
	env.Config.Clean.Keep = []string{"public/.keep"}
	Register(env.Registry)
	seed(t, env.Dir, ".coverage")

	if err := env.Run(t, "clean"); err != nil {
		t.Fatal(err)
	}
	if !exists(filepath.Join(env.Dir, ".coverage")) {
		t.Fatal("dry run removed a file")
	}
	if exists(filepath.Join(env.Dir, "public", ".keep")) {
		t.Fatal("dry run created a file")
	}
	if got := env.Stderr.String(); got != "+ rm -rf .coverage\n+ touch public/.keep\n" {
		t.Fatalf("stderr=%q", got)
	}
}
