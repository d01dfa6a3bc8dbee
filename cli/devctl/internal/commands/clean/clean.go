// Package clean registers the task that removes generated files.
package clean

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"devkit/cli/devctl/internal/cmdregistry"
)

func Register(r *cmdregistry.Registry) {
	r.Register("clean", "Remove cache and other machine generates files", handleClean)
}

func handleClean(ctx *cmdregistry.Context) error {
	targets, err := Targets(ctx.Dir, ctx.Config.Clean.Paths)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	dry := ctx.Config.Runtime.DryRun
	if dry && len(targets) > 0 {
		fmt.Fprintf(ctx.Stderr, "+ rm -rf %s\n", strings.Join(targets, " "))
	}
	for _, t := range targets {
		if dry {
			continue
		}
		ctx.Log.WithField("path", t).Debug("removing")
		if err := os.RemoveAll(ctx.Path(t)); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}
	for _, keep := range ctx.Config.Clean.Keep {
		if dry {
			fmt.Fprintf(ctx.Stderr, "+ touch %s\n", keep)
			continue
		}
		if err := touch(ctx.Path(keep)); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}
	return nil
}

// Targets expands patterns relative to dir and returns the matches relative
// to dir, sorted and deduplicated. Like a shell glob, a wildcard does not
// match a leading dot unless the pattern itself starts with one.
func Targets(dir string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range patterns {
		p = filepath.Clean(p)
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		hiddenOK := strings.HasPrefix(filepath.Base(p), ".")
		for _, m := range matches {
			if !hiddenOK && strings.HasPrefix(filepath.Base(m), ".") {
				continue
			}
			rel, err := filepath.Rel(dir, m)
			if err != nil {
				return nil, err
			}
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
