// Package environ answers two questions about the invocation environment:
// whether child commands may ask for a pseudo-terminal, and which variables
// the project's dotenv file provides.
package environ

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

// ErrEnvFileMissing reports a required dotenv file that does not exist.
var ErrEnvFileMissing = errors.New("environment file missing")

// IsTerminal reports whether f is attached to a terminal device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ParseTTY interprets the TTY override variable. forced is false when the
// value does not pin interactivity either way.
func ParseTTY(v string) (interactive bool, forced bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "-t", "0", "false", "no", "off":
		return false, true
	case "1", "true", "yes", "on":
		return true, true
	default:
		return false, false
	}
}

// Interactive decides whether container commands get a pseudo-terminal.
// An explicit TTY override wins; otherwise stdout must be a terminal.
func Interactive(stdout *os.File, ttyEnv string) bool {
	if v, forced := ParseTTY(ttyEnv); forced {
		return v
	}
	return IsTerminal(stdout)
}

// LoadFile parses KEY=VALUE lines. Comments and blank lines are skipped and a
// repeated key keeps its last value.
func LoadFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrEnvFileMissing, path)
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return env, nil
}

// EnsureFile creates path from example when path does not exist yet. An
// existing path is never touched. Both missing is ErrEnvFileMissing.
func EnsureFile(path, example string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(example)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s (no template at %s)", ErrEnvFileMissing, path, example)
		}
		return false, fmt.Errorf("read %s: %w", example, err)
	}
	perm := fs.FileMode(0o644)
	if st, err := os.Stat(example); err == nil {
		perm = st.Mode().Perm()
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", path, err)
	}
	return true, nil
}
