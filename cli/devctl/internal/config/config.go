package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Compose selects how docker compose is invoked.
type Compose struct {
	// Binary is split on whitespace, e.g. "docker compose" or "podman-compose".
	Binary string `yaml:"binary" toml:"binary"`
	// Engine runs one-off containers outside the project (linters).
	Engine  string   `yaml:"engine" toml:"engine"`
	Files   []string `yaml:"files" toml:"files"`
	Project string   `yaml:"project" toml:"project"`
}

// Services names the compose services tasks run in.
type Services struct {
	App      string `yaml:"app" toml:"app"`
	Assets   string `yaml:"assets" toml:"assets"`
	Database string `yaml:"database" toml:"database"`
	Cache    string `yaml:"cache" toml:"cache"`
}

// Env locates the dotenv file and the template it is created from.
type Env struct {
	File    string `yaml:"file" toml:"file"`
	Example string `yaml:"example" toml:"example"`
}

// Readiness bounds the database readiness poll in ci:test.
type Readiness struct {
	Attempts int    `yaml:"attempts" toml:"attempts"`
	Interval string `yaml:"interval" toml:"interval"`
}

// Lint holds the inputs of the lint:* tasks.
type Lint struct {
	Dockerfile     string   `yaml:"dockerfile" toml:"dockerfile"`
	HadolintConfig string   `yaml:"hadolint_config" toml:"hadolint_config"`
	HadolintImage  string   `yaml:"hadolint_image" toml:"hadolint_image"`
	ShellcheckImg  string   `yaml:"shellcheck_image" toml:"shellcheck_image"`
	ShellExcludes  []string `yaml:"shell_excludes" toml:"shell_excludes"`
}

// Clean lists generated paths (globs allowed) and placeholder files to recreate.
type Clean struct {
	Paths []string `yaml:"paths" toml:"paths"`
	Keep  []string `yaml:"keep" toml:"keep"`
}

// Runtime is resolved from flags and the environment only.
type Runtime struct {
	Mode     string
	TTY      string
	DryRun   bool
	Debug    bool
	LogLevel string
}

type Config struct {
	Compose   Compose   `yaml:"compose" toml:"compose"`
	Services  Services  `yaml:"services" toml:"services"`
	Env       Env       `yaml:"env" toml:"env"`
	Readiness Readiness `yaml:"readiness" toml:"readiness"`
	Lint      Lint      `yaml:"lint" toml:"lint"`
	Clean     Clean     `yaml:"clean" toml:"clean"`
	Docs      string    `yaml:"docs" toml:"docs"`

	Runtime Runtime `yaml:"-" toml:"-"`
}

// FileNames are probed in order when no explicit config path is given.
var FileNames = []string{"devctl.yaml", "devctl.yml", "devctl.toml"}

// Load resolves the config file, decodes it over the defaults, applies
// environment overrides and validates the result. It returns the path that
// was read ("" when running on defaults). An explicit path (argument or
// DEVCTL_CONFIG) must exist.
func Load(explicit, dir string, getenv func(string) string) (Config, string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	path, required := strings.TrimSpace(explicit), true
	if path == "" {
		path = strings.TrimSpace(getenv("DEVCTL_CONFIG"))
	}
	if path == "" {
		required = false
		path = findFile(dir)
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if !required && errors.Is(err, fs.ErrNotExist) {
				path = ""
			} else {
				return cfg, path, err
			}
		}
	}
	if err := cfg.normalize(); err != nil {
		return cfg, path, err
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

func findFile(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv reads the runtime overrides: DC, TTY, DEVCTL_DRY_RUN,
// DEVCTL_DEBUG and DEVCTL_LOG_LEVEL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("DC")); v != "" {
		c.Runtime.Mode = v
	}
	c.Runtime.TTY = getenv("TTY")
	if isTruthy(getenv("DEVCTL_DRY_RUN")) {
		c.Runtime.DryRun = true
	}
	if isTruthy(getenv("DEVCTL_DEBUG")) {
		c.Runtime.Debug = true
	}
	if v := strings.TrimSpace(getenv("DEVCTL_LOG_LEVEL")); v != "" {
		c.Runtime.LogLevel = v
	}
}

// BinaryArgs splits Compose.Binary into argv form.
func (c Config) BinaryArgs() []string {
	return strings.Fields(c.Compose.Binary)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
