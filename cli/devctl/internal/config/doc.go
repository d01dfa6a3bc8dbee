// Package config loads the optional per-project devctl settings.
//
// Settings come from devctl.yaml, devctl.yml or devctl.toml in the working
// directory (or the file named by DEVCTL_CONFIG / --config), layered over
// built-in defaults that match the usual web/js/postgres/redis compose
// project. A handful of environment variables (DC, TTY, DEVCTL_*) override
// the runtime knobs last.
package config
