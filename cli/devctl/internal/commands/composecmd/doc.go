// Package composecmd covers the compose lifecycle tasks: up, down, build,
// restart, ps and logs. Extra arguments are passed through to compose.
package composecmd
