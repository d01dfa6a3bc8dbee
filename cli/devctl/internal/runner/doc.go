// Package runner sits between task bodies and the process layer.
//
// Tasks talk to an Executor rather than to execx directly. The production
// Runner adds dry-run tracing and debug logging; tests substitute a recorder.
package runner
