// Package compose builds docker compose argument vectors for running commands
// inside project services and hands them to a runner.Executor.
//
// Two shapes matter: exec into an already running service, and a disposable
// run that skips the service's dependencies and removes the container after.
package compose
