// Package cmdregistry defines the task table used by the CLI entrypoint. It
// maps flat task names ("lint", "format:imports") to handlers that accept a
// shared Context, remembers registration order for the help listing, and
// lets one task run another in-process through Context.Call.
package cmdregistry
