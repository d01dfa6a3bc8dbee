// Package logging builds the logrus logger shared by the CLI and its tasks.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultLevel keeps routine runs quiet; task output is the tools' own output.
const DefaultLevel = log.WarnLevel

// New returns a logger writing text records to w. Unknown level names fall
// back to DefaultLevel.
func New(level string, w io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel converts a level name such as "debug" or "INFO".
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}
