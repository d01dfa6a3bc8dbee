package logging

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != log.DebugLevel {
		t.Fatalf("debug -> %v", got)
	}
	if got := ParseLevel(" INFO "); got != log.InfoLevel {
		t.Fatalf("INFO -> %v", got)
	}
	if got := ParseLevel("chatty"); got != DefaultLevel {
		t.Fatalf("unknown -> %v", got)
	}
	if got := ParseLevel(""); got != DefaultLevel {
		t.Fatalf("empty -> %v", got)
	}
}

func TestNewWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf)
	l.WithField("task", "lint").Info("task completed")
	out := buf.String()
	if !strings.Contains(out, "task=lint") || !strings.Contains(out, "task completed") {
		t.Fatalf("unexpected log output %q", out)
	}
	buf.Reset()
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}
}
