package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestMultiLogger(t *testing.T) {
	verbose := &bytes.Buffer{}
	quiet := &bytes.Buffer{}

	m := NewMultiLogger(
		NewConsoleLogger(verbose, "debug"),
		nil,
		NewConsoleLogger(quiet, "warn"),
	)

	m.LogDebug("walk detail")
	m.LogWarn("history unavailable")

	if !strings.Contains(verbose.String(), "walk detail") {
		t.Error("expected debug message in verbose logger")
	}
	if strings.Contains(quiet.String(), "walk detail") {
		t.Error("expected debug message filtered from quiet logger")
	}
	for name, buf := range map[string]*bytes.Buffer{"verbose": verbose, "quiet": quiet} {
		if !strings.Contains(buf.String(), "history unavailable") {
			t.Errorf("expected warning in %s logger", name)
		}
	}
}

func TestMultiLogger_Empty(t *testing.T) {
	m := NewMultiLogger()
	m.LogTrace("x")
	m.LogInfo("x")
	m.LogError("x")
}
