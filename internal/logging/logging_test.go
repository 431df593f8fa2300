package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "test"})
	l.sink.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return l, &buf
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if result := ParseLevel(tt.input); result != tt.expected {
			t.Errorf("ParseLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}

	if !ValidLevel("warn") || ValidLevel("loud") {
		t.Error("unexpected ValidLevel result")
	}
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.Info("range %d-%d", 38, 52)

	want := "2026-01-02T03:04:05.000 [INFO] test: range 38-52\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	if strings.Count(buf.String(), "shown") != 2 || strings.Contains(buf.String(), "hidden") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if l.Enabled(LevelInfo) {
		t.Error("expected info to be disabled")
	}
}

func TestLoggerFieldsSorted(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	child := l.WithComponent("stack").WithFields(map[string]any{"b": 2, "a": 1})
	child.Debug("hello")

	if !strings.HasSuffix(buf.String(), "hello {a=1, b=2, component=stack}\n") {
		t.Errorf("unexpected fields in %q", buf.String())
	}

	buf.Reset()
	l.Debug("parent")
	if strings.Contains(buf.String(), "component") {
		t.Error("WithField must not modify the parent logger")
	}
}

func TestLoggerChildSharesLevel(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	child := l.WithComponent("x")

	l.SetLevel(LevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected child to follow parent level, got %q", buf.String())
	}
	if child.Level() != LevelError {
		t.Errorf("expected level error, got %v", child.Level())
	}
}

func TestLoggerDisable(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.Disable()
	l.Error("hidden")
	l.Enable()
	l.Error("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	l.WithComponent("x").Info("nothing")

	var nilLogger *Logger
	nilLogger.Info("nil loggers are ignored")
}
