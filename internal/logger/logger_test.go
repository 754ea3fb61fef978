package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, verbose bool) *Logger {
	l := New(buf, verbose, false)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	fixedLogger(&buf, false).Warn("skipping %s", "a.log")

	want := "[03:04:05.006 WARN] skipping a.log\n"
	if buf.String() != want {
		t.Errorf("got %q; want %q", buf.String(), want)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		info  bool
		warn  bool
		err   bool
	}{
		{"debug", true, true, true, true},
		{"info", false, true, true, true},
		{"warn", false, false, true, true},
		{"error", false, false, false, true},
		{"none", false, false, false, false},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		l := fixedLogger(&buf, false)
		if err := l.SetLevel(tt.level); err != nil {
			t.Fatalf("SetLevel(%q): %v", tt.level, err)
		}
		l.Debug("d")
		l.Info("i")
		l.Warn("w")
		l.Error("e")

		out := buf.String()
		checks := map[string]bool{"DEBUG": tt.debug, "INFO": tt.info, "WARN": tt.warn, "ERROR": tt.err}
		for label, want := range checks {
			if got := strings.Contains(out, label+"]"); got != want {
				t.Errorf("level %s: %s printed = %v; want %v", tt.level, label, got, want)
			}
		}
	}
}

func TestParseLevelUnknown(t *testing.T) {
	level, err := ParseLevel("chatty")
	if err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if level != LevelInfo {
		t.Errorf("unknown level should fall back to INFO, got %v", level)
	}
}

func TestVerboseConstructor(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, true)
	if !l.Verbose() {
		t.Fatal("verbose logger should report Verbose() == true")
	}
	l.Debug("hello")
	if !strings.Contains(buf.String(), "DEBUG] hello") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}
