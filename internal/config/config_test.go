package config

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/bethropolis/consolidate/internal/logger"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	c := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := parse(t)
	if c.Workspace != "." || c.IgnoreFile != DefaultIgnoreFile || c.Format != "plain" {
		t.Errorf("defaults = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Level() != logger.LevelInfo {
		t.Errorf("Level() = %v", c.Level())
	}
}

func TestFlags(t *testing.T) {
	c := parse(t, "--workspace", "/ws", "-o", "out.txt", "--format", "json", "--max-size", "2",
		"--ignore", "dist/,*.tmp", "--tree", "--check")
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Workspace != "/ws" || c.OutputFile != "out.txt" || c.Format != "json" {
		t.Errorf("parsed = %+v", c)
	}
	if c.MaxFileSizeBytes() != 2*1024*1024 {
		t.Errorf("MaxFileSizeBytes() = %d", c.MaxFileSizeBytes())
	}
	if c.CustomIgnore != "dist/,*.tmp" || !c.ShowTree || !c.Check {
		t.Errorf("parsed = %+v", c)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"--format", "xml"}},
		{"bad level", []string{"--log-level", "loud"}},
		{"negative size", []string{"--max-size", "-1"}},
		{"negative depth", []string{"--max-depth", "-3"}},
		{"check without output", []string{"--check"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := parse(t, tt.args...).Validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		args []string
		want logger.LogLevel
	}{
		{[]string{"--verbose"}, logger.LevelDebug},
		{[]string{"--quiet"}, logger.LevelWarn},
		{[]string{"--verbose", "--log-level", "error"}, logger.LevelError},
		{[]string{"--log-level", "none"}, logger.LevelNone},
	}
	for _, tt := range tests {
		if got := parse(t, tt.args...).Level(); got != tt.want {
			t.Errorf("%v: Level() = %v; want %v", tt.args, got, tt.want)
		}
	}
}

func TestNoColor(t *testing.T) {
	c := parse(t, "--no-color")
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.UseColors {
		t.Error("--no-color must disable colors")
	}
}
