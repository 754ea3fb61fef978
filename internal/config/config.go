package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/bethropolis/consolidate/internal/logger"
	"github.com/bethropolis/consolidate/internal/printer"
)

// DefaultIgnoreFile is the workspace ignore file read when none is given.
const DefaultIgnoreFile = ".gitignore"

// Config holds all application configuration settings
type Config struct {
	// Workspace settings
	Workspace    string
	IgnoreFile   string
	CustomIgnore string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Processing settings
	MaxFileSizeMB int64
	MaxDepth      int
	ShowProgress  bool
	Timeout       time.Duration

	// Output settings
	OutputFile string
	Format     string
	ShowTree   bool
	Check      bool
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Workspace:  ".",
		IgnoreFile: DefaultIgnoreFile,
		Format:     string(printer.FormatPlain),
	}
}

// BindFlags registers the configuration flags on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Workspace, "workspace", c.Workspace, "Workspace root; header paths are relative to it")
	fs.StringVar(&c.IgnoreFile, "ignore-file", c.IgnoreFile, "Workspace ignore file, relative to the workspace (gitignore syntax)")
	fs.StringVar(&c.CustomIgnore, "ignore", c.CustomIgnore, "Extra ignore patterns (comma-separated, gitignore syntax)")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Enable verbose logging (DEBUG, WARN, ERROR)")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "Suppress INFO messages (only show WARN, ERROR)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Set the logging level (DEBUG, INFO, WARN, ERROR, NONE)")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable color output")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", c.ShowSkipped, "Show a list of skipped files/directories and reasons at the end")
	fs.Int64Var(&c.MaxFileSizeMB, "max-size", c.MaxFileSizeMB, "Max file size to include in MB (0 = no limit)")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "Max directory depth to descend (0 = no limit)")
	fs.BoolVar(&c.ShowProgress, "progress", c.ShowProgress, "Show progress information")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum execution time (e.g., '30s', '5m')")
	fs.StringVarP(&c.OutputFile, "output", "o", c.OutputFile, "Write to file instead of stdout (relative to the workspace)")
	fs.StringVar(&c.Format, "format", c.Format, "Output format: plain, markdown or json")
	fs.BoolVar(&c.ShowTree, "tree", c.ShowTree, "Print a tree of the included files to stderr")
	fs.BoolVar(&c.Check, "check", c.Check, "Compare with the existing output file instead of writing it")
}

// Validate checks flag combinations and fills in derived settings.
func (c *Config) Validate() error {
	if _, err := printer.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.MaxFileSizeMB < 0 {
		return fmt.Errorf("config: --max-size must not be negative (got %d)", c.MaxFileSizeMB)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: --max-depth must not be negative (got %d)", c.MaxDepth)
	}
	if c.Check && c.OutputFile == "" {
		return fmt.Errorf("config: --check needs an output file (-o)")
	}
	if c.Workspace == "" {
		c.Workspace = "."
	}

	// Determine if colors should be used
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
	return nil
}

// MaxFileSizeBytes converts the MB limit to bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// Level resolves the effective log level. An explicit --log-level wins over
// --verbose and --quiet.
func (c *Config) Level() logger.LogLevel {
	if c.LogLevel != "" {
		level, _ := logger.ParseLevel(c.LogLevel)
		return level
	}
	switch {
	case c.Verbose:
		return logger.LevelDebug
	case c.Quiet:
		return logger.LevelWarn
	default:
		return logger.LevelInfo
	}
}
