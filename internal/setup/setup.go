// Package setup turns resolved configuration into an ignore policy and
// aggregator options.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/consolidate/internal/aggregate"
	"github.com/bethropolis/consolidate/internal/ignore"
	"github.com/bethropolis/consolidate/internal/utils"
	"github.com/bethropolis/consolidate/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// AggregatorConfig holds all parameters needed to configure an aggregation
type AggregatorConfig struct {
	Workspace     string
	IgnoreFile    string // relative to Workspace unless absolute; "" disables it
	CustomIgnore  string // comma-separated, appended after the ignore file
	MaxFileSize   int64 // bytes, 0 = no limit
	MaxDepth      int
	ShowProgress  bool
	Progress      io.Writer // status line destination, stderr when nil
	Context       context.Context
	Quiet         bool
	Logger        utils.Logger
}

// ConfigureAggregator builds the workspace policy and the aggregator options
// described by cfg.
func ConfigureAggregator(cfg AggregatorConfig, infoLog InfoLogger) (
	*ignore.Policy,
	[]aggregate.Option,
	error,
) {
	log := cfg.Logger
	if log == nil {
		log = utils.NoopLogger{}
	}
	if infoLog == nil {
		infoLog = func(string, ...interface{}) {}
	}

	workspace, err := filepath.Abs(cfg.Workspace)
	if err != nil {
		return nil, nil, fmt.Errorf("setup: invalid workspace '%s': %w", cfg.Workspace, err)
	}

	// --- Workspace rules: ignore file, then custom patterns ---
	var rules []string
	if cfg.IgnoreFile != "" {
		path := cfg.IgnoreFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(workspace, path)
		}
		lines, err := ReadIgnoreFile(path)
		if err != nil {
			return nil, nil, err
		}
		if lines == nil {
			log.Debug("No ignore file at %s", path)
		} else {
			infoLog("Using ignore file: %s", path)
		}
		rules = append(rules, lines...)
	}

	if custom := SplitPatterns(cfg.CustomIgnore); len(custom) > 0 {
		infoLog("Using custom ignore patterns: %v", custom)
		rules = append(rules, custom...)
	}

	policy := ignore.NewFromConfig(ignore.Config{
		WorkspaceRules: rules,
		Logger:         log,
	})
	if !policy.HasWorkspaceRules() {
		log.Debug("No workspace ignore rules; only hidden entries and built-ins are excluded")
	}

	// --- Aggregator options ---
	opts := []aggregate.Option{
		aggregate.WithBase(workspace),
		aggregate.WithLogger(log),
	}
	if cfg.Context != nil {
		opts = append(opts, aggregate.WithContext(cfg.Context))
	}

	if cfg.MaxFileSize > 0 {
		opts = append(opts, aggregate.WithMaxFileSize(cfg.MaxFileSize))
		infoLog("Ignoring files larger than %d bytes.", cfg.MaxFileSize)
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, aggregate.WithMaxDepth(cfg.MaxDepth))
		infoLog("Descending at most %d levels.", cfg.MaxDepth)
	}

	if cfg.ShowProgress && !cfg.Quiet {
		log.Debug("Progress display enabled")
		out := cfg.Progress
		if out == nil {
			out = os.Stderr
		}
		opts = append(opts, aggregate.WithProgress(ProgressPrinter(out)))
	}

	return policy, opts, nil
}

// ReadIgnoreFile returns the lines of an ignore file. A missing file is not
// an error and yields nil.
func ReadIgnoreFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("setup: reading ignore file '%s': %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

// SplitPatterns splits a comma-separated pattern list, dropping blanks.
func SplitPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// ProgressPrinter returns a walker progress callback that redraws a single
// status line on out.
func ProgressPrinter(out io.Writer) walker.ProgressCallback {
	return func(stats walker.ProgressStats) {
		var statusLine string

		if stats.CurrentFilePath != "" {
			// Truncate the path if it's too long
			path := stats.CurrentFilePath
			if len(path) > 40 {
				path = "..." + path[len(path)-37:]
			}

			statusLine = fmt.Sprintf("\rProcessing: %-40s | Files: %d/%d | Dirs: %d",
				path,
				stats.AcceptedFiles,
				stats.TotalFiles,
				stats.TotalDirs)
		} else {
			statusLine = fmt.Sprintf("\rScanning... | Files: %d/%d | Dirs: %d",
				stats.AcceptedFiles,
				stats.TotalFiles,
				stats.TotalDirs)
		}

		// Print with carriage return to overwrite previous line
		fmt.Fprint(out, statusLine)
	}
}
