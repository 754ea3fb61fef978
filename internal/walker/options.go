package walker

import (
	"context"
	"strings"

	"github.com/bethropolis/consolidate/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger     utils.Logger
	Context    context.Context
	MaxDepth   int              // 0 = unlimited
	ProgressFn ProgressCallback // called after every entry
	RelPrefix  string           // prepended to paths handed to the policy
}

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles      int64  // Total files seen
	AcceptedFiles   int64  // Files handed to the visit function
	SkippedFiles    int64  // Files that were skipped for any reason
	TotalDirs       int64  // Total directories seen
	SkippedDirs     int64  // Directories that were skipped
	CurrentFilePath string // Path of the entry just evaluated (relative)
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:  utils.NoopLogger{},
		Context: context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithMaxDepth stops descending below depth levels under the root.
// Files directly inside the root are at depth 1.
func WithMaxDepth(depth int) Option {
	return func(opts *WalkOptions) {
		if depth >= 0 {
			opts.MaxDepth = depth
		}
	}
}

// WithRelPrefix sets the slash path of the walk root relative to the
// directory the ignore rules belong to. Paths given to the policy are
// joined onto it; visited and skipped paths stay relative to the walk root.
func WithRelPrefix(prefix string) Option {
	return func(opts *WalkOptions) {
		opts.RelPrefix = strings.Trim(prefix, "/")
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}
