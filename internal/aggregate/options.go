package aggregate

import (
	"context"
	"path/filepath"

	"github.com/bethropolis/consolidate/internal/utils"
	"github.com/bethropolis/consolidate/internal/walker"
)

type options struct {
	base        string
	logger      utils.Logger
	ctx         context.Context
	maxFileSize int64
	maxDepth    int
	progress    walker.ProgressCallback
}

// Option configures an Aggregator.
type Option func(*options)

// WithBase sets the directory header paths are made relative to, normally
// the workspace root. Without it, whole trees are relative to themselves and
// explicit entries to their parent directory.
func WithBase(dir string) Option {
	return func(o *options) {
		if dir == "" {
			o.base = ""
			return
		}
		if abs, err := filepath.Abs(dir); err == nil {
			o.base = abs
		} else {
			o.base = dir
		}
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContext lets a caller abandon pathologically large walks.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithMaxFileSize skips files larger than maxBytes (0 = no limit).
func WithMaxFileSize(maxBytes int64) Option {
	return func(o *options) {
		o.maxFileSize = maxBytes
	}
}

// WithMaxDepth limits how deep directory roots are walked (0 = no limit).
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithProgress forwards walker progress to fn.
func WithProgress(fn walker.ProgressCallback) Option {
	return func(o *options) {
		o.progress = fn
	}
}
