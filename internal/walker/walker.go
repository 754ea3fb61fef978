package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/bethropolis/consolidate/internal/ignore"
)

// walk carries the state of one traversal.
type walk struct {
	policy  *ignore.Policy
	visit   VisitFunc
	options WalkOptions
	tracker *SkippedTracker
	visited map[string]struct{} // real paths of directories already listed
	stats   ProgressStats
}

// Walk traverses the directory tree starting from rootDir, depth first, and
// calls visit for every file the policy accepts in Filtered mode. Entries are
// visited in os.ReadDir order, which is sorted by file name.
//
// Unreadable entries never stop the walk; they are returned as skipped items
// carrying the error. The returned error is non-nil only for an invalid root
// or a cancelled context.
func Walk(rootDir string, policy *ignore.Policy, visit VisitFunc, opts ...Option) ([]SkippedItem, error) {
	startTime := time.Now()

	// Apply options
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	// Get absolute path for the root directory
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return []SkippedItem{{Path: rootDir, Reason: ReasonSkippedPathError, IsDir: true, Err: err}},
			fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}

	info, err := os.Stat(absRootDir)
	if err != nil {
		return []SkippedItem{{Path: ".", Reason: ErrorReason(err), IsDir: true, Err: err}}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: '%s' is not a directory", absRootDir)
	}

	w := &walk{
		policy:  policy,
		visit:   visit,
		options: options,
		tracker: NewSkippedTracker(16),
		visited: make(map[string]struct{}),
	}

	options.Logger.Debug("walker.Walk started. Root: %s", absRootDir)
	walkErr := w.dir(absRootDir, "", 0)
	options.Logger.Debug("Walker: Total walk time: %s (%d accepted, %d skipped)",
		time.Since(startTime), w.stats.AcceptedFiles, len(w.tracker.Items()))

	return w.tracker.Items(), walkErr
}

// dir lists one directory and handles its entries. relDir is "" for the root.
func (w *walk) dir(absDir, relDir string, depth int) error {
	realDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		w.skipDir(relDir, ReasonSkippedPathError, err)
		return nil
	}
	if _, seen := w.visited[realDir]; seen {
		w.options.Logger.Debug("Walker: %q resolves to already visited %q, skipping", relDir, realDir)
		w.skipDir(relDir, ReasonSkippedCycle, nil)
		return nil
	}
	w.visited[realDir] = struct{}{}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		// ReadDir hands back whatever it read before failing; keep going with that.
		w.options.Logger.Warn("Walker: cannot list %q: %v", displayPath(relDir), err)
		w.tracker.TrackError(displayPath(relDir), ErrorReason(err), true, err)
	}

	for _, de := range entries {
		if err := w.options.Context.Err(); err != nil {
			return err
		}

		absPath := filepath.Join(absDir, de.Name())
		relPath := path.Join(relDir, de.Name())

		// Stat follows symbolic links so a link is treated as what it points to.
		info, err := os.Stat(absPath)
		if err != nil {
			w.options.Logger.Warn("Walker: cannot stat %q: %v", relPath, err)
			w.tracker.TrackError(relPath, ErrorReason(err), false, err)
			w.stats.TotalFiles++
			w.stats.SkippedFiles++
			w.progress(relPath)
			continue
		}
		isDir := info.IsDir()
		if isDir {
			w.stats.TotalDirs++
		} else {
			w.stats.TotalFiles++
		}

		policyPath := path.Join(w.options.RelPrefix, relPath)
		decision := w.policy.Evaluate(ignore.Entry{Path: absPath, RelativePath: policyPath, IsDir: isDir}, ignore.Filtered)
		if !decision.Include {
			w.options.Logger.Debug("Walker: Ignored %q (%s)", relPath, decision.Reason)
			w.skip(relPath, ReasonFor(decision.Reason), isDir)
			w.progress(relPath)
			continue
		}

		if isDir {
			w.progress(relPath)
			if w.options.MaxDepth > 0 && depth+1 >= w.options.MaxDepth {
				w.skipDir(relPath, ReasonSkippedDepth, nil)
				continue
			}
			w.options.Logger.Debug("Walker: Descending into directory %q", relPath)
			if err := w.dir(absPath, relPath, depth+1); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			w.skip(relPath, ReasonSkippedNotRegular, false)
			w.progress(relPath)
			continue
		}

		w.stats.AcceptedFiles++
		w.progress(relPath)
		w.visit(relPath, absPath)
	}
	return nil
}

func (w *walk) skip(relPath string, reason SkippedReason, isDir bool) {
	w.tracker.Track(relPath, reason, isDir)
	if isDir {
		w.stats.SkippedDirs++
	} else {
		w.stats.SkippedFiles++
	}
}

func (w *walk) skipDir(relPath string, reason SkippedReason, err error) {
	w.tracker.TrackError(displayPath(relPath), reason, true, err)
	w.stats.SkippedDirs++
}

func (w *walk) progress(current string) {
	if w.options.ProgressFn == nil {
		return
	}
	stats := w.stats
	stats.CurrentFilePath = current
	w.options.ProgressFn(stats)
}

// ErrorReason picks the skip reason for a failed stat, list or read.
func ErrorReason(err error) SkippedReason {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return ReasonSkippedPermError
	case errors.Is(err, fs.ErrNotExist):
		return ReasonSkippedInfoError
	default:
		return ReasonSkippedReadError
	}
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
