// Package walker handles directory traversal
package walker

import "github.com/bethropolis/consolidate/internal/ignore"

// VisitFunc is called once per accepted file, in directory-listing order.
// relativePath is slash-separated and relative to the walk root.
type VisitFunc func(relativePath, absolutePath string)

// SkippedReason clarifies why a file/directory was not processed.
type SkippedReason string

const (
	ReasonIgnoredHidden     SkippedReason = "Ignored (Hidden Rule)"
	ReasonIgnoredBuiltin    SkippedReason = "Ignored (Built-in Exclude)"
	ReasonIgnoredRule       SkippedReason = "Ignored (Ignore Rule)"
	ReasonSkippedSizeLimit  SkippedReason = "Skipped (Size Limit Exceeded)"
	ReasonSkippedNotRegular SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedNonText    SkippedReason = "Skipped (Not UTF-8 Text)"
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedReadError  SkippedReason = "Skipped (Read Error)"
	ReasonSkippedInfoError  SkippedReason = "Skipped (File Info Error)"
	ReasonSkippedPathError  SkippedReason = "Skipped (Path Calculation Error)"
	ReasonSkippedCycle      SkippedReason = "Skipped (Directory Already Visited)"
	ReasonSkippedDepth      SkippedReason = "Skipped (Depth Limit Reached)"
)

// ReasonFor maps a policy decision onto a skip reason.
func ReasonFor(r ignore.Reason) SkippedReason {
	switch r {
	case ignore.ReasonHidden:
		return ReasonIgnoredHidden
	case ignore.ReasonBuiltin:
		return ReasonIgnoredBuiltin
	default:
		return ReasonIgnoredRule
	}
}

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
	Err    error         `json:"-"` // set when the entry could not be read
}

// Failed reports whether the item was skipped because of an I/O problem
// rather than a filtering decision.
func (s SkippedItem) Failed() bool {
	return s.Err != nil
}

// SkippedTracker collects skipped items in the order they were met.
// A walk is single-threaded, so no locking is done.
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// TrackError adds an item that failed with err.
func (st *SkippedTracker) TrackError(path string, reason SkippedReason, isDir bool, err error) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir, Err: err})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	return st.items
}
