package aggregate

import (
	"errors"
	"fmt"

	"github.com/bethropolis/consolidate/internal/walker"
)

// ErrNoRootsProvided is returned when there is nothing to aggregate.
var ErrNoRootsProvided = errors.New("aggregate: no roots provided")

// WarningKind classifies a recoverable problem.
type WarningKind string

const (
	UnreadableEntry  WarningKind = "unreadable entry"
	NonTextContent   WarningKind = "non-text content"
	MalformedPattern WarningKind = "malformed pattern"
)

// Warning is a per-entry problem that was skipped and reported.
type Warning struct {
	Kind WarningKind
	Path string
	Err  error
}

func (w Warning) Error() string {
	if w.Err == nil {
		return fmt.Sprintf("%s: %s", w.Kind, w.Path)
	}
	return fmt.Sprintf("%s: %s: %v", w.Kind, w.Path, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Summary reports what an aggregation included and left out.
type Summary struct {
	Included int
	Excluded int                  // files (not directories) that were skipped
	Skipped  []walker.SkippedItem // every skipped entry, in the order met
	Warnings []Warning
}

func (s *Summary) skip(item walker.SkippedItem) {
	s.Skipped = append(s.Skipped, item)
	if !item.IsDir {
		s.Excluded++
	}
	if item.Failed() {
		kind := UnreadableEntry
		if item.Reason == walker.ReasonSkippedNonText {
			kind = NonTextContent
		}
		s.Warnings = append(s.Warnings, Warning{Kind: kind, Path: item.Path, Err: item.Err})
	}
}
