// Package aggregate turns roots (whole trees, explicit picks and open
// documents) into one ordered text document with per-file headers.
package aggregate

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/consolidate/internal/ignore"
)

// Kind tags the variant of a Root.
type Kind int

const (
	// WholeTree walks a directory with the full filtered policy.
	WholeTree Kind = iota
	// ExplicitEntry is a file or directory the caller picked directly.
	ExplicitEntry
	// OpenDocument carries content that is already in memory.
	OpenDocument
)

func (k Kind) String() string {
	switch k {
	case WholeTree:
		return "whole-tree"
	case ExplicitEntry:
		return "explicit"
	case OpenDocument:
		return "document"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Root is one starting point for an aggregation.
type Root struct {
	Kind    Kind
	Path    string
	Content string // OpenDocument only
}

// TreeRoot returns a WholeTree root.
func TreeRoot(path string) Root {
	return Root{Kind: WholeTree, Path: path}
}

// ExplicitRoot returns an ExplicitEntry root.
func ExplicitRoot(path string) Root {
	return Root{Kind: ExplicitEntry, Path: path}
}

// DocumentRoot returns an OpenDocument root; content is used instead of reading path.
func DocumentRoot(path, content string) Root {
	return Root{Kind: OpenDocument, Path: path, Content: content}
}

// Mode is the policy mode for the root entry itself. Only whole trees are
// filtered; anything the caller names directly is included as is.
func (r Root) Mode() ignore.Mode {
	if r.Kind == WholeTree {
		return ignore.Filtered
	}
	return ignore.Unfiltered
}

// Resolved is a Root bound to an absolute path.
type Resolved struct {
	Root
	Abs string
}

// Resolve makes the root's path absolute.
func (r Root) Resolve() (Resolved, error) {
	if r.Path == "" {
		return Resolved{}, fmt.Errorf("aggregate: %s root has an empty path", r.Kind)
	}
	abs, err := filepath.Abs(r.Path)
	if err != nil {
		return Resolved{}, fmt.Errorf("aggregate: resolve %q: %w", r.Path, err)
	}
	return Resolved{Root: r, Abs: abs}, nil
}
