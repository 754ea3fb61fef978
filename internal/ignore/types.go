// Package ignore provides file/directory pattern matching for exclusion
package ignore

import (
	"path"
	"strings"

	"github.com/bethropolis/consolidate/internal/utils"
)

// Mode selects how strictly an entry is filtered.
type Mode int

const (
	// Filtered applies the hidden-entry rule, the built-in excludes and the
	// workspace ignore rules.
	Filtered Mode = iota
	// Unfiltered includes the entry unconditionally. It is used for entries the
	// caller named directly.
	Unfiltered
)

func (m Mode) String() string {
	switch m {
	case Filtered:
		return "filtered"
	case Unfiltered:
		return "unfiltered"
	default:
		return "unknown"
	}
}

// Entry is one filesystem object as seen by the policy.
type Entry struct {
	Path         string // absolute path
	RelativePath string // slash-separated, relative to the walk root
	IsDir        bool
}

// Name returns the final element of the entry's path.
func (e Entry) Name() string {
	if e.RelativePath != "" {
		return path.Base(strings.TrimSuffix(e.RelativePath, "/"))
	}
	return path.Base(strings.ReplaceAll(e.Path, "\\", "/"))
}

// Hidden reports whether the entry's own name starts with a dot.
func (e Entry) Hidden() bool {
	return utils.IsHiddenName(e.Name())
}

// Reason explains why the policy excluded an entry.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonHidden    Reason = "hidden"
	ReasonBuiltin   Reason = "built-in exclude"
	ReasonWorkspace Reason = "ignore rule"
)

// Decision is the outcome of evaluating one entry.
type Decision struct {
	Include bool
	Reason  Reason
}

// Policy decides whether an entry takes part in an aggregation.
// It is read-only once built and may be shared between walks.
type Policy struct {
	workspace *Matcher // nil when no workspace rules apply
	builtin   *Matcher
	logger    utils.Logger
}

// Config holds the ignore sources for NewFromConfig.
type Config struct {
	WorkspaceRules []string // raw lines of the workspace ignore file plus extra patterns
	BuiltinRules   []string // nil selects DefaultBuiltinPatterns
	Logger         utils.Logger
}
