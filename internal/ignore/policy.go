package ignore

import (
	"github.com/bethropolis/consolidate/internal/utils"
)

// New builds a Policy. Without options it applies only the hidden-entry
// rule and DefaultBuiltinPatterns.
func New(opts ...Option) *Policy {
	s := settings{logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(&s)
	}

	p := &Policy{logger: s.logger}

	switch {
	case s.builtin != nil:
		p.builtin = s.builtin
	case s.builtinLines != nil:
		p.builtin = Compile(s.builtinLines)
	default:
		p.builtin = Compile(DefaultBuiltinPatterns)
	}

	switch {
	case s.workspace != nil:
		p.workspace = s.workspace
	case len(s.workspaceLines) > 0:
		p.workspace = Compile(s.workspaceLines)
	}

	p.logger.Debug("ignore.New: %d built-in rules, %d workspace rules", p.builtin.Len(), p.workspace.Len())
	for _, w := range p.Warnings() {
		p.logger.Debug("ignore.New: skipping malformed rule: %v", w)
	}
	return p
}

// NewFromConfig creates a Policy from a Config struct
func NewFromConfig(cfg Config) *Policy {
	options := []Option{WithWorkspaceRules(cfg.WorkspaceRules)}
	if cfg.BuiltinRules != nil {
		options = append(options, WithBuiltinRules(cfg.BuiltinRules))
	}
	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}
	return New(options...)
}

// ForSelection returns the policy applied inside a folder the caller picked
// explicitly: the hidden-entry rule and built-in excludes stay, workspace
// rules are dropped. The compiled matchers are shared, not copied.
func (p *Policy) ForSelection() *Policy {
	if p == nil {
		return New()
	}
	return New(WithBuiltinMatcher(p.builtin), WithLogger(p.logger))
}

// HasWorkspaceRules reports whether workspace rules take part in decisions.
func (p *Policy) HasWorkspaceRules() bool {
	return p != nil && p.workspace.Len() > 0
}

// Warnings lists every malformed rule, built-in ones first.
func (p *Policy) Warnings() []PatternError {
	if p == nil {
		return nil
	}
	return append(p.builtin.Warnings(), p.workspace.Warnings()...)
}

// Evaluate decides whether entry is included under mode and why not.
// The hidden-entry rule, the built-in excludes and the workspace rules are
// independent checks; any one of them excludes the entry.
func (p *Policy) Evaluate(entry Entry, mode Mode) Decision {
	if mode == Unfiltered || p == nil {
		return Decision{Include: true}
	}

	rel := entry.RelativePath
	if rel == "" || rel == "." {
		return Decision{Include: true} // never ignore the root itself
	}

	if entry.Hidden() {
		p.log().Debug("ignore.Evaluate: %q excluded (hidden)", rel)
		return Decision{Reason: ReasonHidden}
	}
	if p.builtin.Matches(rel, entry.IsDir) {
		p.log().Debug("ignore.Evaluate: %q excluded (built-in)", rel)
		return Decision{Reason: ReasonBuiltin}
	}
	if p.workspace.Matches(rel, entry.IsDir) {
		p.log().Debug("ignore.Evaluate: %q excluded (ignore rule)", rel)
		return Decision{Reason: ReasonWorkspace}
	}
	return Decision{Include: true}
}

// ShouldInclude is Evaluate without the reason.
func (p *Policy) ShouldInclude(entry Entry, mode Mode) bool {
	return p.Evaluate(entry, mode).Include
}

func (p *Policy) log() utils.Logger {
	if p.logger == nil {
		return utils.NoopLogger{}
	}
	return p.logger
}
