package ignore

import "github.com/bethropolis/consolidate/internal/utils"

// Option functions for configuration
type Option func(*settings)

type settings struct {
	workspaceLines []string
	workspace      *Matcher
	builtinLines   []string
	builtin        *Matcher
	logger         utils.Logger
}

// WithWorkspaceRules supplies the raw lines of the workspace ignore source.
func WithWorkspaceRules(lines []string) Option {
	return func(s *settings) {
		s.workspaceLines = append([]string(nil), lines...)
		s.workspace = nil
	}
}

// WithWorkspaceMatcher reuses an already compiled workspace Matcher.
func WithWorkspaceMatcher(m *Matcher) Option {
	return func(s *settings) {
		s.workspace = m
		s.workspaceLines = nil
	}
}

// WithBuiltinRules replaces DefaultBuiltinPatterns.
func WithBuiltinRules(lines []string) Option {
	return func(s *settings) {
		s.builtinLines = append([]string{}, lines...)
		s.builtin = nil
	}
}

// WithBuiltinMatcher reuses an already compiled built-in Matcher.
func WithBuiltinMatcher(m *Matcher) Option {
	return func(s *settings) {
		s.builtin = m
		s.builtinLines = nil
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
