package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// PatternError describes an ignore rule that could not be compiled.
// The rule is dropped; compilation carries on with the remaining lines.
type PatternError struct {
	Line    int // 1-based line in the supplied rule set
	Pattern string
	Err     error
}

func (e PatternError) Error() string {
	return fmt.Sprintf("ignore: line %d %q: %v", e.Line, e.Pattern, e.Err)
}

func (e PatternError) Unwrap() error { return e.Err }

// Matcher evaluates gitignore-style rules against relative paths.
// The last matching rule wins; a path below an excluded directory is
// excluded no matter what later negations say.
type Matcher struct {
	rules    gitignore.GitIgnore
	count    int
	warnings []PatternError
}

// Compile turns raw ignore-file lines into a Matcher. Blank lines and
// comments are skipped, malformed lines are recorded in Warnings.
func Compile(lines []string) *Matcher {
	m := &Matcher{}

	cleaned := make([]string, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		cleaned[i] = line
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			m.count++
		}
	}
	if m.count == 0 {
		return m
	}

	failed := make(map[int]bool)
	onError := func(e gitignore.Error) bool {
		line := e.Position().Line
		if failed[line] {
			return true
		}
		failed[line] = true
		pattern := ""
		if line >= 1 && line <= len(cleaned) {
			pattern = cleaned[line-1]
		}
		m.warnings = append(m.warnings, PatternError{Line: line, Pattern: pattern, Err: e.Underlying()})
		m.count--
		return true // keep parsing
	}

	// The base only matters for absolute lookups, which are never used here.
	base, err := filepath.Abs(".")
	if err != nil {
		base = string(filepath.Separator)
	}
	m.rules = gitignore.New(strings.NewReader(strings.Join(cleaned, "\n")), base, onError)
	return m
}

// Len returns the number of rules that compiled successfully.
func (m *Matcher) Len() int {
	if m == nil || m.rules == nil {
		return 0
	}
	return m.count
}

// Warnings returns the rules that were skipped during compilation.
func (m *Matcher) Warnings() []PatternError {
	if m == nil {
		return nil
	}
	return append([]PatternError(nil), m.warnings...)
}

// Matches reports whether relativePath is excluded by the rules.
// Every ancestor directory is checked first: once a directory is excluded,
// nothing inside it can be re-included.
func (m *Matcher) Matches(relativePath string, isDir bool) bool {
	if m == nil || m.rules == nil {
		return false
	}

	p := strings.Trim(filepath.ToSlash(relativePath), "/")
	if p == "" || p == "." {
		return false // never ignore the root itself
	}

	parts := strings.Split(p, "/")
	for i := 1; i < len(parts); i++ {
		if m.excluded(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return m.excluded(p, isDir)
}

// MatchesPath is Matches with the directory flag taken from a trailing slash.
func (m *Matcher) MatchesPath(relativePath string) bool {
	slashed := filepath.ToSlash(relativePath)
	return m.Matches(slashed, strings.HasSuffix(slashed, "/"))
}

func (m *Matcher) excluded(p string, isDir bool) (ignored bool) {
	// A panic inside the library is treated as no match.
	defer func() {
		if r := recover(); r != nil {
			ignored = false
		}
	}()

	match := m.rules.Relative(p, isDir)
	return match != nil && match.Ignore()
}
