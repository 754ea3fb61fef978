package ignore

import "testing"

func TestMatcherMatches(t *testing.T) {
	tests := []struct {
		name  string
		rules []string
		path  string
		isDir bool
		want  bool
	}{
		{"directory rule matches directory", []string{"node_modules/"}, "node_modules", true, true},
		{"directory rule hides files below", []string{"node_modules/"}, "node_modules/x.js", false, true},
		{"directory rule skips plain files", []string{"out/"}, "out", false, false},
		{"unanchored glob at depth", []string{"*.tmp"}, "a/b/c.tmp", false, true},
		{"unanchored glob no match", []string{"*.tmp"}, "a/b/c.go", false, false},
		{"anchored rule at root", []string{"/build"}, "build", true, true},
		{"anchored rule not nested", []string{"/build"}, "src/build", true, false},
		{"negation re-includes", []string{"*.txt", "!keep.txt"}, "keep.txt", false, false},
		{"negation leaves others excluded", []string{"*.txt", "!keep.txt"}, "other.txt", false, true},
		{"last rule wins", []string{"!keep.txt", "*.txt"}, "keep.txt", false, true},
		{"negation inside excluded dir is impossible", []string{"build/", "!build/keep.txt"}, "build/keep.txt", false, true},
		{"no rules", nil, "anything", false, false},
		{"root is never matched", []string{"*"}, ".", true, false},
	}

	for _, tt := range tests {
		m := Compile(tt.rules)
		if got := m.Matches(tt.path, tt.isDir); got != tt.want {
			t.Errorf("%s: Matches(%q, %v) with %q = %v; want %v", tt.name, tt.path, tt.isDir, tt.rules, got, tt.want)
		}
	}
}

func TestMatcherMatchesPath(t *testing.T) {
	m := Compile([]string{"dist/"})
	if !m.MatchesPath("dist/") {
		t.Error("trailing slash should be treated as a directory")
	}
	if m.MatchesPath("dist") {
		t.Error("a file named dist must not match a directory-only rule")
	}
}

func TestCompileSkipsCommentsAndBlanks(t *testing.T) {
	m := Compile([]string{"# comment", "", "   ", "\r", "*.bak"})
	if m.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", m.Len())
	}
	if !m.Matches("x.bak", false) {
		t.Error("rule after comments should still apply")
	}
}

func TestCompileHandlesCRLF(t *testing.T) {
	m := Compile([]string{"*.bak\r", "vendor/\r"})
	if !m.Matches("a.bak", false) || !m.Matches("vendor", true) {
		t.Error("carriage returns should be stripped from rule lines")
	}
}

func TestCompileKeepsGoingAfterOddLines(t *testing.T) {
	m := Compile([]string{"***", "[", "*.tmp"})
	if !m.Matches("x.tmp", false) {
		t.Error("later rules should still compile after unusual lines")
	}
	for _, w := range m.Warnings() {
		if w.Line < 1 {
			t.Errorf("warning without a line number: %v", w)
		}
	}
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	if m.Matches("a", false) || m.Len() != 0 || m.Warnings() != nil {
		t.Error("nil matcher should match nothing")
	}
}
