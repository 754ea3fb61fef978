package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestFormatBlock(t *testing.T) {
	got := FormatBlock("public/script.js", "console.log(1)")
	want := "--- public/script.js ---\nconsole.log(1)\n\n"
	if got != want {
		t.Errorf("FormatBlock = %q; want %q", got, want)
	}
}

func TestPrintPlainMatchesBlocks(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf)
	p.PrintFile("a.txt", "A")
	p.PrintFile("b/c.txt", "C\n")
	if err := p.Finalize(); err != nil {
		t.Fatal(err)
	}

	want := FormatBlock("a.txt", "A") + FormatBlock("b/c.txt", "C\n")
	if buf.String() != want {
		t.Errorf("plain output = %q; want %q", buf.String(), want)
	}
	if p.GetCount() != 2 {
		t.Errorf("count = %d", p.GetCount())
	}
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatMarkdown)
	p.PrintFile("a.go", "package a")

	want := "file: a.go\n\n```\npackage a\n```\n\n"
	if buf.String() != want {
		t.Errorf("markdown = %q; want %q", buf.String(), want)
	}
}

func TestPrintJSON(t *testing.T) {
	tests := []struct {
		name  string
		files [][2]string
	}{
		{"empty", nil},
		{"one", [][2]string{{"a.txt", "A"}}},
		{"two", [][2]string{{"a.txt", "A"}, {"b.txt", "line\n\"quoted\""}}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		p := New().WithOutput(&buf).WithFormat(FormatJSON)
		for _, f := range tt.files {
			p.PrintFile(f[0], f[1])
		}
		if err := p.Finalize(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}

		var entries []JSONFileEntry
		if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
			t.Fatalf("%s: invalid JSON %q: %v", tt.name, buf.String(), err)
		}
		if len(entries) != len(tt.files) {
			t.Fatalf("%s: got %d entries", tt.name, len(entries))
		}
		for i, f := range tt.files {
			if entries[i].Path != f[0] || entries[i].Content != f[1] {
				t.Errorf("%s: entry %d = %+v", tt.name, i, entries[i])
			}
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintStopsOnWriteError(t *testing.T) {
	p := New().WithOutput(failingWriter{})
	p.PrintFile("a", "x")
	p.PrintFile("b", "y")
	if err := p.Finalize(); err == nil {
		t.Fatal("expected the write error")
	}
	if p.GetCount() != 1 {
		t.Errorf("printer kept going after an error: count=%d", p.GetCount())
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"", "plain", "markdown", "json"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml should be rejected")
	}
}
