package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is a line-level comparison between existing and regenerated output.
type Diff struct {
	Added   int
	Removed int
	Missing bool // the output file does not exist yet
	Text    string
}

// Changed reports whether the two versions differ.
func (d Diff) Changed() bool {
	return d.Missing || d.Added > 0 || d.Removed > 0
}

// Check compares data with the file at path without writing it. The
// returned error wraps ErrOutputChanged when they differ.
func Check(path string, data []byte) (Diff, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		d := Diff{Missing: true, Added: countLines(string(data))}
		return d, fmt.Errorf("%w: '%s' does not exist", ErrOutputChanged, path)
	}
	if err != nil {
		return Diff{}, fmt.Errorf("output: reading '%s': %w", path, err)
	}

	d := Compare(string(existing), string(data))
	if d.Changed() {
		return d, fmt.Errorf("%w: '%s' (+%d -%d lines)", ErrOutputChanged, path, d.Added, d.Removed)
	}
	return d, nil
}

// Compare diffs two texts line by line. Unchanged lines are omitted from
// Text; added lines are prefixed with "+ " and removed lines with "- ".
func Compare(oldText, newText string) Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var d Diff
	var sb strings.Builder
	for _, diff := range diffs {
		var prefix string
		var paint func(format string, a ...interface{}) string
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+ ", color.GreenString
			d.Added += countLines(diff.Text)
		case diffmatchpatch.DiffDelete:
			prefix, paint = "- ", color.RedString
			d.Removed += countLines(diff.Text)
		default:
			continue
		}
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(paint("%s%s", prefix, strings.TrimSuffix(line, "\n")))
			sb.WriteByte('\n')
		}
	}
	d.Text = sb.String()
	return d
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
