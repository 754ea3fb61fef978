package aggregate

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/consolidate/internal/printer"
)

// Record is one included file.
type Record struct {
	Path    string
	Content string
}

// Document is the aggregated output: the records in visit order and their
// concatenation. It is not modified after it is built.
type Document struct {
	records []Record
	text    string
}

// Records returns a copy of the included records.
func (d *Document) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Paths returns the header path of every record, in order.
func (d *Document) Paths() []string {
	paths := make([]string, len(d.records))
	for i, rec := range d.records {
		paths[i] = rec.Path
	}
	return paths
}

// Text returns the concatenated blob. It is empty when nothing was included.
func (d *Document) Text() string {
	return d.text
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.records)
}

// builder appends records in the order they arrive.
type builder struct {
	records []Record
	text    strings.Builder
}

func (b *builder) add(path, content string) {
	b.records = append(b.records, Record{Path: path, Content: content})
	b.text.WriteString(printer.FormatBlock(path, content))
}

func (b *builder) document() *Document {
	return &Document{records: b.records, text: b.text.String()}
}

// RawEntry is a (path, bytes) pair waiting to be assembled.
type RawEntry struct {
	Path    string
	Content []byte
}

// errNotText marks content that failed UTF-8 decoding.
var errNotText = errors.New("content is not valid UTF-8 text")

// Assemble builds a Document from entries in the given order. Entries whose
// content is not valid UTF-8 are left out and reported as NonTextContent.
// No entries yields an empty Document.
func Assemble(entries []RawEntry) (*Document, []Warning) {
	var b builder
	var warnings []Warning
	for _, e := range entries {
		if !utf8.Valid(e.Content) {
			warnings = append(warnings, Warning{Kind: NonTextContent, Path: e.Path, Err: errNotText})
			continue
		}
		b.add(e.Path, string(e.Content))
	}
	return b.document(), warnings
}
