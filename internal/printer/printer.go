// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Format selects how file blocks are rendered.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatPlain, FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("printer: unsupported format %q (want plain, markdown or json)", name)
	}
}

// FormatBlock renders one file in the plain format: a header line
// "--- <path> ---", the raw content, then a blank-line separator.
// Downstream tools split aggregated output on these headers.
func FormatBlock(relativePath, content string) string {
	return "--- " + relativePath + " ---\n" + content + "\n\n"
}

// Printer handles output formatting and writing to the configured output destination
type Printer struct {
	output      io.Writer
	count       int64
	format      Format
	jsonStarted bool
	err         error
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output: os.Stdout,
		format: FormatPlain,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithFormat selects the rendering.
func (p *Printer) WithFormat(f Format) *Printer {
	p.format = f
	return p
}

// JSONFileEntry represents a file entry in JSON output
type JSONFileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// PrintFile outputs the content of a file with its path. After the first
// write error the printer stops writing; see Err.
func (p *Printer) PrintFile(relativePath, content string) {
	if p.err != nil {
		return
	}
	p.count++

	switch p.format {
	case FormatJSON:
		sep := ",\n"
		if !p.jsonStarted {
			sep = "[\n"
			p.jsonStarted = true
		}

		jsonData, err := json.MarshalIndent(JSONFileEntry{Path: relativePath, Content: content}, "  ", "  ")
		if err != nil {
			p.err = fmt.Errorf("printer: marshal %s: %w", relativePath, err)
			return
		}
		p.write(sep + "  " + string(jsonData))
	case FormatMarkdown:
		p.write(fmt.Sprintf("file: %s\n\n```\n%s\n```\n\n", relativePath, content))
	default:
		p.write(FormatBlock(relativePath, content))
	}
}

// Finalize completes any pending operations (like closing the JSON array).
// An empty JSON rendering is "[]".
func (p *Printer) Finalize() error {
	if p.format == FormatJSON && p.err == nil {
		if p.jsonStarted {
			p.write("\n]\n")
		} else {
			p.write("[]\n")
		}
	}
	return p.err
}

// Err returns the first error met while printing.
func (p *Printer) Err() error {
	return p.err
}

// GetCount returns the number of files printed
func (p *Printer) GetCount() int64 {
	return p.count
}

func (p *Printer) write(s string) {
	if _, err := io.WriteString(p.output, s); err != nil {
		p.err = fmt.Errorf("printer: write: %w", err)
	}
}
