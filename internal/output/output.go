// Package output writes an aggregated document to its destination.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrOutputChanged is returned by Check when the existing output differs
// from the regenerated one.
var ErrOutputChanged = errors.New("output: existing output is out of date")

// Resolve returns the destination for name. Relative names are resolved
// against the workspace directory; an empty name means stdout.
func Resolve(workspace, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(workspace, name)
}

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: creating directory for '%s': %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: writing '%s': %w", path, err)
	}
	return nil
}

// Write sends data to path, or to w when path is empty.
func Write(w io.Writer, path string, data []byte) error {
	if path != "" {
		return WriteFile(path, data)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("output: writing to stdout: %w", err)
	}
	return nil
}
