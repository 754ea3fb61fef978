package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/consolidate/internal/aggregate"
	"github.com/bethropolis/consolidate/internal/config"
	"github.com/bethropolis/consolidate/internal/output"
	"github.com/bethropolis/consolidate/internal/printer"
)

func workspace(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()
	files := map[string]string{
		".gitignore":          "node_modules/\n",
		"public/script.js":    "console.log(1)",
		"public/.hidden":      "secret",
		"node_modules/x.js":   "x",
		"docs/readme.md":      "# docs",
		"docs/debug.log":      "noise",
		"node_modules/.keep":  "",
		"public/lib/util.js":  "export {}",
		"public/lib/util.log": "noise",
	}
	for rel, content := range files {
		full := filepath.Join(ws, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return ws
}

func newApp(t *testing.T, mutate func(*config.Config)) (*App, *bytes.Buffer, *bytes.Buffer, string) {
	t.Helper()
	ws := workspace(t)
	cfg := config.New()
	cfg.Workspace = ws
	cfg.NoColor = true
	cfg.LogLevel = "error"
	if mutate != nil {
		mutate(cfg)
	}
	var stdout, stderr bytes.Buffer
	return New(cfg, &stdout, &stderr), &stdout, &stderr, ws
}

const wantWhole = "--- docs/readme.md ---\n# docs\n\n" +
	"--- public/lib/util.js ---\nexport {}\n\n" +
	"--- public/script.js ---\nconsole.log(1)\n\n"

func TestRunWholeWorkspace(t *testing.T) {
	a, stdout, _, ws := newApp(t, nil)
	if err := a.Run([]aggregate.Root{aggregate.TreeRoot(ws)}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != wantWhole {
		t.Errorf("stdout = %q; want %q", stdout.String(), wantWhole)
	}
}

func TestRunSelection(t *testing.T) {
	a, stdout, _, ws := newApp(t, nil)
	err := a.Run([]aggregate.Root{
		aggregate.ExplicitRoot(filepath.Join(ws, "public", ".hidden")),
		aggregate.DocumentRoot(filepath.Join(ws, "draft.txt"), "unsaved"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "--- public/.hidden ---\nsecret\n\n--- draft.txt ---\nunsaved\n\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunNoRoots(t *testing.T) {
	a, _, _, _ := newApp(t, nil)
	if err := a.Run(nil); !errors.Is(err, aggregate.ErrNoRootsProvided) {
		t.Errorf("err = %v", err)
	}
}

func TestRunCustomIgnore(t *testing.T) {
	a, stdout, _, ws := newApp(t, func(c *config.Config) { c.CustomIgnore = "docs/" })
	if err := a.Run([]aggregate.Root{aggregate.TreeRoot(ws)}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout.String(), "docs/") {
		t.Errorf("docs/ should be ignored:\n%s", stdout.String())
	}
}

func TestRunJSON(t *testing.T) {
	a, stdout, _, ws := newApp(t, func(c *config.Config) { c.Format = "json" })
	if err := a.Run([]aggregate.Root{aggregate.TreeRoot(ws)}); err != nil {
		t.Fatal(err)
	}
	var entries []printer.JSONFileEntry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout.String(), err)
	}
	if len(entries) != 3 || entries[2].Path != "public/script.js" || entries[2].Content != "console.log(1)" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRunOutputFileAndCheck(t *testing.T) {
	a, stdout, stderr, ws := newApp(t, func(c *config.Config) { c.OutputFile = filepath.Join("out", "ctx.txt") })
	roots := []aggregate.Root{aggregate.TreeRoot(ws)}
	if err := a.Run(roots); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Error("stdout must stay empty when writing to a file")
	}

	dest := filepath.Join(ws, "out", "ctx.txt")
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	// out/ctx.txt is written after the walk, so it is not part of its own content.
	if string(got) != wantWhole {
		t.Errorf("file = %q", got)
	}

	a.cfg.Check = true
	a.cfg.CustomIgnore = "out/"
	if err := a.Run(roots); err != nil {
		t.Fatalf("unchanged workspace should pass the check: %v", err)
	}

	if err := os.WriteFile(filepath.Join(ws, "docs", "new.md"), []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = a.Run(roots)
	if !errors.Is(err, output.ErrOutputChanged) {
		t.Fatalf("err = %v; want ErrOutputChanged", err)
	}
	if !strings.Contains(stderr.String(), "+ --- docs/new.md ---") {
		t.Errorf("diff not shown:\n%s", stderr.String())
	}
	if got, _ := os.ReadFile(dest); string(got) != wantWhole {
		t.Error("--check must not rewrite the output file")
	}
}

func TestRunTree(t *testing.T) {
	a, _, stderr, ws := newApp(t, func(c *config.Config) { c.ShowTree = true })
	if err := a.Run([]aggregate.Root{aggregate.TreeRoot(ws)}); err != nil {
		t.Fatal(err)
	}
	out := stderr.String()
	if !strings.HasPrefix(out, filepath.Base(ws)+"\n") || !strings.Contains(out, "script.js") {
		t.Errorf("tree = %q", out)
	}
}

func TestRunMaxSize(t *testing.T) {
	a, stdout, _, ws := newApp(t, func(c *config.Config) { c.MaxFileSizeMB = 1 })
	big := bytes.Repeat([]byte("x"), 2*1024*1024)
	if err := os.WriteFile(filepath.Join(ws, "big.txt"), big, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.Run([]aggregate.Root{aggregate.TreeRoot(ws)}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout.String(), "big.txt") {
		t.Error("files over the size limit must be skipped")
	}
}

func TestRunShowSkipped(t *testing.T) {
	a, _, stderr, ws := newApp(t, func(c *config.Config) { c.ShowSkipped = true })
	if err := a.Run([]aggregate.Root{aggregate.TreeRoot(ws)}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "Skipped DIR : node_modules") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
