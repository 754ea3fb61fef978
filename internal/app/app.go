package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/consolidate/internal/aggregate"
	"github.com/bethropolis/consolidate/internal/config"
	"github.com/bethropolis/consolidate/internal/logger"
	"github.com/bethropolis/consolidate/internal/output"
	"github.com/bethropolis/consolidate/internal/printer"
	"github.com/bethropolis/consolidate/internal/setup"
	"github.com/bethropolis/consolidate/internal/summary"
	"github.com/bethropolis/consolidate/internal/tree"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer // aggregated document when no output file is set
	Errout io.Writer // logs, progress, tree, summary and diffs
}

// New creates a new App instance. cfg must already be validated.
func New(cfg *config.Config, stdout, stderr io.Writer) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(stderr, cfg.Verbose, cfg.UseColors).WithLevel(cfg.Level())

	return &App{
		cfg:    cfg,
		log:    log,
		Output: stdout,
		Errout: stderr,
	}
}

// Workspace returns the absolute workspace root.
func (a *App) Workspace() (string, error) {
	ws, err := filepath.Abs(a.cfg.Workspace)
	if err != nil {
		return "", fmt.Errorf("app: invalid workspace '%s': %w", a.cfg.Workspace, err)
	}
	return ws, nil
}

// Run aggregates roots and delivers the result to the configured sink.
func (a *App) Run(roots []aggregate.Root) error {
	startTime := time.Now() // Start timer for overall execution

	ctx := context.Background()
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	// Helper for info messages, suppressed by quiet flag
	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	if a.log.Verbose() {
		a.log.Debug("Verbose mode enabled")
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Workspace: %s", a.cfg.Workspace)
		a.log.Debug("Roots: %d", len(roots))
		a.log.Debug("Max file size: %d MB", a.cfg.MaxFileSizeMB)
		a.log.Debug("Format: %s", a.cfg.Format)
	}

	workspace, err := a.Workspace()
	if err != nil {
		return err
	}

	policy, opts, err := setup.ConfigureAggregator(setup.AggregatorConfig{
		Workspace:    workspace,
		IgnoreFile:   a.cfg.IgnoreFile,
		CustomIgnore: a.cfg.CustomIgnore,
		MaxFileSize:  a.cfg.MaxFileSizeBytes(),
		MaxDepth:     a.cfg.MaxDepth,
		ShowProgress: a.cfg.ShowProgress,
		Progress:     a.Errout,
		Context:      ctx,
		Quiet:        a.cfg.Quiet,
		Logger:       a.log,
	}, infoLog)
	if err != nil {
		return err
	}

	doc, sum, err := aggregate.New(policy, opts...).Aggregate(roots)
	if a.cfg.ShowProgress && !a.cfg.Quiet {
		fmt.Fprintln(a.Errout)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("app: timeout of %v reached: %w", a.cfg.Timeout, err)
	}
	if err != nil {
		return err
	}

	rendered, err := a.render(doc)
	if err != nil {
		return err
	}

	if a.cfg.ShowTree {
		fmt.Fprint(a.Errout, tree.Render(filepath.Base(workspace), doc.Paths()))
	}

	if err := a.deliver(workspace, rendered); err != nil {
		return err
	}

	summary.DisplayResults(a.log, sum, time.Since(startTime), a.cfg.Quiet)
	summary.DisplayWarnings(a.log, sum.Warnings)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, sum.Skipped, a.Errout, a.cfg.Quiet)
	}
	return nil
}

// render formats the document in the configured output format.
func (a *App) render(doc *aggregate.Document) ([]byte, error) {
	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return nil, err
	}
	if format == printer.FormatPlain {
		return []byte(doc.Text()), nil
	}

	var buf bytes.Buffer
	p := printer.New().WithOutput(&buf).WithFormat(format)
	for _, rec := range doc.Records() {
		p.PrintFile(rec.Path, rec.Content)
	}
	if err := p.Finalize(); err != nil {
		return nil, err
	}
	a.log.Debug("Rendered %d files as %s", p.GetCount(), format)
	return buf.Bytes(), nil
}

// deliver writes or checks the rendered output.
func (a *App) deliver(workspace string, data []byte) error {
	dest := output.Resolve(workspace, a.cfg.OutputFile)

	if a.cfg.Check {
		d, err := output.Check(dest, data)
		if d.Text != "" {
			fmt.Fprint(a.Errout, d.Text)
		}
		if err == nil {
			a.log.Info("%s is up to date.", dest)
		}
		return err
	}

	if err := output.Write(a.Output, dest, data); err != nil {
		return err
	}
	if dest != "" {
		a.log.Info("Wrote %d bytes to %s", len(data), dest)
	}
	return nil
}
