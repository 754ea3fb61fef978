package aggregate

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/bethropolis/consolidate/internal/ignore"
	"github.com/bethropolis/consolidate/internal/utils"
	"github.com/bethropolis/consolidate/internal/walker"
)

// Aggregator combines roots into a Document. The policy is built once by
// the caller and reused for every root; the Aggregator holds no other state
// between calls.
type Aggregator struct {
	policy    *ignore.Policy
	selection *ignore.Policy
	options   options
}

// New returns an Aggregator using policy for whole trees. Folders picked
// explicitly are walked with policy.ForSelection(). A nil policy applies the
// hidden-entry rule and the default built-in excludes only.
func New(policy *ignore.Policy, opts ...Option) *Aggregator {
	o := options{logger: utils.NoopLogger{}, ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if policy == nil {
		policy = ignore.New(ignore.WithLogger(o.logger))
	}
	return &Aggregator{
		policy:    policy,
		selection: policy.ForSelection(),
		options:   o,
	}
}

// Aggregate visits roots in order and returns the combined Document with a
// Summary. Per-entry problems are reported on the Summary and never abort
// the run; the error is ErrNoRootsProvided, or the context error when the
// run was cancelled.
func (a *Aggregator) Aggregate(roots []Root) (*Document, Summary, error) {
	var sum Summary
	if len(roots) == 0 {
		return nil, sum, ErrNoRootsProvided
	}

	for _, w := range a.policy.Warnings() {
		sum.Warnings = append(sum.Warnings, Warning{Kind: MalformedPattern, Path: w.Pattern, Err: w})
	}

	var b builder
	for _, root := range roots {
		if err := a.options.ctx.Err(); err != nil {
			return nil, sum, err
		}
		if err := a.aggregateRoot(root, &b, &sum); err != nil {
			return nil, sum, err
		}
	}

	for _, w := range sum.Warnings {
		a.options.logger.Debug("aggregate: %v", w)
	}
	a.options.logger.Debug("aggregate: %d included, %d excluded", sum.Included, sum.Excluded)
	return b.document(), sum, nil
}

func (a *Aggregator) aggregateRoot(root Root, b *builder, sum *Summary) error {
	res, err := root.Resolve()
	if err != nil {
		sum.skip(walker.SkippedItem{Path: root.Path, Reason: walker.ReasonSkippedPathError, Err: err})
		return nil
	}
	parent := filepath.Dir(res.Abs)

	if root.Kind == OpenDocument {
		a.add(b, sum, a.display(res.Abs, parent), []byte(root.Content))
		return nil
	}

	info, err := os.Stat(res.Abs)
	if err != nil {
		sum.skip(walker.SkippedItem{Path: a.display(res.Abs, parent), Reason: walker.ErrorReason(err), Err: err})
		return nil
	}

	if !info.IsDir() {
		display := a.display(res.Abs, parent)
		if root.Mode() == ignore.Filtered {
			entry := ignore.Entry{Path: res.Abs, RelativePath: a.policyPath(res.Abs)}
			if d := a.policy.Evaluate(entry, ignore.Filtered); !d.Include {
				sum.skip(walker.SkippedItem{Path: display, Reason: walker.ReasonFor(d.Reason)})
				return nil
			}
		}
		a.readFile(b, sum, display, res.Abs)
		return nil
	}

	policy, fallback, prefix := a.policy, res.Abs, a.policyPrefix(res.Abs)
	if root.Kind == ExplicitEntry {
		// Inside a picked folder only the hidden rule and built-ins apply,
		// and headers keep the folder name.
		policy, fallback, prefix = a.selection, parent, ""
	}

	skipped, err := walker.Walk(res.Abs, policy, func(rel, abs string) {
		a.readFile(b, sum, a.display(abs, fallback), abs)
	}, append(a.walkOptions(), walker.WithRelPrefix(prefix))...)
	for _, item := range skipped {
		item.Path = a.display(filepath.Join(res.Abs, filepath.FromSlash(item.Path)), fallback)
		sum.skip(item)
	}
	return err
}

func (a *Aggregator) readFile(b *builder, sum *Summary, display, abs string) {
	if a.options.maxFileSize > 0 {
		info, err := os.Stat(abs)
		if err != nil {
			sum.skip(walker.SkippedItem{Path: display, Reason: walker.ErrorReason(err), Err: err})
			return
		}
		if info.Size() > a.options.maxFileSize {
			a.options.logger.Debug("aggregate: %s exceeds %d bytes", display, a.options.maxFileSize)
			sum.skip(walker.SkippedItem{Path: display, Reason: walker.ReasonSkippedSizeLimit})
			return
		}
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		sum.skip(walker.SkippedItem{Path: display, Reason: walker.ErrorReason(err), Err: err})
		return
	}
	a.add(b, sum, display, content)
}

func (a *Aggregator) add(b *builder, sum *Summary, display string, content []byte) {
	if !utf8.Valid(content) {
		sum.skip(walker.SkippedItem{Path: display, Reason: walker.ReasonSkippedNonText, Err: errNotText})
		return
	}
	b.add(display, string(content))
	sum.Included++
	a.options.logger.Debug("aggregate: added %s (%d bytes)", display, len(content))
}

// policyPath is the path ignore rules see for abs: relative to the base,
// where the workspace rules live, or just the name when abs is outside it.
func (a *Aggregator) policyPath(abs string) string {
	if rel, ok := utils.RelWithin(a.options.base, abs); ok {
		return rel
	}
	return filepath.Base(abs)
}

// policyPrefix is the walk-root counterpart of policyPath: "" for the base
// itself or for directories outside it.
func (a *Aggregator) policyPrefix(absDir string) string {
	rel, ok := utils.RelWithin(a.options.base, absDir)
	if !ok || rel == "." {
		return ""
	}
	return rel
}

// display computes the header path of abs: relative to the configured base,
// or to fallback when no base was configured.
func (a *Aggregator) display(abs, fallback string) string {
	base := a.options.base
	if base == "" {
		base = fallback
	}
	return utils.SlashRel(base, abs)
}

func (a *Aggregator) walkOptions() []walker.Option {
	opts := []walker.Option{
		walker.WithLogger(a.options.logger),
		walker.WithContext(a.options.ctx),
		walker.WithMaxDepth(a.options.maxDepth),
	}
	if a.options.progress != nil {
		opts = append(opts, walker.WithProgress(a.options.progress))
	}
	return opts
}
