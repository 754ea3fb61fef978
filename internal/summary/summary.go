// Package summary handles display of aggregation results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/consolidate/internal/aggregate"
	"github.com/bethropolis/consolidate/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// DisplayResults shows the end results of an aggregation
func DisplayResults(
	logger Logger,
	sum aggregate.Summary,
	duration time.Duration,
	quiet bool,
) {
	if !quiet {
		logger.Info("Included %d files, excluded %d.", sum.Included, sum.Excluded)
		logger.Info("Done in %v.", duration.Round(time.Millisecond))
	}
}

// DisplayWarnings logs every recoverable problem met during the run.
func DisplayWarnings(logger Logger, warnings []aggregate.Warning) {
	for _, w := range warnings {
		logger.Warn("%v", w)
	}
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		// Sort a copy for consistent output
		items := append([]walker.SkippedItem(nil), skippedItems...)
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Path < items[j].Path
		})
		for _, item := range items {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			reason := color.YellowString("%s", item.Reason)
			if item.Failed() {
				reason = color.RedString("%s: %v", item.Reason, item.Err)
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
