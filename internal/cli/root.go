// Package cli defines the consolidate command tree.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/consolidate/internal/app"
	"github.com/bethropolis/consolidate/internal/config"
)

// NewRootCommand builds the command tree bound to the given streams.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := config.New()

	root := &cobra.Command{
		Use:   "consolidate",
		Short: "consolidate combines workspace files into one text document",
		Long: `consolidate concatenates files into a single document, each preceded by a
"--- <path> ---" header, ready to paste into an LLM prompt.

Whole workspaces honour the workspace ignore file, hidden entries and the
built-in excludes; files and folders picked explicitly are always included.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	cfg.BindFlags(root.PersistentFlags())

	newApp := func() *app.App { return app.New(cfg, stdout, stderr) }

	root.AddCommand(
		newAllCommand(newApp),
		newSelectCommand(newApp, stdin),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree with the process streams.
func Execute() error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute()
}
