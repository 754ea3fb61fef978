package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bethropolis/consolidate/internal/aggregate"
	"github.com/bethropolis/consolidate/internal/app"
	"github.com/bethropolis/consolidate/internal/version"
)

func newAllCommand(newApp func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "all [dir...]",
		Short: "Combine every file of the workspace, or of the given directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if len(args) == 0 {
				ws, err := a.Workspace()
				if err != nil {
					return err
				}
				args = []string{ws}
			}
			roots := make([]aggregate.Root, 0, len(args))
			for _, dir := range args {
				roots = append(roots, aggregate.TreeRoot(dir))
			}
			return a.Run(roots)
		},
	}
}

func newSelectCommand(newApp func() *app.App, stdin io.Reader) *cobra.Command {
	var stdinAs string

	cmd := &cobra.Command{
		Use:   "select [path...]",
		Short: "Combine the given files and folders in the order named",
		Long: `Combine the given files and folders in the order named. Picked files are
always included, hidden or not; inside a picked folder hidden entries and the
built-in excludes are still skipped.

With --stdin-as, standard input is added last as an open document whose
header path is the given workspace-relative name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			roots := make([]aggregate.Root, 0, len(args)+1)
			for _, p := range args {
				roots = append(roots, aggregate.ExplicitRoot(p))
			}

			if stdinAs != "" {
				ws, err := a.Workspace()
				if err != nil {
					return err
				}
				content, err := io.ReadAll(stdin)
				if err != nil {
					return fmt.Errorf("cli: reading stdin: %w", err)
				}
				path := stdinAs
				if !filepath.IsAbs(path) {
					path = filepath.Join(ws, path)
				}
				roots = append(roots, aggregate.DocumentRoot(path, string(content)))
			}
			return a.Run(roots)
		},
	}
	cmd.Flags().StringVar(&stdinAs, "stdin-as", "", "Read an open document from stdin under this workspace-relative path")
	return cmd
}

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of consolidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return cmd
}
