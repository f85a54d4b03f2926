// Package cli implements the procview command-line interface.
//
// Commands operate on documents kept in the configured store (a directory of
// JSON files by default, Redis or MongoDB for shared setups):
//
//   - import, export, list, delete: manage stored documents
//   - display: show the collapsed view of a document or a JSON file
//   - group, node, edge: edit a document
//   - connect, connectors: add edges using the connector catalog
//   - undo, redo, jump, clear, history: navigate the undo history
//   - serve: run the HTTP API
//
// All commands support --verbose (-v) for debug-level logging and --config
// to point at a procview.toml file.
//
// # Example
//
//	import "github.com/matzehuels/procview/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand returns the root command with the --verbose flag wired to
// the log level.
func NewRootCommand() *cobra.Command {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return preRun(cmd, args)
	}
	return root
}
