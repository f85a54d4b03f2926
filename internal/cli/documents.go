package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/procview/pkg/io"
)

func (c *CLI) importCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Store a process document and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			p, err := pio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			svc, closeStore, err := c.newService(ctx, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := svc.Create(ctx, p)
			if err != nil {
				return err
			}
			if quiet {
				fmt.Fprintln(stdout, id)
				return nil
			}
			prog.done("Imported " + args[0])
			printSuccess("Stored %s as %s", StyleHighlight.Render(p.ID), StyleValue.Render(id))
			printDetail("%d nodes, %d edges, %d groups", len(p.Nodes), len(p.Edges), len(p.Groups()))
			printNextStep("Show it", "procview display "+id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the document id")
	return cmd
}

func (c *CLI) exportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write the current process of a document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeStore, err := c.newService(ctx, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			ed, err := svc.Open(ctx, args[0])
			if err != nil {
				return err
			}
			p := ed.Document().Process
			if output == "" {
				return pio.WriteJSON(p, stdout)
			}
			if err := pio.ExportJSON(p, output); err != nil {
				return err
			}
			printSuccess("Exported %s", args[0])
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeStore, err := c.newService(ctx, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := svc.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No documents stored")
				printNextStep("Add one", "procview import process.json")
				return nil
			}
			rows := make([][]string, len(list))
			for i, s := range list {
				rows[i] = []string{
					s.ID,
					s.ProcessID,
					strconv.Itoa(s.Nodes),
					strconv.Itoa(s.Groups),
					fmt.Sprintf("%d/%d", s.Past, s.Future),
					formatRelativeTime(s.UpdatedAt),
				}
			}
			printTable([]string{"ID", "Process", "Nodes", "Groups", "Undo/Redo", "Updated"}, rows, nil)
			return nil
		},
	}
}

func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored document and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeStore, err := c.newService(ctx, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := svc.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
