package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/procview/pkg/document"
	"github.com/matzehuels/procview/pkg/process"
	"github.com/matzehuels/procview/pkg/undo"
)

// dispatch applies a to the stored document id and reports the result.
func (c *CLI) dispatch(cmd *cobra.Command, id string, a undo.Action) error {
	ctx := cmd.Context()
	svc, closeStore, err := c.newService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	ed, err := svc.Dispatch(ctx, id, a)
	if err != nil {
		docLogger(ctx, id).Debug("action rejected", "type", a.Type(), "error", err)
		return err
	}
	docLogger(ctx, id).Debug("action applied", "type", a.Type())
	h := ed.History()
	printSuccess("%s", document.Describe(a))
	printDetail("%d undoable, %d redoable", len(h.Past), len(h.Future))
	return nil
}

func (c *CLI) groupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create, edit and remove node groups",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create <id> <node>...",
		Short: "Group nodes; the group id is the member ids joined with " + process.GroupIDSeparator,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, args[0], document.CreateGroup{NodeIDs: args[1:]})
		},
	})

	var (
		newID string
		nodes string
	)
	edit := &cobra.Command{
		Use:   "edit <id> <group>",
		Short: "Replace the id and members of a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def := process.Group{ID: newID, NodeIDs: splitIDs(nodes)}
			if def.ID == "" {
				def.ID = args[1]
			}
			return c.dispatch(cmd, args[0], document.EditGroup{GroupID: args[1], Group: def})
		},
	}
	edit.Flags().StringVar(&newID, "id", "", "new group id (default unchanged)")
	edit.Flags().StringVar(&nodes, "nodes", "", "comma-separated member ids")
	edit.MarkFlagRequired("nodes")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:     "remove <id> <group>",
		Aliases: []string{"ungroup"},
		Short:   "Dissolve a group; its nodes stay in the process",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, args[0], document.Ungroup{GroupID: args[1]})
		},
	})
	return cmd
}

func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Rename and delete nodes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <old> <new>",
		Short: "Rename a node in the node list, its edges and its group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, args[0], document.RenameNode{OldID: args[1], NewID: args[2]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id> <node>",
		Short: "Delete a node with its edges and drop it from its group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, args[0], document.DeleteNode{NodeID: args[1]})
		},
	})
	return cmd
}

func (c *CLI) edgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Add and delete edges without consulting the catalog",
	}
	var kind string
	add := &cobra.Command{
		Use:   "add <id> <from> <to>",
		Short: "Add an edge, optionally with an explicit connector kind",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := process.Edge{From: args[1], To: args[2]}
			if kind != "" {
				e.EdgeType = &process.EdgeType{Type: kind}
			}
			return c.dispatch(cmd, args[0], document.AddEdge{Edge: e})
		},
	}
	add.Flags().StringVar(&kind, "type", "", "connector kind")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id> <from> <to>",
		Short: "Delete every edge from one node to another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, args[0], document.DeleteEdge{From: args[1], To: args[2]})
		},
	})
	return cmd
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
