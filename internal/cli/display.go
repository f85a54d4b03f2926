package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/procview/pkg/io"
	"github.com/matzehuels/procview/pkg/quotient"
)

func (c *CLI) displayCommand() *cobra.Command {
	var (
		merge  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "display <id|file.json>",
		Short: "Show the display graph with groups collapsed",
		Long: `Show the nodes and edges to draw for a document: ungrouped nodes first,
then one node per group. Edges inside a group are hidden and edges crossing
a group boundary point at the group.

The argument is either a stored document id or a process JSON file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var g quotient.Graph
			if isFile(args[0]) {
				p, err := pio.ImportJSON(args[0])
				if err != nil {
					return err
				}
				g = quotient.Build(p)
				if merge {
					g.Edges = quotient.MergeParallel(g.Edges)
				}
			} else {
				svc, closeStore, err := c.newService(ctx, nil)
				if err != nil {
					return err
				}
				defer closeStore()
				if g, err = svc.Display(ctx, args[0], merge); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(g)
			}
			printGraph(g)
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge-parallel", false, "merge parallel edges created by collapsing groups")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the display graph as JSON")
	return cmd
}

func isFile(arg string) bool {
	if !strings.EqualFold(filepath.Ext(arg), ".json") {
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

func printGraph(g quotient.Graph) {
	rows := make([][]string, len(g.Nodes))
	groups := make([]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		typ := n.Type
		if typ == "" {
			typ = "—"
		}
		rows[i] = []string{n.ID, typ, joinOrDash(n.MemberIDs)}
		groups[i] = n.IsGroup()
	}
	printTable([]string{"Node", "Type", "Members"}, rows, groups)

	edges := make([][]string, len(g.Edges))
	for i, e := range g.Edges {
		kind := "—"
		if e.EdgeType != nil {
			kind = e.EdgeType.Type
		}
		edges[i] = []string{e.From, iconArrow, e.To, kind}
	}
	printTable([]string{"From", "", "To", "Connector"}, edges, nil)
}
