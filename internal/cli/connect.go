package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) connectCommand() *cobra.Command {
	var cf catalogFlags
	cmd := &cobra.Command{
		Use:   "connect <id> <from> <to>",
		Short: "Add an edge using the first unused connector of the source node",
		Long: `Add an edge from one node to another. The connector kind is the first
kind offered for the source node by the catalog that no outgoing edge of the
node uses yet. Nodes without a catalog entry get one untyped edge.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeStore, err := c.newService(ctx, &cf)
			if err != nil {
				return err
			}
			defer closeStore()

			spin := newSpinnerWithContext(ctx, "Connecting "+args[1]+" "+iconArrow+" "+args[2])
			spin.Start()
			edge, err := svc.Connect(ctx, args[0], args[1], args[2])
			if err != nil {
				spin.StopWithError("Could not connect " + args[1])
				return err
			}
			spin.Stop()
			if edge.EdgeType != nil {
				printSuccess("Connected %s %s %s as %s", edge.From, iconArrow, edge.To, StyleHighlight.Render(edge.EdgeType.Type))
			} else {
				printSuccess("Connected %s %s %s", edge.From, iconArrow, edge.To)
			}
			return nil
		},
	}
	cf.register(cmd)
	return cmd
}

func (c *CLI) connectorsCommand() *cobra.Command {
	var cf catalogFlags
	cmd := &cobra.Command{
		Use:   "connectors <id> <node>",
		Short: "List the connector kinds a node offers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeStore, err := c.newService(ctx, &cf)
			if err != nil {
				return err
			}
			defer closeStore()

			avail, err := svc.Connectors(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if avail.Untyped() {
				printInfo("%s takes a single untyped edge", args[1])
				return nil
			}
			rows := make([][]string, len(avail.Connectors))
			for i, spec := range avail.Connectors {
				kind := "untyped"
				if spec != nil {
					kind = spec.Type
				}
				rows[i] = []string{kind}
			}
			printTable([]string{"Connector"}, rows, nil)
			if avail.NodeMatcher != nil {
				printDetail("matched type %q %s", avail.NodeMatcher.Type, avail.NodeMatcher.ID)
			}
			return nil
		},
	}
	cf.register(cmd)
	return cmd
}
