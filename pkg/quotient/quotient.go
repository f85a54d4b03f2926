package quotient

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/procview/pkg/process"
)

// GroupType is the node type of synthetic group nodes.
const GroupType = "_group"

// DisplayNode is a node of the display graph. Ungrouped nodes are passed
// through unchanged with empty Members; group nodes have ID set to the group
// id, Type set to [GroupType], and list their members in group order.
type DisplayNode struct {
	process.Node
	Members   []process.Node
	MemberIDs []string
}

// IsGroup reports whether the node stands in for a group.
func (n DisplayNode) IsGroup() bool { return n.Type == GroupType }

type groupWire struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Members   []process.Node `json:"nodes"`
	MemberIDs []string       `json:"ids"`
}

// MarshalJSON writes pass-through nodes in their process form and group
// nodes as {id, type, nodes, ids}.
func (n DisplayNode) MarshalJSON() ([]byte, error) {
	if !n.IsGroup() {
		return json.Marshal(n.Node)
	}
	return json.Marshal(groupWire{ID: n.ID, Type: n.Type, Members: n.Members, MemberIDs: n.MemberIDs})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (n *DisplayNode) UnmarshalJSON(data []byte) error {
	var node process.Node
	if err := json.Unmarshal(data, &node); err != nil {
		return err
	}
	if node.Type != GroupType {
		*n = DisplayNode{Node: node}
		return nil
	}
	var g groupWire
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	*n = DisplayNode{
		Node:      process.Node{ID: g.ID, Type: g.Type},
		Members:   g.Members,
		MemberIDs: g.MemberIDs,
	}
	return nil
}

// Graph is the collapsed view of a process.
type Graph struct {
	Nodes []DisplayNode  `json:"nodes"`
	Edges []process.Edge `json:"edges"`
}

// Build returns the display nodes and edges of p.
func Build(p process.Process) Graph {
	return Graph{
		Nodes: NodesForDisplay(p),
		Edges: EdgesForDisplay(p),
	}
}

// NodesForDisplay returns the ungrouped nodes of p in their original order,
// followed by one group node per group in group order. When p has no groups
// the result wraps p.Nodes one to one.
//
// A group that lists a node id missing from p.Nodes gets a zero-valued member
// carrying only that id.
func NodesForDisplay(p process.Process) []DisplayNode {
	owners := memberships(p)

	out := make([]DisplayNode, 0, len(p.Nodes)+len(p.Groups()))
	for _, n := range p.Nodes {
		if _, grouped := owners[n.ID]; !grouped {
			out = append(out, DisplayNode{Node: n})
		}
	}
	if len(p.Groups()) == 0 {
		return out
	}

	byID := make(map[string]process.Node, len(p.Nodes))
	for _, n := range p.Nodes {
		byID[n.ID] = n
	}
	for _, g := range p.Groups() {
		members := make([]process.Node, len(g.NodeIDs))
		for i, id := range g.NodeIDs {
			m, ok := byID[id]
			if !ok {
				m = process.Node{ID: id}
			}
			members[i] = m
		}
		out = append(out, DisplayNode{
			Node:      process.Node{ID: g.ID, Type: GroupType},
			Members:   members,
			MemberIDs: slices.Clone(g.NodeIDs),
		})
	}
	return out
}

// EdgesForDisplay maps every edge of p onto the display graph, keeping edge
// order. Edges with both ends inside the same group are dropped. Otherwise
// each grouped endpoint is replaced by its group id; all other edge fields
// are preserved. Parallel edges created by collapsing are kept; see
// [MergeParallel].
func EdgesForDisplay(p process.Process) []process.Edge {
	if len(p.Groups()) == 0 {
		return slices.Clone(p.Edges)
	}
	owners := memberships(p)

	out := make([]process.Edge, 0, len(p.Edges))
	for _, e := range p.Edges {
		gf, fromGrouped := owners[e.From]
		gt, toGrouped := owners[e.To]
		if fromGrouped && toGrouped && gf == gt {
			continue
		}
		if fromGrouped {
			e.From = gf
		}
		if toGrouped {
			e.To = gt
		}
		out = append(out, e)
	}
	return out
}

// memberships maps each grouped node id to its group id. If a node is listed
// by more than one group the first group wins.
func memberships(p process.Process) map[string]string {
	owners := make(map[string]string)
	for _, g := range p.Groups() {
		for _, id := range g.NodeIDs {
			if _, seen := owners[id]; !seen {
				owners[id] = g.ID
			}
		}
	}
	return owners
}
