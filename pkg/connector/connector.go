package connector

import (
	"slices"

	"github.com/matzehuels/procview/pkg/process"
)

// Spec names one connector (edge) kind a node may emit. A nil *Spec in a
// connector list stands for a single untyped outgoing edge.
type Spec = process.EdgeType

// NodeMatcher selects the nodes a catalog entry applies to. ID is optional;
// when set it is compared with the node's nested reference id.
type NodeMatcher struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Matches reports whether n is selected by m.
func (m NodeMatcher) Matches(n process.Node) bool {
	if m.Type != n.Type {
		return false
	}
	if m.ID == "" {
		return true
	}
	switch n.Ref.Kind {
	case process.RefSubprocess, process.RefService:
		return n.Ref.ID == m.ID
	default:
		return false
	}
}

// Entry lists the connector kinds available to nodes selected by its matcher,
// in the order they should be offered.
type Entry struct {
	NodeMatcher NodeMatcher `json:"nodeId"`
	Edges       []*Spec     `json:"edges"`
}

// Catalog is the ordered list of entries supplied by the process definition.
// The first matching entry wins.
type Catalog []Entry

// Available is the result of [AvailableConnectors].
type Available struct {
	// NodeMatcher is the matcher of the selected entry, nil for the default.
	NodeMatcher *NodeMatcher `json:"nodeId,omitempty"`
	// Connectors lists the offered kinds in catalog order.
	Connectors []*Spec `json:"edges"`
	// CanChooseNodes reports whether the user may pick among several kinds.
	CanChooseNodes bool `json:"canChooseNodes"`
}

// Untyped reports whether the only offered connector is the untyped one.
func (a Available) Untyped() bool {
	return len(a.Connectors) == 1 && a.Connectors[0] == nil
}

// Default returns the result for nodes no catalog entry matches: one untyped
// outgoing edge and no choice.
func Default() Available {
	return Available{Connectors: []*Spec{nil}}
}

// Lookup returns the first entry matching n.
func (c Catalog) Lookup(n process.Node) (Entry, bool) {
	for _, e := range c {
		if e.NodeMatcher.Matches(n) {
			return e, true
		}
	}
	return Entry{}, false
}

// AvailableConnectors returns the connector kinds node may emit according to
// catalog, or [Default] when nothing matches.
func AvailableConnectors(node process.Node, catalog Catalog) Available {
	e, ok := catalog.Lookup(node)
	if !ok {
		return Default()
	}
	m := e.NodeMatcher
	a := Available{
		NodeMatcher: &m,
		Connectors:  slices.Clone(e.Edges),
	}
	a.CanChooseNodes = !a.Untyped()
	return a
}

// PickUnusedConnector returns the first connector offered to node whose kind
// is not already used by an edge leaving node. It returns false when every
// kind is taken or the node has no selectable kinds.
func PickUnusedConnector(existing []process.Edge, node process.Node, catalog Catalog) (Spec, bool) {
	used := UsedKinds(existing, node.ID)
	for _, c := range AvailableConnectors(node, catalog).Connectors {
		if c == nil {
			continue
		}
		if !used[c.Type] {
			return *c, true
		}
	}
	return Spec{}, false
}

// UsedKinds returns the set of connector kinds on edges leaving nodeID.
func UsedKinds(edges []process.Edge, nodeID string) map[string]bool {
	used := make(map[string]bool)
	for _, e := range edges {
		if e.From == nodeID && e.EdgeType != nil {
			used[e.EdgeType.Type] = true
		}
	}
	return used
}
