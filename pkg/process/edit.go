package process

import (
	"slices"

	perrors "github.com/matzehuels/procview/pkg/errors"
)

// RenameNode changes a node's id, updating every edge that touches it and
// every group that lists it. It returns p unchanged if oldID does not exist,
// or if newID is empty or already in use; [CheckRename] reports which.
func RenameNode(p Process, oldID, newID string) Process {
	if CheckRename(p, oldID, newID) != nil {
		return p
	}

	p.Nodes = slices.Clone(p.Nodes)
	for i := range p.Nodes {
		if p.Nodes[i].ID == oldID {
			p.Nodes[i].ID = newID
		}
	}
	p.Edges = slices.Clone(p.Edges)
	for i := range p.Edges {
		if p.Edges[i].From == oldID {
			p.Edges[i].From = newID
		}
		if p.Edges[i].To == oldID {
			p.Edges[i].To = newID
		}
	}
	return RenameNodeEverywhere(p, oldID, newID)
}

// CheckRename returns the reason [RenameNode] would ignore the rename, or
// nil if it would apply.
func CheckRename(p Process, oldID, newID string) error {
	if err := perrors.ValidateNodeID(newID); err != nil {
		return err
	}
	if _, ok := p.Node(oldID); !ok {
		return perrors.New(perrors.ErrCodeNotFound, "node %q not found", oldID)
	}
	if oldID == newID {
		return perrors.New(perrors.ErrCodeInvalidInput, "node %q already has that id", oldID)
	}
	if _, ok := p.Node(newID); ok {
		return perrors.New(perrors.ErrCodeInvariantViolation, "node id %q already in use", newID)
	}
	return nil
}

// DeleteNode removes a node, every edge touching it, and its group
// membership. Missing nodes are ignored.
func DeleteNode(p Process, nodeID string) Process {
	if _, ok := p.Node(nodeID); !ok {
		return p
	}
	p.Nodes = slices.DeleteFunc(slices.Clone(p.Nodes), func(n Node) bool { return n.ID == nodeID })
	p.Edges = slices.DeleteFunc(slices.Clone(p.Edges), func(e Edge) bool {
		return e.From == nodeID || e.To == nodeID
	})
	return RemoveNodeEverywhere(p, nodeID)
}

// AddEdge appends e to the edges of p.
func AddEdge(p Process, e Edge) Process {
	edges := make([]Edge, 0, len(p.Edges)+1)
	edges = append(edges, p.Edges...)
	p.Edges = append(edges, e)
	return p
}

// DeleteEdge removes every edge from→to. If there is none, p is returned
// unchanged.
func DeleteEdge(p Process, from, to string) Process {
	match := func(e Edge) bool { return e.From == from && e.To == to }
	if !slices.ContainsFunc(p.Edges, match) {
		return p
	}
	p.Edges = slices.DeleteFunc(slices.Clone(p.Edges), match)
	return p
}

// CheckEdge reports whether both endpoints of e exist in p.
func CheckEdge(p Process, e Edge) error {
	for _, id := range []string{e.From, e.To} {
		if _, ok := p.Node(id); !ok {
			return perrors.New(perrors.ErrCodeNotFound, "node %q not found", id)
		}
	}
	return nil
}
