package document

import (
	"fmt"
	"strings"

	"github.com/matzehuels/procview/pkg/undo"
)

// Describe returns a one-line summary of an action for history listings.
func Describe(a undo.Action) string {
	switch a := a.(type) {
	case DisplayProcess:
		return fmt.Sprintf("load process %q (%d nodes, %d edges)", a.Process.ID, len(a.Process.Nodes), len(a.Process.Edges))
	case CreateGroup:
		return "group " + strings.Join(a.NodeIDs, ", ")
	case EditGroup:
		return fmt.Sprintf("edit group %s -> %s [%s]", a.GroupID, a.Group.ID, strings.Join(a.Group.NodeIDs, ", "))
	case Ungroup:
		return "ungroup " + a.GroupID
	case RenameNode:
		return fmt.Sprintf("rename %s -> %s", a.OldID, a.NewID)
	case DeleteNode:
		return "delete node " + a.NodeID
	case AddEdge:
		if a.Edge.EdgeType != nil {
			return fmt.Sprintf("connect %s -> %s (%s)", a.Edge.From, a.Edge.To, a.Edge.EdgeType.Type)
		}
		return fmt.Sprintf("connect %s -> %s", a.Edge.From, a.Edge.To)
	case DeleteEdge:
		return fmt.Sprintf("disconnect %s -> %s", a.From, a.To)
	case MoveViewport:
		return fmt.Sprintf("move viewport to (%g, %g) x%g", a.X, a.Y, a.Zoom)
	case nil:
		return ""
	default:
		return strings.ToLower(a.Type())
	}
}
