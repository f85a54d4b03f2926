package document

import (
	"github.com/matzehuels/procview/pkg/process"
	"github.com/matzehuels/procview/pkg/undo"
)

// Document is the editable state: a process and the current view onto it.
type Document struct {
	Process  process.Process `json:"process" bson:"process"`
	Viewport Viewport        `json:"viewport" bson:"viewport"`
}

// Viewport is the pan offset and zoom factor of the view.
type Viewport struct {
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
	Zoom float64 `json:"zoom" bson:"zoom"`
}

// DefaultBlacklist lists the action types that never enter the undo history.
var DefaultBlacklist = []string{TypeMoveViewport}

// Reduce applies a document action and returns the new document. It is pure
// and total: actions that do not apply (unknown ids, unknown action types)
// return doc unchanged.
func Reduce(doc Document, action undo.Action) Document {
	p := doc.Process
	switch a := action.(type) {
	case DisplayProcess:
		doc.Process = a.Process.Clone()
	case CreateGroup:
		doc.Process = process.CreateGroup(p, a.NodeIDs)
	case EditGroup:
		doc.Process = process.EditGroup(p, a.GroupID, a.Group)
	case Ungroup:
		doc.Process = process.Ungroup(p, a.GroupID)
	case RenameNode:
		doc.Process = process.RenameNode(p, a.OldID, a.NewID)
	case DeleteNode:
		doc.Process = process.DeleteNode(p, a.NodeID)
	case AddEdge:
		doc.Process = process.AddEdge(p, a.Edge)
	case DeleteEdge:
		doc.Process = process.DeleteEdge(p, a.From, a.To)
	case MoveViewport:
		doc.Viewport = Viewport{X: a.X, Y: a.Y, Zoom: a.Zoom}
	}
	return doc
}

// Check reports why action cannot be applied to doc in a meaningful way.
// [Reduce] silently ignores such actions; editors call Check first so the
// caller gets an error instead.
func Check(doc Document, action undo.Action) error {
	p := doc.Process
	switch a := action.(type) {
	case DisplayProcess:
		return process.Validate(a.Process)
	case CreateGroup:
		return process.Validate(process.CreateGroup(p, a.NodeIDs))
	case EditGroup:
		if _, ok := process.FindGroup(p, a.GroupID); !ok {
			return groupNotFound(a.GroupID)
		}
		return process.Validate(process.EditGroup(p, a.GroupID, a.Group))
	case Ungroup:
		if _, ok := process.FindGroup(p, a.GroupID); !ok {
			return groupNotFound(a.GroupID)
		}
	case RenameNode:
		return process.CheckRename(p, a.OldID, a.NewID)
	case DeleteNode:
		if _, ok := p.Node(a.NodeID); !ok {
			return nodeNotFound(a.NodeID)
		}
	case AddEdge:
		return process.CheckEdge(p, a.Edge)
	}
	return nil
}
