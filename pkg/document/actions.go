package document

import "github.com/matzehuels/procview/pkg/process"

// Action types handled by [Reduce].
const (
	TypeDisplayProcess = "DISPLAY_PROCESS"
	TypeCreateGroup    = "CREATE_GROUP"
	TypeEditGroup      = "EDIT_GROUP"
	TypeUngroup        = "UNGROUP"
	TypeRenameNode     = "RENAME_NODE"
	TypeDeleteNode     = "DELETE_NODE"
	TypeAddEdge        = "ADD_EDGE"
	TypeDeleteEdge     = "DELETE_EDGE"
	TypeMoveViewport   = "MOVE_VIEWPORT"
)

// DisplayProcess replaces the whole process.
type DisplayProcess struct {
	Process process.Process `json:"process"`
}

// CreateGroup collapses the listed nodes into a new group.
type CreateGroup struct {
	NodeIDs []string `json:"nodeIds"`
}

// EditGroup replaces the definition of an existing group.
type EditGroup struct {
	GroupID string        `json:"groupId"`
	Group   process.Group `json:"group"`
}

// Ungroup removes a group. Its members become ungrouped nodes.
type Ungroup struct {
	GroupID string `json:"groupId"`
}

// RenameNode changes a node id in the node list, the edges and the groups.
type RenameNode struct {
	OldID string `json:"oldId"`
	NewID string `json:"newId"`
}

// DeleteNode removes a node with its edges and group membership.
type DeleteNode struct {
	NodeID string `json:"nodeId"`
}

// AddEdge appends an edge.
type AddEdge struct {
	Edge process.Edge `json:"edge"`
}

// DeleteEdge removes every edge between two nodes.
type DeleteEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MoveViewport pans or zooms the view. It is not undoable by default.
type MoveViewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

func (DisplayProcess) Type() string { return TypeDisplayProcess }
func (CreateGroup) Type() string    { return TypeCreateGroup }
func (EditGroup) Type() string      { return TypeEditGroup }
func (Ungroup) Type() string        { return TypeUngroup }
func (RenameNode) Type() string     { return TypeRenameNode }
func (DeleteNode) Type() string     { return TypeDeleteNode }
func (AddEdge) Type() string        { return TypeAddEdge }
func (DeleteEdge) Type() string     { return TypeDeleteEdge }
func (MoveViewport) Type() string   { return TypeMoveViewport }
