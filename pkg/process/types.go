package process

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
)

// RefKind tags which nested reference, if any, a node carries.
type RefKind int

const (
	// RefNone marks a plain node with no nested reference.
	RefNone RefKind = iota
	// RefSubprocess marks a sub-process input node; its reference is the
	// wire field "ref".
	RefSubprocess
	// RefService marks a node that calls a service; its reference is the
	// wire field "service".
	RefService
)

// String returns the wire key of the reference kind.
func (k RefKind) String() string {
	switch k {
	case RefSubprocess:
		return "ref"
	case RefService:
		return "service"
	default:
		return "none"
	}
}

// Reference is the tagged nested reference of a node. The zero value is a
// plain node.
type Reference struct {
	Kind RefKind
	ID   string
}

// SubprocessRef returns a sub-process input reference to the given id.
func SubprocessRef(id string) Reference { return Reference{Kind: RefSubprocess, ID: id} }

// ServiceRef returns a service reference to the given id.
func ServiceRef(id string) Reference { return Reference{Kind: RefService, ID: id} }

// Node is a vertex of a process graph. Only ID, Type and Ref are interpreted;
// everything else a node carries on the wire is kept verbatim in Payload.
type Node struct {
	ID      string
	Type    string
	Ref     Reference
	Payload map[string]any
}

// Edge is a directed connection between two nodes. EdgeType is nil for an
// untyped edge.
type Edge struct {
	From     string         `json:"from" bson:"from"`
	To       string         `json:"to" bson:"to"`
	EdgeType *EdgeType      `json:"edgeType,omitempty" bson:"edge_type,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// EdgeType names the connector kind of an edge (e.g. a true or false branch).
type EdgeType struct {
	Type string `json:"type" bson:"type"`
}

// Group is a named, ordered subset of node ids that is collapsed into one
// node for display. On the wire the member list is called "nodes".
type Group struct {
	ID      string   `json:"id" bson:"id"`
	NodeIDs []string `json:"nodes" bson:"nodes"`
}

// Process is a process document: its graph plus the properties area that
// holds group definitions.
type Process struct {
	ID         string     `json:"id" bson:"id"`
	Properties Properties `json:"properties" bson:"properties"`
	Nodes      []Node     `json:"nodes" bson:"nodes"`
	Edges      []Edge     `json:"edges" bson:"edges"`
}

// Properties holds process-level settings.
type Properties struct {
	AdditionalFields AdditionalFields `json:"additionalFields" bson:"additional_fields"`
}

// AdditionalFields is the free-form configuration area groups live in.
type AdditionalFields struct {
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Groups      []Group `json:"groups" bson:"groups"`
}

// Groups returns the group definitions stored at
// properties.additionalFields.groups.
func (p Process) Groups() []Group { return p.Properties.AdditionalFields.Groups }

// WithGroups returns a copy of p whose groups are replaced by groups.
// Nodes and edges are shared with p.
func (p Process) WithGroups(groups []Group) Process {
	p.Properties.AdditionalFields.Groups = groups
	return p
}

// Node returns the node with the given id and true, or a zero Node and false.
func (p Process) Node(id string) (Node, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Clone returns a deep copy of the group definitions and shallow copies of
// the node and edge slices.
func (p Process) Clone() Process {
	p.Nodes = slices.Clone(p.Nodes)
	p.Edges = slices.Clone(p.Edges)
	p.Properties.AdditionalFields.Groups = cloneGroups(p.Groups())
	return p
}

func cloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{ID: g.ID, NodeIDs: slices.Clone(g.NodeIDs)}
	}
	return out
}

// =============================================================================
// Node wire format
// =============================================================================

type wireRef struct {
	ID string `json:"id" bson:"id"`
}

type wireNode struct {
	ID      string         `bson:"id"`
	Type    string         `bson:"type,omitempty"`
	Ref     *wireRef       `bson:"ref,omitempty"`
	Service *wireRef       `bson:"service,omitempty"`
	Payload map[string]any `bson:"payload,omitempty"`
}

func (n Node) toWire() wireNode {
	w := wireNode{ID: n.ID, Type: n.Type, Payload: n.Payload}
	switch n.Ref.Kind {
	case RefSubprocess:
		w.Ref = &wireRef{ID: n.Ref.ID}
	case RefService:
		w.Service = &wireRef{ID: n.Ref.ID}
	}
	return w
}

func (w wireNode) toNode() Node {
	n := Node{ID: w.ID, Type: w.Type, Payload: w.Payload}
	switch {
	case w.Ref != nil:
		n.Ref = SubprocessRef(w.Ref.ID)
	case w.Service != nil:
		n.Ref = ServiceRef(w.Service.ID)
	}
	return n
}

var reservedNodeKeys = []string{"id", "type", "ref", "service"}

// MarshalJSON writes the node flat: id, type, the nested reference under
// "ref" or "service", and every payload key alongside them.
func (n Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Payload)+3)
	maps.Copy(out, n.Payload)
	w := n.toWire()
	out["id"] = w.ID
	if w.Type != "" {
		out["type"] = w.Type
	}
	if w.Ref != nil {
		out["ref"] = w.Ref
	}
	if w.Service != nil {
		out["service"] = w.Service
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat node object. Keys other than id, type, ref and
// service end up in Payload.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var w wireNode
	if err := decodeField(raw, "id", &w.ID); err != nil {
		return err
	}
	if err := decodeField(raw, "type", &w.Type); err != nil {
		return err
	}
	if err := decodeField(raw, "ref", &w.Ref); err != nil {
		return err
	}
	if err := decodeField(raw, "service", &w.Service); err != nil {
		return err
	}
	for _, k := range reservedNodeKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		w.Payload = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return fmt.Errorf("node field %s: %w", k, err)
			}
			w.Payload[k] = val
		}
	}
	*n = w.toNode()
	return nil
}

func decodeField(raw map[string]json.RawMessage, key string, v any) error {
	data, ok := raw[key]
	if !ok || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("node field %s: %w", key, err)
	}
	return nil
}

// MarshalBSON stores the node with its payload as a sub-document.
func (n Node) MarshalBSON() ([]byte, error) {
	return bson.Marshal(n.toWire())
}

// UnmarshalBSON is the inverse of MarshalBSON.
func (n *Node) UnmarshalBSON(data []byte) error {
	var w wireNode
	if err := bson.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = w.toNode()
	return nil
}
