package document

import (
	"encoding/json"
	"slices"

	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/undo"
)

// Envelope is the wire form of an action: its type tag and its fields.
type Envelope struct {
	Type    string          `json:"type" bson:"type"`
	Payload json.RawMessage `json:"payload,omitempty" bson:"payload,omitempty"`
}

type decoder func(json.RawMessage) (undo.Action, error)

var decoders = map[string]decoder{
	TypeDisplayProcess: decodeAs[DisplayProcess],
	TypeCreateGroup:    decodeAs[CreateGroup],
	TypeEditGroup:      decodeAs[EditGroup],
	TypeUngroup:        decodeAs[Ungroup],
	TypeRenameNode:     decodeAs[RenameNode],
	TypeDeleteNode:     decodeAs[DeleteNode],
	TypeAddEdge:        decodeAs[AddEdge],
	TypeDeleteEdge:     decodeAs[DeleteEdge],
	TypeMoveViewport:   decodeAs[MoveViewport],
	undo.TypeUndo:      decodeAs[undo.Undo],
	undo.TypeRedo:      decodeAs[undo.Redo],
	undo.TypeJump:      decodeAs[undo.JumpToState],
	undo.TypeClear:     decodeAs[undo.Clear],
}

func decodeAs[A undo.Action](raw json.RawMessage) (undo.Action, error) {
	var a A
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Types returns the action types the codec knows, sorted.
func Types() []string {
	types := make([]string, 0, len(decoders))
	for t := range decoders {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Encode converts an action to its envelope.
func Encode(a undo.Action) (Envelope, error) {
	if a == nil {
		return Envelope{}, perrors.New(perrors.ErrCodeInvalidAction, "nil action")
	}
	if _, ok := decoders[a.Type()]; !ok {
		return Envelope{}, perrors.New(perrors.ErrCodeInvalidAction, "unknown action type %q", a.Type())
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return Envelope{}, perrors.Wrap(perrors.ErrCodeInvalidAction, err, "encode %s", a.Type())
	}
	return Envelope{Type: a.Type(), Payload: payload}, nil
}

// Decode converts an envelope back to an action.
func Decode(env Envelope) (undo.Action, error) {
	dec, ok := decoders[env.Type]
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidAction, "unknown action type %q", env.Type)
	}
	a, err := dec(env.Payload)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidAction, err, "decode %s", env.Type)
	}
	return a, nil
}

// EncodeAll encodes a list of actions, stopping at the first error.
func EncodeAll(actions []undo.Action) ([]Envelope, error) {
	out := make([]Envelope, len(actions))
	for i, a := range actions {
		env, err := Encode(a)
		if err != nil {
			return nil, err
		}
		out[i] = env
	}
	return out, nil
}

// DecodeAll decodes a list of envelopes, stopping at the first error.
func DecodeAll(envs []Envelope) ([]undo.Action, error) {
	out := make([]undo.Action, len(envs))
	for i, env := range envs {
		a, err := Decode(env)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
