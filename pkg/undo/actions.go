package undo

import "fmt"

// Action is anything a reducer can be applied to. Type identifies the kind
// of action and is what blacklists match against.
type Action interface {
	Type() string
}

// Reserved action types.
const (
	TypeInit  = "@@INIT"
	TypeUndo  = "UNDO"
	TypeRedo  = "REDO"
	TypeJump  = "JUMP_TO_STATE"
	TypeClear = "CLEAR"
)

// Direction selects which half of the history a jump indexes into.
type Direction string

const (
	// Past indexes into History.Past.
	Past Direction = "PAST"
	// Future indexes into History.Future.
	Future Direction = "FUTURE"
)

// ParseDirection parses "past" or "future" in any case.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "PAST", "past", "Past":
		return Past, nil
	case "FUTURE", "future", "Future":
		return Future, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want past or future)", s)
	}
}

// Init bootstraps the wrapped state. It is always blacklisted.
type Init struct{}

// Undo steps back one action.
type Undo struct{}

// Redo steps forward one action.
type Redo struct{}

// Clear forgets all history and keeps the present state.
type Clear struct{}

// JumpToState moves to an arbitrary point of the history. With Direction
// [Past], Index is the last past action that stays applied (-1 means none).
// With [Future], the first Index+1 future actions are re-applied.
type JumpToState struct {
	Direction Direction `json:"direction"`
	Index     int       `json:"index"`
}

func (Init) Type() string        { return TypeInit }
func (Undo) Type() string        { return TypeUndo }
func (Redo) Type() string        { return TypeRedo }
func (Clear) Type() string       { return TypeClear }
func (JumpToState) Type() string { return TypeJump }

// IsReserved reports whether t is one of the history control types.
func IsReserved(t string) bool {
	switch t {
	case TypeInit, TypeUndo, TypeRedo, TypeJump, TypeClear:
		return true
	}
	return false
}
