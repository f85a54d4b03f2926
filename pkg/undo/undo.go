package undo

import (
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// History is the linear action log around the present state.
type History struct {
	Past   []Action
	Future []Action
}

// State wraps a reducer state with its history. Base is the state the past
// is replayed from: the initial state, or the last checkpoint after a
// [Clear] or after the history limit folded old actions away.
type State[S any] struct {
	Present S
	History History
	Base    S
}

// CanUndo reports whether an [Undo] would change anything.
func (s State[S]) CanUndo() bool { return len(s.History.Past) > 0 }

// CanRedo reports whether a [Redo] would change anything.
func (s State[S]) CanRedo() bool { return len(s.History.Future) > 0 }

// Reduce is a pure, deterministic state transition.
type Reduce[S any] func(state S, action Action) S

// Option configures a [Reducer].
type Option[S any] func(*Reducer[S])

// WithBlacklist lists action types that bypass history. They are applied to
// the present state but are never recorded, so a later undo or jump, which
// replays recorded actions only, discards their effect.
func WithBlacklist[S any](types ...string) Option[S] {
	return func(r *Reducer[S]) {
		for _, t := range types {
			r.blacklist[t] = true
		}
	}
}

// WithEqual sets the comparison used to detect no-op actions. The default
// compares structurally with go-cmp, treating nil and empty slices and maps
// as equal; it panics on states with unexported fields.
func WithEqual[S any](equal func(a, b S) bool) Option[S] {
	return func(r *Reducer[S]) {
		if equal != nil {
			r.equal = equal
		}
	}
}

// WithLimit bounds the number of past actions. When exceeded, the oldest
// action is applied to Base and dropped from the log. Zero means unbounded.
func WithLimit[S any](n int) Option[S] {
	return func(r *Reducer[S]) {
		r.limit = max(n, 0)
	}
}

// Reducer wraps a [Reduce] function with undo, redo and jump support.
type Reducer[S any] struct {
	reduce    Reduce[S]
	blacklist map[string]bool
	equal     func(a, b S) bool
	limit     int
}

// MakeUndoable returns a Reducer around reduce.
func MakeUndoable[S any](reduce func(S, Action) S, opts ...Option[S]) *Reducer[S] {
	r := &Reducer[S]{
		reduce:    reduce,
		blacklist: map[string]bool{TypeInit: true},
		equal: func(a, b S) bool {
			return cmp.Equal(a, b, cmpopts.EquateEmpty())
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Blacklisted reports whether actions of type t bypass history.
func (r *Reducer[S]) Blacklisted(t string) bool { return r.blacklist[t] }

// Limit returns the configured history limit, zero if unbounded.
func (r *Reducer[S]) Limit() int { return r.limit }

// Init returns the initial wrapped state: the reducer applied to the zero
// state with an [Init] action, and an empty history.
func (r *Reducer[S]) Init() State[S] {
	var zero S
	s := r.reduce(zero, Init{})
	return State[S]{Present: s, Base: s}
}

// Reduce applies action to st and returns the new wrapped state. st is
// never modified.
func (r *Reducer[S]) Reduce(st State[S], action Action) State[S] {
	next, _ := r.Step(st, action)
	return next
}

// Step is like [Reducer.Reduce] and also reports whether action was
// appended to the past.
func (r *Reducer[S]) Step(st State[S], action Action) (State[S], bool) {
	if r.blacklist[action.Type()] {
		st.Present = r.reduce(st.Present, action)
		return st, false
	}

	switch a := action.(type) {
	case JumpToState:
		return r.jump(st, a.Direction, a.Index), false
	case *JumpToState:
		return r.jump(st, a.Direction, a.Index), false
	case Undo, *Undo:
		if len(st.History.Past) == 0 {
			return st, false
		}
		return r.jump(st, Past, len(st.History.Past)-2), false
	case Redo, *Redo:
		if len(st.History.Future) == 0 {
			return st, false
		}
		return r.jump(st, Future, 0), false
	case Clear, *Clear:
		return State[S]{Present: st.Present, Base: st.Present}, false
	}

	next := r.reduce(st.Present, action)
	if r.equal(next, st.Present) {
		return st, false
	}
	st.Present = next
	st.History = History{Past: append(slices.Clip(st.History.Past), action)}
	if r.limit > 0 {
		for len(st.History.Past) > r.limit {
			st.Base = r.reduce(st.Base, st.History.Past[0])
			st.History.Past = st.History.Past[1:]
		}
	}
	return st, true
}

// Replay folds actions over base.
func (r *Reducer[S]) Replay(base S, actions []Action) S {
	s := base
	for _, a := range actions {
		s = r.reduce(s, a)
	}
	return s
}

func (r *Reducer[S]) jump(st State[S], dir Direction, index int) State[S] {
	past, future := st.History.Past, st.History.Future
	switch dir {
	case Past:
		index = min(max(index, -1), len(past)-1)
		st.History = History{
			Past:   slices.Clone(past[:index+1]),
			Future: slices.Concat(past[index+1:], future),
		}
	case Future:
		index = min(max(index, -1), len(future)-1)
		st.History = History{
			Past:   slices.Concat(past, future[:index+1]),
			Future: slices.Clone(future[index+1:]),
		}
	default:
		return st
	}
	st.Present = r.Replay(st.Base, st.History.Past)
	return st
}
