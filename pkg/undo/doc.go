// Package undo adds linear undo and redo to a pure reducer.
//
// [MakeUndoable] wraps a function of type [Reduce] and keeps the actions it
// was given in a [History]. Undo, redo and jumps never restore snapshots:
// the present state is re-derived by folding the reducer over the retained
// past actions, starting from the base state. Reducers must therefore be
// deterministic and free of side effects.
//
// # Actions
//
// Ordinary actions that change the state are appended to the past and clear
// the future. Actions whose result equals the current state are dropped.
// Blacklisted action types (see [WithBlacklist]) are applied but never
// recorded. Five types are reserved: [Init], [Undo], [Redo], [JumpToState]
// and [Clear].
//
// # Usage
//
//	r := undo.MakeUndoable(reduce, undo.WithBlacklist[Doc]("MOVE_VIEWPORT"))
//	st := r.Init()
//	st = r.Reduce(st, AddNode{ID: "a"})
//	st = r.Reduce(st, undo.Undo{})
//
// Replay cost is linear in the length of the past. [WithLimit] caps it by
// folding the oldest actions into the base state.
package undo
