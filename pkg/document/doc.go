// Package document holds the editable process document and its undoable
// editing session.
//
// Every edit is an action ([CreateGroup], [RenameNode], [AddEdge], ...)
// applied by the pure reducer [Reduce]. An [Editor] wraps the reducer with
// [undo.MakeUndoable] so all edits, group changes included, can be undone,
// redone or jumped over. Viewport moves are blacklisted by default and never
// enter the history.
//
// Actions travel as an [Envelope] ({"type": ..., "payload": {...}}) so that
// histories can be stored with [Editor.Snapshot] and reloaded with
// [RestoreEditor].
package document
