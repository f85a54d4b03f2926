package workspace

import (
	"context"

	"github.com/matzehuels/procview/pkg/document"
	"github.com/matzehuels/procview/pkg/undo"
)

// HistoryEntry is one recorded action. Index is the value to pass to Jump
// with the entry's direction to land on the state right after the action.
type HistoryEntry struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// HistoryView lists a session's past and future, both oldest first.
type HistoryView struct {
	Past    []HistoryEntry `json:"past"`
	Future  []HistoryEntry `json:"future"`
	CanUndo bool           `json:"canUndo"`
	CanRedo bool           `json:"canRedo"`
}

// NewHistoryView describes h.
func NewHistoryView(h undo.History) HistoryView {
	return HistoryView{
		Past:    entries(h.Past),
		Future:  entries(h.Future),
		CanUndo: len(h.Past) > 0,
		CanRedo: len(h.Future) > 0,
	}
}

func entries(actions []undo.Action) []HistoryEntry {
	out := make([]HistoryEntry, len(actions))
	for i, a := range actions {
		out[i] = HistoryEntry{Index: i, Type: a.Type(), Description: document.Describe(a)}
	}
	return out
}

// History returns the history of a stored session.
func (s *Service) History(ctx context.Context, id string) (HistoryView, error) {
	ed, err := s.Open(ctx, id)
	if err != nil {
		return HistoryView{}, err
	}
	return NewHistoryView(ed.History()), nil
}
