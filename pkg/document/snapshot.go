package document

import (
	"github.com/matzehuels/procview/pkg/undo"
)

// Snapshot is the serializable state of an [Editor]: the present and base
// documents and the encoded history.
type Snapshot struct {
	Present Document   `json:"present" bson:"present"`
	Base    Document   `json:"base" bson:"base"`
	Past    []Envelope `json:"past" bson:"past"`
	Future  []Envelope `json:"future" bson:"future"`
}

// Snapshot captures the editor state.
func (e *Editor) Snapshot() (Snapshot, error) {
	e.mu.Lock()
	st := e.state
	e.mu.Unlock()

	past, err := EncodeAll(st.History.Past)
	if err != nil {
		return Snapshot{}, err
	}
	future, err := EncodeAll(st.History.Future)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Present: st.Present, Base: st.Base, Past: past, Future: future}, nil
}

// RestoreEditor rebuilds an editor from a snapshot.
func RestoreEditor(s Snapshot, opts Options) (*Editor, error) {
	past, err := DecodeAll(s.Past)
	if err != nil {
		return nil, err
	}
	future, err := DecodeAll(s.Future)
	if err != nil {
		return nil, err
	}
	e := NewEditor(opts)
	e.state = undo.State[Document]{
		Present: s.Present,
		Base:    s.Base,
		History: undo.History{Past: past, Future: future},
	}
	return e, nil
}
