// Package workspace ties editors to a document store. Every command loads a
// session, applies itself to the restored editor and saves the result, so
// the CLI and the HTTP API share one code path.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/procview/pkg/connector"
	"github.com/matzehuels/procview/pkg/document"
	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/process"
	"github.com/matzehuels/procview/pkg/quotient"
	"github.com/matzehuels/procview/pkg/store"
	"github.com/matzehuels/procview/pkg/undo"
)

// Options configures a [Service].
type Options struct {
	// Editor is applied to every restored editor. Its Logger is replaced by
	// the service logger.
	Editor document.Options
	// Catalogs supplies connector catalogs. Nil means an empty catalog, so
	// every node gets the default untyped connector.
	Catalogs CatalogSource
	Logger   *log.Logger
}

// Service runs editor commands against stored sessions. Commands on the same
// document are serialized; different documents proceed in parallel.
type Service struct {
	store    store.Store
	editor   document.Options
	catalogs CatalogSource
	logger   *log.Logger

	mu    sync.Mutex
	locks map[string]*docLock
}

type docLock struct {
	sync.Mutex
	refs int
}

// NewService creates a service over s.
func NewService(s store.Store, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Catalogs == nil {
		opts.Catalogs = StaticCatalog(nil)
	}
	opts.Editor.Logger = opts.Logger
	return &Service{
		store:    s,
		editor:   opts.Editor,
		catalogs: opts.Catalogs,
		logger:   opts.Logger,
		locks:    make(map[string]*docLock),
	}
}

// Summary describes a stored session.
type Summary struct {
	ID        string    `json:"id"`
	ProcessID string    `json:"processId"`
	Nodes     int       `json:"nodes"`
	Groups    int       `json:"groups"`
	Past      int       `json:"past"`
	Future    int       `json:"future"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func summarize(rec *store.Record) Summary {
	p := rec.Snapshot.Present.Process
	return Summary{
		ID:        rec.ID,
		ProcessID: p.ID,
		Nodes:     len(p.Nodes),
		Groups:    len(p.Groups()),
		Past:      len(rec.Snapshot.Past),
		Future:    len(rec.Snapshot.Future),
		UpdatedAt: rec.UpdatedAt,
	}
}

// Create validates p, opens a fresh session on it and stores it under a new
// id.
func (s *Service) Create(ctx context.Context, p process.Process) (string, error) {
	if err := process.Validate(p); err != nil {
		return "", err
	}
	id := store.NewID()
	ed := document.Open(p, s.editor)
	if err := s.save(ctx, id, ed); err != nil {
		return "", err
	}
	s.logger.Info("created document", "id", id, "process", p.ID, "nodes", len(p.Nodes), "groups", len(p.Groups()))
	return id, nil
}

// Open restores the editor of a stored session.
func (s *Service) Open(ctx context.Context, id string) (*document.Editor, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return document.RestoreEditor(rec.Snapshot, s.editor)
}

// Get returns the summary of a stored session.
func (s *Service) Get(ctx context.Context, id string) (Summary, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return summarize(rec), nil
}

// List returns all stored sessions, most recent first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, len(recs))
	for i, rec := range recs {
		out[i] = summarize(rec)
	}
	return out, nil
}

// Delete removes a stored session.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted document", "id", id)
	return nil
}

// Update loads the session, runs fn on its editor and saves the result if
// fn succeeds.
func (s *Service) Update(ctx context.Context, id string, fn func(context.Context, *document.Editor) error) (*document.Editor, error) {
	unlock := s.lock(id)
	defer unlock()

	ed, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ctx, ed); err != nil {
		return nil, err
	}
	if err := s.save(ctx, id, ed); err != nil {
		return nil, err
	}
	return ed, nil
}

func (s *Service) save(ctx context.Context, id string, ed *document.Editor) error {
	snap, err := ed.Snapshot()
	if err != nil {
		return err
	}
	return s.store.Put(ctx, &store.Record{ID: id, Snapshot: snap})
}

func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &docLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Dispatch applies a document action.
func (s *Service) Dispatch(ctx context.Context, id string, a undo.Action) (*document.Editor, error) {
	return s.Update(ctx, id, func(ctx context.Context, ed *document.Editor) error {
		return ed.Dispatch(ctx, a)
	})
}

// Undo steps the session back once.
func (s *Service) Undo(ctx context.Context, id string) (*document.Editor, error) {
	return s.Dispatch(ctx, id, undo.Undo{})
}

// Redo steps the session forward once.
func (s *Service) Redo(ctx context.Context, id string) (*document.Editor, error) {
	return s.Dispatch(ctx, id, undo.Redo{})
}

// Jump moves to a position in the past or future list.
func (s *Service) Jump(ctx context.Context, id string, dir undo.Direction, index int) (*document.Editor, error) {
	return s.Dispatch(ctx, id, undo.JumpToState{Direction: dir, Index: index})
}

// Clear makes the present document the new base and empties the history.
func (s *Service) Clear(ctx context.Context, id string) (*document.Editor, error) {
	return s.Dispatch(ctx, id, undo.Clear{})
}

// Display returns the collapsed view of the current document.
func (s *Service) Display(ctx context.Context, id string, merge bool) (quotient.Graph, error) {
	ed, err := s.Open(ctx, id)
	if err != nil {
		return quotient.Graph{}, err
	}
	return ed.Display(merge), nil
}

// Connectors lists the connector kinds a node offers.
func (s *Service) Connectors(ctx context.Context, id, nodeID string) (connector.Available, error) {
	ed, err := s.Open(ctx, id)
	if err != nil {
		return connector.Available{}, err
	}
	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return connector.Available{}, err
	}
	return ed.Connectors(nodeID, catalog)
}

// Connect adds an edge from -> to using the first unused connector of from.
func (s *Service) Connect(ctx context.Context, id, from, to string) (process.Edge, error) {
	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return process.Edge{}, err
	}
	var edge process.Edge
	_, err = s.Update(ctx, id, func(ctx context.Context, ed *document.Editor) error {
		e, err := ed.ConnectEdge(ctx, from, to, catalog)
		edge = e
		return err
	})
	if err != nil {
		return process.Edge{}, err
	}
	return edge, nil
}

// ParseDirection converts "past" or "future" for callers that take the
// direction as text.
func ParseDirection(s string) (undo.Direction, error) {
	d, err := undo.ParseDirection(s)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "jump")
	}
	return d, nil
}
