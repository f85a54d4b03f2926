package document

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/procview/pkg/connector"
	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/observability"
	"github.com/matzehuels/procview/pkg/process"
	"github.com/matzehuels/procview/pkg/quotient"
	"github.com/matzehuels/procview/pkg/undo"
)

// Options configures an [Editor].
type Options struct {
	// Blacklist lists action types that bypass the undo history.
	// Nil means [DefaultBlacklist]; use an empty slice to record everything.
	Blacklist []string
	// Limit bounds the number of undoable actions. Zero means unbounded.
	Limit int
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Blacklist == nil {
		o.Blacklist = DefaultBlacklist
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Editor is an undoable editing session over one document. It is safe for
// concurrent use.
type Editor struct {
	mu      sync.Mutex
	reducer *undo.Reducer[Document]
	state   undo.State[Document]
	logger  *log.Logger
}

// NewEditor returns an editor holding an empty document.
func NewEditor(opts Options) *Editor {
	opts.setDefaults()
	r := undo.MakeUndoable(Reduce,
		undo.WithBlacklist[Document](opts.Blacklist...),
		undo.WithLimit[Document](opts.Limit),
	)
	return &Editor{
		reducer: r,
		state:   r.Init(),
		logger:  opts.Logger,
	}
}

// Open returns an editor whose history starts at p.
func Open(p process.Process, opts Options) *Editor {
	e := NewEditor(opts)
	e.state = e.reducer.Reduce(e.state, DisplayProcess{Process: p})
	e.state = e.reducer.Reduce(e.state, undo.Clear{})
	return e
}

// Dispatch applies an action. Document actions are checked first and
// rejected with a coded error when they would not apply; history actions
// ([undo.Undo], [undo.Redo], [undo.JumpToState], [undo.Clear]) are routed to
// the history.
func (e *Editor) Dispatch(ctx context.Context, a undo.Action) error {
	if a == nil {
		return perrors.New(perrors.ErrCodeInvalidAction, "nil action")
	}
	if undo.IsReserved(a.Type()) {
		if a.Type() == undo.TypeInit {
			return perrors.New(perrors.ErrCodeInvalidAction, "%s cannot be dispatched", a.Type())
		}
		e.history(ctx, a)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(ctx, a)
}

// apply checks and steps a document action. e.mu must be held.
func (e *Editor) apply(ctx context.Context, a undo.Action) error {
	start := time.Now()
	if err := Check(e.state.Present, a); err != nil {
		observability.Editor().OnDispatch(ctx, a.Type(), false, time.Since(start), err)
		e.logger.Debug("rejected action", "type", a.Type(), "error", err)
		return err
	}

	var recorded bool
	e.state, recorded = e.reducer.Step(e.state, a)
	observability.Editor().OnDispatch(ctx, a.Type(), recorded, time.Since(start), nil)
	e.logger.Debug("applied action",
		"type", a.Type(),
		"recorded", recorded,
		"past", len(e.state.History.Past),
		"future", len(e.state.History.Future))
	return nil
}

// Undo steps back one action. It does nothing when there is no history.
func (e *Editor) Undo(ctx context.Context) { e.history(ctx, undo.Undo{}) }

// Redo re-applies the most recently undone action.
func (e *Editor) Redo(ctx context.Context) { e.history(ctx, undo.Redo{}) }

// Jump moves to an arbitrary point of the history.
func (e *Editor) Jump(ctx context.Context, dir undo.Direction, index int) {
	e.history(ctx, undo.JumpToState{Direction: dir, Index: index})
}

// Clear forgets the history and keeps the current document.
func (e *Editor) Clear(ctx context.Context) { e.history(ctx, undo.Clear{}) }

func (e *Editor) history(ctx context.Context, a undo.Action) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = e.reducer.Reduce(e.state, a)
	past, future := len(e.state.History.Past), len(e.state.History.Future)
	observability.Editor().OnHistory(ctx, a.Type(), past, future)
	e.logger.Debug("history", "op", a.Type(), "past", past, "future", future)
}

// Document returns the current document.
func (e *Editor) Document() Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Present
}

// History returns a copy of the current history.
func (e *Editor) History() undo.History {
	e.mu.Lock()
	defer e.mu.Unlock()
	return undo.History{
		Past:   slices.Clone(e.state.History.Past),
		Future: slices.Clone(e.state.History.Future),
	}
}

// CanUndo reports whether there is anything to undo.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CanUndo()
}

// CanRedo reports whether there is anything to redo.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CanRedo()
}

// Display returns the collapsed view of the current process. With merge set,
// parallel edges created by collapsing are merged.
func (e *Editor) Display(merge bool) quotient.Graph {
	g := quotient.Build(e.Document().Process)
	if merge {
		g.Edges = quotient.MergeParallel(g.Edges)
	}
	return g
}

// Connectors returns the connector kinds the node may emit.
func (e *Editor) Connectors(nodeID string, catalog connector.Catalog) (connector.Available, error) {
	n, ok := e.Document().Process.Node(nodeID)
	if !ok {
		return connector.Available{}, nodeNotFound(nodeID)
	}
	return connector.AvailableConnectors(n, catalog), nil
}

// ConnectEdge adds an edge from→to whose kind is the first connector of the
// source node not used yet. Nodes offering a single untyped edge get an
// untyped one, provided they have no outgoing edge already. The kind is
// picked and the edge added under one lock, so concurrent calls never pick
// the same kind.
func (e *Editor) ConnectEdge(ctx context.Context, from, to string, catalog connector.Catalog) (process.Edge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.state.Present.Process
	edge := process.Edge{From: from, To: to}
	if err := process.CheckEdge(p, edge); err != nil {
		return process.Edge{}, err
	}
	src, _ := p.Node(from)

	if spec, ok := connector.PickUnusedConnector(p.Edges, src, catalog); ok {
		edge.EdgeType = &spec
	} else if connector.AvailableConnectors(src, catalog).Untyped() {
		if slices.ContainsFunc(p.Edges, func(x process.Edge) bool { return x.From == from }) {
			return process.Edge{}, perrors.New(perrors.ErrCodeInvariantViolation,
				"node %q already has its outgoing edge", from)
		}
	} else {
		return process.Edge{}, perrors.New(perrors.ErrCodeInvariantViolation,
			"node %q has used all its connectors", from)
	}

	if err := e.apply(ctx, AddEdge{Edge: edge}); err != nil {
		return process.Edge{}, err
	}
	return edge, nil
}
