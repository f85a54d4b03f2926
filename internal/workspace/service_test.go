package workspace

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/procview/pkg/connector"
	"github.com/matzehuels/procview/pkg/document"
	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/process"
	"github.com/matzehuels/procview/pkg/store"
	"github.com/matzehuels/procview/pkg/undo"
)

func line() process.Process {
	return process.Process{
		ID:    "order",
		Nodes: []process.Node{{ID: "a", Type: "Switch"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []process.Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "d"}},
	}
}

func newService(t *testing.T, catalog connector.Catalog) *Service {
	t.Helper()
	return NewService(store.NewMemoryStore(), Options{
		Catalogs: StaticCatalog(catalog),
		Logger:   log.NewWithOptions(io.Discard, log.Options{}),
	})
}

func displayIDs(t *testing.T, s *Service, id string) []string {
	t.Helper()
	g, err := s.Display(context.Background(), id, false)
	if err != nil {
		t.Fatalf("Display() error: %v", err)
	}
	var ids []string
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestGroupUndoRedoFlow(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	id, err := s.Create(ctx, line())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := s.Dispatch(ctx, id, document.CreateGroup{NodeIDs: []string{"b", "c"}}); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	groupID := "b" + process.GroupIDSeparator + "c"
	if diff := cmp.Diff([]string{"a", "d", groupID}, displayIDs(t, s, id)); diff != "" {
		t.Errorf("grouped display mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Undo(ctx, id); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, displayIDs(t, s, id)); diff != "" {
		t.Errorf("display after undo mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Redo(ctx, id); err != nil {
		t.Fatalf("Redo() error: %v", err)
	}
	if got := displayIDs(t, s, id); len(got) != 3 {
		t.Errorf("display after redo = %v, want 3 nodes", got)
	}

	sum, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if sum.Groups != 1 || sum.Past != 1 || sum.Future != 0 || sum.ProcessID != "order" {
		t.Errorf("Get() = %+v", sum)
	}
}

func TestHistoryAndJump(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)
	id, err := s.Create(ctx, line())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	actions := []undo.Action{
		document.RenameNode{OldID: "a", NewID: "start"},
		document.DeleteNode{NodeID: "d"},
		document.MoveViewport{X: 1, Y: 2, Zoom: 1.5},
		document.AddEdge{Edge: process.Edge{From: "c", To: "start"}},
	}
	for _, a := range actions {
		if _, err := s.Dispatch(ctx, id, a); err != nil {
			t.Fatalf("Dispatch(%s) error: %v", a.Type(), err)
		}
	}

	h, err := s.History(ctx, id)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	var types []string
	for _, e := range h.Past {
		types = append(types, e.Type)
	}
	want := []string{document.TypeRenameNode, document.TypeDeleteNode, document.TypeAddEdge}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("past types mismatch (-want +got):\n%s", diff)
	}
	if !h.CanUndo || h.CanRedo {
		t.Errorf("CanUndo, CanRedo = %v, %v, want true, false", h.CanUndo, h.CanRedo)
	}

	ed, err := s.Jump(ctx, id, undo.Past, 0)
	if err != nil {
		t.Fatalf("Jump() error: %v", err)
	}
	hist := ed.History()
	if len(hist.Past) != 1 || len(hist.Future) != 2 {
		t.Errorf("after Jump(past, 0): past %d future %d, want 1 and 2", len(hist.Past), len(hist.Future))
	}
	if _, ok := ed.Document().Process.Node("d"); !ok {
		t.Error("node d should be back after jumping before its deletion")
	}

	ed, err = s.Clear(ctx, id)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if ed.CanUndo() || ed.CanRedo() {
		t.Error("history not empty after Clear()")
	}
}

func TestDispatchRejectedIsNotSaved(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)
	id, _ := s.Create(ctx, line())

	_, err := s.Dispatch(ctx, id, document.RenameNode{OldID: "a", NewID: "b"})
	if !perrors.Is(err, perrors.ErrCodeInvariantViolation) {
		t.Fatalf("Dispatch() error = %v, want INVARIANT_VIOLATION", err)
	}
	sum, _ := s.Get(ctx, id)
	if sum.Past != 0 {
		t.Errorf("rejected action was recorded: %+v", sum)
	}
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	catalog := connector.Catalog{
		{NodeMatcher: connector.NodeMatcher{Type: "Switch"}, Edges: []*connector.Spec{{Type: "true"}, {Type: "false"}}},
	}
	s := newService(t, catalog)
	id, _ := s.Create(ctx, line())

	avail, err := s.Connectors(ctx, id, "a")
	if err != nil {
		t.Fatalf("Connectors() error: %v", err)
	}
	if !avail.CanChooseNodes || len(avail.Connectors) != 2 {
		t.Errorf("Connectors() = %+v, want two typed connectors", avail)
	}

	// a -> b is untyped, so both typed connectors are still free.
	for _, want := range []string{"true", "false"} {
		e, err := s.Connect(ctx, id, "a", "c")
		if err != nil {
			t.Fatalf("Connect() error: %v", err)
		}
		if e.EdgeType == nil || e.EdgeType.Type != want {
			t.Errorf("Connect() edge type = %v, want %s", e.EdgeType, want)
		}
	}
	if _, err := s.Connect(ctx, id, "a", "d"); !perrors.Is(err, perrors.ErrCodeInvariantViolation) {
		t.Errorf("Connect() with all connectors used error = %v, want INVARIANT_VIOLATION", err)
	}

	if _, err := s.Connect(ctx, id, "b", "d"); !perrors.Is(err, perrors.ErrCodeInvariantViolation) {
		t.Errorf("Connect() from node with its untyped edge used error = %v, want INVARIANT_VIOLATION", err)
	}
	if _, err := s.Connect(ctx, id, "d", "a"); err != nil {
		t.Errorf("Connect() from node without edges error: %v", err)
	}
}

func TestMissingDocument(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	if _, err := s.Display(ctx, "nope", false); !perrors.IsNotFound(err) {
		t.Errorf("Display() error = %v, want not found", err)
	}
	if _, err := s.Undo(ctx, "nope"); !perrors.IsNotFound(err) {
		t.Errorf("Undo() error = %v, want not found", err)
	}
	if err := s.Delete(ctx, "nope"); !perrors.IsNotFound(err) {
		t.Errorf("Delete() error = %v, want not found", err)
	}
}

func TestCreateRejectsInvalidGroups(t *testing.T) {
	p := line().WithGroups([]process.Group{{ID: "g", NodeIDs: []string{"zz"}}})
	_, err := newService(t, nil).Create(context.Background(), p)
	if !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("Create() error = %v, want NOT_FOUND", err)
	}
}

func TestConcurrentDispatchIsSerialized(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)
	id, _ := s.Create(ctx, line())

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Dispatch(ctx, id, document.AddEdge{Edge: process.Edge{From: "d", To: "a"}}); err != nil {
				t.Errorf("Dispatch() error: %v", err)
			}
		}()
	}
	wg.Wait()

	sum, _ := s.Get(ctx, id)
	if sum.Past != n {
		t.Errorf("Past = %d, want %d (lost updates)", sum.Past, n)
	}
	if len(s.locks) != 0 {
		t.Errorf("%d document locks left behind", len(s.locks))
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)
	id1, _ := s.Create(ctx, line())
	id2, _ := s.Create(ctx, line())

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d, want 2", len(list))
	}
	if err := s.Delete(ctx, id1); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 1 || list[0].ID != id2 {
		t.Errorf("List() after delete = %+v, want only %s", list, id2)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("future"); err != nil || d != undo.Future {
		t.Errorf("ParseDirection(future) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("ParseDirection(sideways) error = %v, want INVALID_INPUT", err)
	}
}
