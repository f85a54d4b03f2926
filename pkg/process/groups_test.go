package process

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newLine(groups ...Group) Process {
	p := Process{
		ID: "line",
		Nodes: []Node{
			{ID: "node1"}, {ID: "node2"}, {ID: "node3"}, {ID: "node4"},
			{ID: "node5"}, {ID: "node6"}, {ID: "node7"}, {ID: "node8"},
		},
		Edges: []Edge{
			{From: "node1", To: "node2"},
			{From: "node2", To: "node3"},
			{From: "node3", To: "node4"},
			{From: "node3", To: "node5"},
			{From: "node4", To: "node6"},
			{From: "node5", To: "node7"},
			{From: "node6", To: "node8"},
		},
	}
	if groups == nil {
		groups = []Group{}
	}
	return p.WithGroups(groups)
}

func TestRenameNodeEverywhere(t *testing.T) {
	p := newLine(Group{ID: "bigGroup", NodeIDs: []string{"node1", "node2", "node3"}})

	got := RenameNodeEverywhere(p, "node1", "node1New").Groups()
	want := []Group{{ID: "bigGroup", NodeIDs: []string{"node1New", "node2", "node3"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenameNodeEverywhere() groups mismatch (-want +got):\n%s", diff)
	}

	// The input document must not change.
	if p.Groups()[0].NodeIDs[0] != "node1" {
		t.Errorf("input mutated: NodeIDs[0] = %q, want %q", p.Groups()[0].NodeIDs[0], "node1")
	}
}

func TestRenameNodeEverywhereLeavesOtherGroups(t *testing.T) {
	other := Group{ID: "g2", NodeIDs: []string{"node6", "node8"}}
	p := newLine(Group{ID: "g1", NodeIDs: []string{"node1", "node2"}}, other)

	got := RenameNodeEverywhere(p, "node2", "renamed").Groups()
	if diff := cmp.Diff(other, got[1]); diff != "" {
		t.Errorf("untouched group changed (-want +got):\n%s", diff)
	}
	if got[0].NodeIDs[1] != "renamed" {
		t.Errorf("NodeIDs[1] = %q, want %q", got[0].NodeIDs[1], "renamed")
	}
}

func TestRemoveNodeEverywhere(t *testing.T) {
	p := newLine(Group{ID: "bigGroup", NodeIDs: []string{"node1", "node2", "node3"}})

	got := RemoveNodeEverywhere(p, "node2").Groups()
	want := []Group{{ID: "bigGroup", NodeIDs: []string{"node1", "node3"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RemoveNodeEverywhere() groups mismatch (-want +got):\n%s", diff)
	}
	if len(p.Groups()[0].NodeIDs) != 3 {
		t.Errorf("input mutated: %d members, want 3", len(p.Groups()[0].NodeIDs))
	}
}

func TestRemoveNodeEverywhereKeepsSmallGroups(t *testing.T) {
	p := newLine(Group{ID: "pair", NodeIDs: []string{"node1", "node2"}})

	got := RemoveNodeEverywhere(RemoveNodeEverywhere(p, "node1"), "node2").Groups()
	if len(got) != 1 {
		t.Fatalf("group count = %d, want 1", len(got))
	}
	if len(got[0].NodeIDs) != 0 {
		t.Errorf("members = %v, want none", got[0].NodeIDs)
	}
}

func TestEditGroup(t *testing.T) {
	p := newLine(Group{ID: "bigGroup", NodeIDs: []string{"node1", "node2", "node3"}})

	got := EditGroup(p, "bigGroup", Group{ID: "bigGroupNew", NodeIDs: []string{"node4", "node5"}}).Groups()
	want := []Group{{ID: "bigGroupNew", NodeIDs: []string{"node4", "node5"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EditGroup() groups mismatch (-want +got):\n%s", diff)
	}
}

func TestEditGroupKeepsPosition(t *testing.T) {
	p := newLine(
		Group{ID: "a", NodeIDs: []string{"node1", "node2"}},
		Group{ID: "b", NodeIDs: []string{"node4", "node6"}},
		Group{ID: "c", NodeIDs: []string{"node7", "node8"}},
	)

	got := EditGroup(p, "b", Group{ID: "b2", NodeIDs: []string{"node4"}}).Groups()
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if diff := cmp.Diff([]string{"a", "b2", "c"}, ids); diff != "" {
		t.Errorf("group order mismatch (-want +got):\n%s", diff)
	}
}

func TestEditGroupMissingIsNoop(t *testing.T) {
	p := newLine(Group{ID: "a", NodeIDs: []string{"node1", "node2"}})

	got := EditGroup(p, "missing", Group{ID: "x", NodeIDs: []string{"node3"}})
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("EditGroup() on missing id changed process (-want +got):\n%s", diff)
	}
}

func TestCreateGroup(t *testing.T) {
	p := newLine()

	got := CreateGroup(p, []string{"node1", "node2", "node3"}).Groups()
	want := []Group{{ID: "node1-node2-node3", NodeIDs: []string{"node1", "node2", "node3"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CreateGroup() groups mismatch (-want +got):\n%s", diff)
	}
	if len(p.Groups()) != 0 {
		t.Errorf("input mutated: %d groups, want 0", len(p.Groups()))
	}
}

func TestCreateGroupAppends(t *testing.T) {
	p := newLine(Group{ID: "first", NodeIDs: []string{"node1"}})

	got := CreateGroup(p, []string{"node5", "node7"}).Groups()
	if len(got) != 2 || got[1].ID != "node5-node7" {
		t.Errorf("groups = %+v, want new group appended last", got)
	}
}

func TestUngroup(t *testing.T) {
	p := newLine(Group{ID: "bigGroup", NodeIDs: []string{"node1", "node2", "node3"}})

	got := Ungroup(p, "bigGroup").Groups()
	if len(got) != 0 {
		t.Errorf("Ungroup() groups = %+v, want empty", got)
	}
}

func TestUngroupMissingIsNoop(t *testing.T) {
	p := newLine(Group{ID: "a", NodeIDs: []string{"node1"}})
	if diff := cmp.Diff(p, Ungroup(p, "zzz")); diff != "" {
		t.Errorf("Ungroup() on missing id changed process (-want +got):\n%s", diff)
	}
}

func TestCreateThenUngroupRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		groups []Group
	}{
		{"no groups", nil},
		{"existing groups", []Group{{ID: "g", NodeIDs: []string{"node7", "node8"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newLine(tt.groups...)
			members := []string{"node1", "node2"}
			created := CreateGroup(p, members)
			restored := Ungroup(created, "node1-node2")

			if diff := cmp.Diff(p.Groups(), restored.Groups(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupOf(t *testing.T) {
	p := newLine(Group{ID: "g1", NodeIDs: []string{"node1", "node2"}})

	if g, ok := GroupOf(p, "node2"); !ok || g.ID != "g1" {
		t.Errorf("GroupOf(node2) = %v, %v, want g1, true", g.ID, ok)
	}
	if _, ok := GroupOf(p, "node3"); ok {
		t.Error("GroupOf(node3) found a group, want none")
	}
	if _, ok := FindGroup(p, "g1"); !ok {
		t.Error("FindGroup(g1) = false, want true")
	}
}
