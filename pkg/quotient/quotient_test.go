package quotient

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/procview/pkg/process"
)

// newLine builds node1 -> node2 -> node3, which splits into node4 -> node6 -> node8
// and node5 -> node7.
func newLine(groups ...process.Group) process.Process {
	p := process.Process{
		Nodes: []process.Node{
			{ID: "node1"}, {ID: "node2"}, {ID: "node3"}, {ID: "node4"},
			{ID: "node5"}, {ID: "node6"}, {ID: "node7"}, {ID: "node8"},
		},
		Edges: []process.Edge{
			{From: "node1", To: "node2"},
			{From: "node2", To: "node3"},
			{From: "node3", To: "node4"},
			{From: "node3", To: "node5"},
			{From: "node4", To: "node6"},
			{From: "node5", To: "node7"},
			{From: "node6", To: "node8"},
		},
	}
	return p.WithGroups(groups)
}

func plain(ids ...string) []DisplayNode {
	out := make([]DisplayNode, len(ids))
	for i, id := range ids {
		out[i] = DisplayNode{Node: process.Node{ID: id}}
	}
	return out
}

func group(id string, members ...string) DisplayNode {
	nodes := make([]process.Node, len(members))
	for i, m := range members {
		nodes[i] = process.Node{ID: m}
	}
	return DisplayNode{
		Node:      process.Node{ID: id, Type: GroupType},
		Members:   nodes,
		MemberIDs: members,
	}
}

func edges(pairs ...[2]string) []process.Edge {
	out := make([]process.Edge, len(pairs))
	for i, p := range pairs {
		out[i] = process.Edge{From: p[0], To: p[1]}
	}
	return out
}

func TestNodesForDisplay(t *testing.T) {
	tests := []struct {
		name   string
		groups []process.Group
		want   []DisplayNode
	}{
		{
			name:   "no groups",
			groups: nil,
			want:   plain("node1", "node2", "node3", "node4", "node5", "node6", "node7", "node8"),
		},
		{
			name:   "group in line",
			groups: []process.Group{{ID: "group1", NodeIDs: []string{"node1", "node2"}}},
			want: append(plain("node3", "node4", "node5", "node6", "node7", "node8"),
				group("group1", "node1", "node2")),
		},
		{
			name: "two groups",
			groups: []process.Group{
				{ID: "group1", NodeIDs: []string{"node1", "node2"}},
				{ID: "group2", NodeIDs: []string{"node6", "node8"}},
			},
			want: append(plain("node3", "node4", "node5", "node7"),
				group("group1", "node1", "node2"),
				group("group2", "node6", "node8")),
		},
		{
			name:   "group with split",
			groups: []process.Group{{ID: "bigGroup", NodeIDs: []string{"node3", "node4", "node5", "node6"}}},
			want: append(plain("node1", "node2", "node7", "node8"),
				group("bigGroup", "node3", "node4", "node5", "node6")),
		},
		{
			name:   "group ending with split",
			groups: []process.Group{{ID: "bigGroup", NodeIDs: []string{"node1", "node2", "node3"}}},
			want: append(plain("node4", "node5", "node6", "node7", "node8"),
				group("bigGroup", "node1", "node2", "node3")),
		},
		{
			name:   "members follow group order",
			groups: []process.Group{{ID: "rev", NodeIDs: []string{"node8", "node7"}}},
			want: append(plain("node1", "node2", "node3", "node4", "node5", "node6"),
				group("rev", "node8", "node7")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NodesForDisplay(newLine(tt.groups...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NodesForDisplay() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEdgesForDisplay(t *testing.T) {
	tests := []struct {
		name   string
		groups []process.Group
		want   []process.Edge
	}{
		{
			name:   "no groups",
			groups: nil,
			want:   newLine().Edges,
		},
		{
			name:   "group in line",
			groups: []process.Group{{ID: "group1", NodeIDs: []string{"node1", "node2"}}},
			want: edges(
				[2]string{"group1", "node3"},
				[2]string{"node3", "node4"},
				[2]string{"node3", "node5"},
				[2]string{"node4", "node6"},
				[2]string{"node5", "node7"},
				[2]string{"node6", "node8"},
			),
		},
		{
			name: "two groups",
			groups: []process.Group{
				{ID: "group1", NodeIDs: []string{"node1", "node2"}},
				{ID: "group2", NodeIDs: []string{"node6", "node8"}},
			},
			want: edges(
				[2]string{"group1", "node3"},
				[2]string{"node3", "node4"},
				[2]string{"node3", "node5"},
				[2]string{"node4", "group2"},
				[2]string{"node5", "node7"},
			),
		},
		{
			name:   "group with split",
			groups: []process.Group{{ID: "bigGroup", NodeIDs: []string{"node3", "node4", "node5", "node6"}}},
			want: edges(
				[2]string{"node1", "node2"},
				[2]string{"node2", "bigGroup"},
				[2]string{"bigGroup", "node7"},
				[2]string{"bigGroup", "node8"},
			),
		},
		{
			name:   "group ending with split",
			groups: []process.Group{{ID: "bigGroup", NodeIDs: []string{"node1", "node2", "node3"}}},
			want: edges(
				[2]string{"bigGroup", "node4"},
				[2]string{"bigGroup", "node5"},
				[2]string{"node4", "node6"},
				[2]string{"node5", "node7"},
				[2]string{"node6", "node8"},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgesForDisplay(newLine(tt.groups...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EdgesForDisplay() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEdgesForDisplayPreservesPayload(t *testing.T) {
	p := newLine(process.Group{ID: "g", NodeIDs: []string{"node4", "node6"}})
	p.Edges[2].EdgeType = &process.EdgeType{Type: "SwitchNext"}
	p.Edges[2].Meta = map[string]any{"label": "big"}

	got := EdgesForDisplay(p)
	want := process.Edge{From: "node3", To: "g", EdgeType: &process.EdgeType{Type: "SwitchNext"}, Meta: map[string]any{"label": "big"}}
	if diff := cmp.Diff(want, got[2]); diff != "" {
		t.Errorf("re-targeted edge mismatch (-want +got):\n%s", diff)
	}
}

func TestEdgesForDisplayKeepsParallelEdges(t *testing.T) {
	p := newLine(process.Group{ID: "g", NodeIDs: []string{"node4", "node5"}})

	got := EdgesForDisplay(p)
	want := edges(
		[2]string{"node1", "node2"},
		[2]string{"node2", "node3"},
		[2]string{"node3", "g"},
		[2]string{"node3", "g"},
		[2]string{"g", "node6"},
		[2]string{"g", "node7"},
		[2]string{"node6", "node8"},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EdgesForDisplay() mismatch (-want +got):\n%s", diff)
	}

	merged := MergeParallel(got)
	if len(merged) != len(got)-1 {
		t.Errorf("MergeParallel() kept %d edges, want %d", len(merged), len(got)-1)
	}
}

func TestMergeParallelKeepsDistinctEdgeTypes(t *testing.T) {
	in := []process.Edge{
		{From: "a", To: "b", EdgeType: &process.EdgeType{Type: "true"}},
		{From: "a", To: "b", EdgeType: &process.EdgeType{Type: "false"}},
		{From: "a", To: "b"},
		{From: "a", To: "b", EdgeType: &process.EdgeType{Type: "true"}},
	}
	got := MergeParallel(in)
	if diff := cmp.Diff(in[:3], got); diff != "" {
		t.Errorf("MergeParallel() mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentityWithoutGroups(t *testing.T) {
	p := newLine()
	nodes := NodesForDisplay(p)
	if len(nodes) != len(p.Nodes) {
		t.Fatalf("node count = %d, want %d", len(nodes), len(p.Nodes))
	}
	for i, n := range nodes {
		if diff := cmp.Diff(p.Nodes[i], n.Node); diff != "" || n.Members != nil {
			t.Errorf("node %d not passed through (-want +got):\n%s", i, diff)
		}
	}
	if diff := cmp.Diff(p.Edges, EdgesForDisplay(p)); diff != "" {
		t.Errorf("edges not passed through (-want +got):\n%s", diff)
	}
}

func TestGroupedNodesLeaveUngroupedPrefix(t *testing.T) {
	g := process.Group{ID: "g", NodeIDs: []string{"node2", "node5", "node7"}}
	nodes := NodesForDisplay(newLine(g))

	for _, n := range nodes[:len(nodes)-1] {
		for _, id := range g.NodeIDs {
			if n.ID == id {
				t.Errorf("grouped node %s appears in ungrouped prefix", id)
			}
		}
	}
	last := nodes[len(nodes)-1]
	if !last.IsGroup() {
		t.Fatalf("last node %s is not a group", last.ID)
	}
	if diff := cmp.Diff(g.NodeIDs, last.MemberIDs); diff != "" {
		t.Errorf("member ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOriginalInputUntouched(t *testing.T) {
	p := newLine(process.Group{ID: "g", NodeIDs: []string{"node1", "node2"}})
	before := p.Clone()
	_ = Build(p)
	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("Build() modified its input (-want +got):\n%s", diff)
	}
}

func TestDisplayNodeJSON(t *testing.T) {
	g := Build(newLine(process.Group{ID: "group1", NodeIDs: []string{"node1", "node2"}}))
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var back Graph
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(g, back); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}

	var raw struct {
		Nodes []map[string]any `json:"nodes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() raw error: %v", err)
	}
	last := raw.Nodes[len(raw.Nodes)-1]
	if last["type"] != GroupType {
		t.Errorf("group node type = %v, want %s", last["type"], GroupType)
	}
	if ids, ok := last["ids"].([]any); !ok || len(ids) != 2 {
		t.Errorf("group node ids = %v, want two ids", last["ids"])
	}
}
