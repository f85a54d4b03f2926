// Package quotient collapses grouped nodes of a process into single group
// nodes for display.
//
// # Overview
//
// Given a [process.Process] and its group definitions, [NodesForDisplay]
// returns the nodes to draw and [EdgesForDisplay] returns the edges between
// them:
//
//   - Ungrouped nodes come first, in document order
//   - Each group becomes one node of type [GroupType], in group order,
//     carrying its members in the group's own order
//   - An edge between two members of the same group disappears
//   - An edge with a grouped endpoint is re-targeted to the group id
//
// A process without groups is returned as is (identity case).
//
// # Parallel edges
//
// Collapsing can turn distinct edges into parallel ones (two members of a
// group both pointing at the same outside node). They are kept, so the
// number of display edges always equals the number of boundary-crossing or
// ungrouped edges. [MergeParallel] removes them when a caller asks for it.
//
// # Usage
//
//	g := quotient.Build(p)
//	for _, n := range g.Nodes {
//	    if n.IsGroup() {
//	        fmt.Println(n.ID, n.MemberIDs)
//	    }
//	}
package quotient
