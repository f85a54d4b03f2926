// Package process defines the process document model and the group registry
// operations that keep group definitions consistent with it.
//
// # Model
//
// A [Process] is an ordered list of [Node] values, an ordered list of [Edge]
// values and a properties area. Group definitions live in that area, at
// properties.additionalFields.groups; [Process.Groups] and
// [Process.WithGroups] read and write that nested location so callers never
// touch it directly.
//
// Nodes carry a tagged [Reference]: plain nodes have none, sub-process input
// nodes reference the sub-process they feed ("ref" on the wire) and service
// nodes reference the service they call ("service" on the wire). All other
// node fields are opaque and kept in [Node.Payload].
//
// # Group registry
//
// [CreateGroup], [EditGroup], [Ungroup], [RenameNodeEverywhere] and
// [RemoveNodeEverywhere] are total functions from a Process to a new Process.
// Only the group list changes, and it is always copied, so earlier values of
// a document stay valid. That is what lets an undo history keep many
// document snapshots by reference.
//
//	p = process.CreateGroup(p, []string{"filter", "enricher"})
//	// p.Groups() == []Group{{ID: "filter-enricher", NodeIDs: [filter enricher]}}
//
// A node may belong to at most one group. The operations do not enforce this;
// use [Validate] to check documents received from outside.
package process
