// Package connector resolves which edge kinds a node may emit.
//
// A [Catalog] comes from the process definition and maps node types (and
// optionally a referenced sub-process or service id) to an ordered list of
// connector kinds. [AvailableConnectors] finds the entry for a node and
// [PickUnusedConnector] chooses the kind a newly drawn edge should get.
//
// On the wire a catalog entry looks like:
//
//	{"nodeId": {"type": "SubprocessInput", "id": "sub1"}, "edges": [{"type": "edge3"}]}
//
// An edges list of [null] means the node has exactly one untyped outgoing
// edge and the user cannot choose its kind.
package connector
