// Package io reads and writes process documents as JSON files.
//
// # Format
//
// A process document has an id, a properties area, and node and edge arrays.
// Group definitions live at properties.additionalFields.groups:
//
//	{
//	  "id": "order",
//	  "properties": {
//	    "additionalFields": {
//	      "groups": [{"id": "checkout", "nodes": ["pay", "ship"]}]
//	    }
//	  },
//	  "nodes": [
//	    {"id": "start", "type": "Start"},
//	    {"id": "pay", "service": {"id": "payments"}},
//	    {"id": "ship", "ref": {"id": "shipping"}}
//	  ],
//	  "edges": [
//	    {"from": "start", "to": "pay"},
//	    {"from": "pay", "to": "ship", "edgeType": {"type": "NextSwitch"}}
//	  ]
//	}
//
// Node keys other than id, type, ref and service are kept as payload and
// written back unchanged, so import followed by export preserves the
// document.
//
// # Validation
//
// [ReadJSON] rejects duplicate node ids, edges to unknown nodes and group
// definitions that fail process.Validate. Documents built in code are not
// checked by [WriteJSON].
package io
