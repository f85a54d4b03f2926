package connector_test

import (
	"fmt"

	"github.com/matzehuels/procview/pkg/connector"
	"github.com/matzehuels/procview/pkg/process"
)

func ExamplePickUnusedConnector() {
	catalog := connector.Catalog{
		{NodeMatcher: connector.NodeMatcher{Type: "Switch"}, Edges: []*connector.Spec{{Type: "true"}, {Type: "false"}}},
	}
	node := process.Node{ID: "check", Type: "Switch"}
	edges := []process.Edge{{From: "check", To: "ok", EdgeType: &process.EdgeType{Type: "true"}}}

	spec, ok := connector.PickUnusedConnector(edges, node, catalog)
	fmt.Println(spec.Type, ok)
	// Output: false true
}
