package quotient

import "github.com/matzehuels/procview/pkg/process"

// MergeParallel removes repeated edges with the same source, target and edge
// type, keeping the first occurrence. It is not applied by [Build] or
// [EdgesForDisplay]; callers opt in when they want one arrow per connection
// between collapsed groups.
func MergeParallel(edges []process.Edge) []process.Edge {
	type key struct {
		from, to, kind string
		typed          bool
	}
	seen := make(map[key]bool, len(edges))
	out := make([]process.Edge, 0, len(edges))
	for _, e := range edges {
		k := key{from: e.From, to: e.To}
		if e.EdgeType != nil {
			k.kind, k.typed = e.EdgeType.Type, true
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
