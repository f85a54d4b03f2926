package process

import (
	perrors "github.com/matzehuels/procview/pkg/errors"
)

// Validate checks the group definitions of p against its nodes.
//
// The group operations in this package never fail; they leave malformed
// documents malformed. Validate is the opt-in hardening step for callers that
// accept documents from outside. It returns:
//
//   - INVALID_GROUP_ID when a group id is empty or malformed
//   - INVARIANT_VIOLATION when two groups share an id or a node is listed in
//     more than one group (or twice in the same group)
//   - NOT_FOUND when a group lists a node id that is not in p.Nodes
//
// Only the first problem found is reported.
func Validate(p Process) error {
	nodes := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes[n.ID] = true
	}

	groupIDs := make(map[string]bool, len(p.Groups()))
	owner := make(map[string]string)
	for _, g := range p.Groups() {
		if err := perrors.ValidateGroupID(g.ID); err != nil {
			return err
		}
		if groupIDs[g.ID] {
			return perrors.New(perrors.ErrCodeInvariantViolation, "duplicate group id %q", g.ID)
		}
		groupIDs[g.ID] = true

		for _, id := range g.NodeIDs {
			if prev, ok := owner[id]; ok {
				return perrors.New(perrors.ErrCodeInvariantViolation,
					"node %q is a member of both %q and %q", id, prev, g.ID)
			}
			owner[id] = g.ID
			if !nodes[id] {
				return perrors.New(perrors.ErrCodeNotFound, "group %q references unknown node %q", g.ID, id)
			}
		}
	}
	return nil
}
