package process

import (
	"slices"
	"strings"
)

// GroupIDSeparator joins member ids into the id of a newly created group.
const GroupIDSeparator = "-"

// RenameNodeEverywhere replaces oldID with newID in every group that lists
// it, keeping its position. Groups that do not contain oldID are untouched.
func RenameNodeEverywhere(p Process, oldID, newID string) Process {
	return mapGroups(p, func(g Group) Group {
		if !slices.Contains(g.NodeIDs, oldID) {
			return g
		}
		ids := slices.Clone(g.NodeIDs)
		for i, id := range ids {
			if id == oldID {
				ids[i] = newID
			}
		}
		return Group{ID: g.ID, NodeIDs: ids}
	})
}

// RemoveNodeEverywhere deletes nodeID from every group that lists it. The
// remaining members keep their relative order. Groups left with fewer than
// two members are kept as they are.
func RemoveNodeEverywhere(p Process, nodeID string) Process {
	return mapGroups(p, func(g Group) Group {
		if !slices.Contains(g.NodeIDs, nodeID) {
			return g
		}
		ids := slices.DeleteFunc(slices.Clone(g.NodeIDs), func(id string) bool { return id == nodeID })
		return Group{ID: g.ID, NodeIDs: ids}
	})
}

// EditGroup replaces the group identified by groupID with def, at the same
// position. If no group has that id, p is returned unchanged.
func EditGroup(p Process, groupID string, def Group) Process {
	i := slices.IndexFunc(p.Groups(), func(g Group) bool { return g.ID == groupID })
	if i < 0 {
		return p
	}
	groups := slices.Clone(p.Groups())
	groups[i] = Group{ID: def.ID, NodeIDs: slices.Clone(def.NodeIDs)}
	return p.WithGroups(groups)
}

// CreateGroup appends a group of nodeIDs whose id is the member ids joined
// with [GroupIDSeparator]. Callers must make sure none of the nodes already
// belongs to another group.
func CreateGroup(p Process, nodeIDs []string) Process {
	g := Group{ID: strings.Join(nodeIDs, GroupIDSeparator), NodeIDs: slices.Clone(nodeIDs)}
	groups := make([]Group, 0, len(p.Groups())+1)
	groups = append(groups, p.Groups()...)
	return p.WithGroups(append(groups, g))
}

// Ungroup removes the group with the given id. If there is none, p is
// returned unchanged.
func Ungroup(p Process, groupID string) Process {
	if !slices.ContainsFunc(p.Groups(), func(g Group) bool { return g.ID == groupID }) {
		return p
	}
	groups := slices.DeleteFunc(slices.Clone(p.Groups()), func(g Group) bool { return g.ID == groupID })
	return p.WithGroups(groups)
}

// FindGroup returns the group with the given id.
func FindGroup(p Process, groupID string) (Group, bool) {
	for _, g := range p.Groups() {
		if g.ID == groupID {
			return g, true
		}
	}
	return Group{}, false
}

// GroupOf returns the first group that lists nodeID as a member.
func GroupOf(p Process, nodeID string) (Group, bool) {
	for _, g := range p.Groups() {
		if slices.Contains(g.NodeIDs, nodeID) {
			return g, true
		}
	}
	return Group{}, false
}

// mapGroups applies fn to every group and returns a process carrying the
// results. The group slice is always copied so p is never modified.
func mapGroups(p Process, fn func(Group) Group) Process {
	if p.Groups() == nil {
		return p
	}
	groups := make([]Group, len(p.Groups()))
	for i, g := range p.Groups() {
		groups[i] = fn(g)
	}
	return p.WithGroups(groups)
}
