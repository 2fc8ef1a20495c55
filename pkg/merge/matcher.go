package merge

import (
	"slices"

	"github.com/agentstation/graphmerge/pkg/index"
)

// matchFunc is one tier of the matching strategy. Tiers are tried in
// order; the first tier that returns a candidate wins.
type matchFunc func(mc *mergeContext, entry *index.Entry) (string, bool)

// findMatch searches the primary graph for an entity equivalent to the
// given secondary entity. Entities without an index entry (unreachable
// from any root) never match.
func (mc *mergeContext) findMatch(secID string) (string, bool) {
	entry, ok := mc.secondaryIdx.Entry(secID)
	if !ok {
		return "", false
	}

	for _, match := range mc.matchers {
		if primaryID, found := match(mc, entry); found {
			return primaryID, true
		}
	}
	return "", false
}

// matchByPath matches on the exact normalized path string. Paths are
// built from names, not ids, so structurally parallel subtrees with
// identical names collide here on purpose.
func matchByPath(mc *mergeContext, entry *index.Entry) (string, bool) {
	return mc.primaryIdx.IDByPath(entry.Path)
}

// matchByParentName matches among the children of the secondary entity's
// already-mapped parent: any primary entity directly claimed as a child
// of that parent with the same normalized name is a candidate.
func matchByParentName(mc *mergeContext, entry *index.Entry) (string, bool) {
	if entry.ParentID == "" {
		return "", false
	}
	mappedParent, ok := mc.idMap[entry.ParentID]
	if !ok {
		return "", false
	}
	parent, ok := mc.result.Entities[mappedParent]
	if !ok {
		return "", false
	}

	var candidates []string
	for _, childID := range parent.Children {
		sibling, isPrimary := mc.primary.Entities[childID]
		if !isPrimary {
			continue
		}
		if sibling.NormalizedName() == entry.Name && !slices.Contains(candidates, childID) {
			candidates = append(candidates, childID)
		}
	}
	return mc.pickCandidate(candidates, entry)
}

// matchByRootNameLevel matches by normalized name and level among the
// primary entities attributed to the secondary entity's mapped root.
func matchByRootNameLevel(mc *mergeContext, entry *index.Entry) (string, bool) {
	mappedRoot, ok := mc.idMap[entry.RootID]
	if !ok {
		return "", false
	}

	var candidates []string
	for _, id := range mc.primaryIdx.ByNameAndLevel(entry.Name, entry.Level) {
		if mc.primaryIdx.InRoot(mappedRoot, id) {
			candidates = append(candidates, id)
		}
	}
	return mc.pickCandidate(candidates, entry)
}

// pickCandidate resolves multiple candidates deterministically: prefer a
// candidate attributed to the same mapped root as the secondary entity,
// then the lexicographically smallest id.
func (mc *mergeContext) pickCandidate(candidates []string, entry *index.Entry) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	slices.Sort(candidates)

	if mappedRoot, ok := mc.idMap[entry.RootID]; ok {
		for _, id := range candidates {
			if candidateEntry, indexed := mc.primaryIdx.Entry(id); indexed && candidateEntry.RootID == mappedRoot {
				return id, true
			}
		}
	}
	return candidates[0], true
}
