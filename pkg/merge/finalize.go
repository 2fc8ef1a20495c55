package merge

import (
	"github.com/agentstation/graphmerge/pkg/graph"
	"github.com/agentstation/graphmerge/pkg/logging"
)

// Finalize is the single source of truth for referential integrity: it
// drops every child reference, transition, and root that does not
// resolve to an entity, returning a warning per drop. It is idempotent
// and mutates g in place; g must be owned by the caller.
//
// Merge output has already been finalized. Calling Finalize again on a
// merged graph is a no-op that returns no warnings.
func Finalize(g *graph.Graph) []graph.Warning {
	return finalizeGraph(g, func(id string) *graph.Entity { return g.Entities[id] })
}

// finalizeGraph implements Finalize with a pluggable entity accessor so
// the merge path can route mutations through its clone-on-write helper.
func finalizeGraph(g *graph.Graph, mutable func(id string) *graph.Entity) []graph.Warning {
	var warnings []graph.Warning
	logger := logging.Default()

	for _, id := range g.EntityIDs() {
		entity := g.Entities[id]
		dangling := false
		for _, childID := range entity.Children {
			if !g.HasEntity(childID) {
				dangling = true
				warnings = append(warnings, graph.Warning{Kind: graph.WarnDanglingChild, ID: id, Ref: childID})
				logger.Warn().
					Str("entity_id", id).
					Str("child_id", childID).
					Msg("Dropping dangling child reference")
			}
		}
		if dangling {
			kept := make([]string, 0, len(entity.Children))
			for _, childID := range entity.Children {
				if g.HasEntity(childID) {
					kept = append(kept, childID)
				}
			}
			mutable(id).Children = kept
		}
	}

	for _, id := range g.TransitionIDs() {
		t := g.Transitions[id]
		ref := ""
		switch {
		case !g.HasEntity(t.Source):
			ref = t.Source
		case !g.HasEntity(t.Target):
			ref = t.Target
		default:
			continue
		}
		warnings = append(warnings, graph.Warning{Kind: graph.WarnDanglingTransition, ID: id, Ref: ref})
		logger.Warn().
			Str("transition_id", id).
			Str("endpoint", ref).
			Msg("Dropping transition with missing endpoint")
		delete(g.Transitions, id)
	}

	kept := g.Roots[:0:0]
	for _, rootID := range g.Roots {
		if g.HasEntity(rootID) {
			kept = append(kept, rootID)
		} else {
			warnings = append(warnings, graph.Warning{Kind: graph.WarnDanglingRoot, ID: rootID})
			logger.Warn().
				Str("root_id", rootID).
				Msg("Dropping root missing from entities")
		}
	}
	if len(kept) != len(g.Roots) {
		g.Roots = kept
	}

	return warnings
}
