// Package merge implements the graph merge engine: it deduplicates
// entities across a primary and a secondary graph through tiered
// structural matching, reconciles properties and children under an
// explicit conflict policy, remaps all references through the resulting
// ID map, and validates referential integrity of the output.
//
// The merge never mutates either input graph. Entities and transitions
// that are neither matched nor rewritten are shared by reference between
// the primary graph and the result.
package merge

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/graphmerge/pkg/errors"
	"github.com/agentstation/graphmerge/pkg/graph"
	"github.com/agentstation/graphmerge/pkg/index"
	"github.com/agentstation/graphmerge/pkg/logging"
)

// Merger merges two hierarchical entity graphs into one.
type Merger interface {
	// Merge merges secondary into a copy of primary and returns the
	// merged graph together with the ID map, warnings, and statistics.
	// Neither input graph is mutated.
	Merge(ctx context.Context, primary, secondary *graph.Graph) (*Result, error)
}

// merger is the default implementation of Merger.
type merger struct {
	policy Policy
}

// New creates a new Merger with options.
func New(opts ...Option) (Merger, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &merger{policy: options.policy}, nil
}

// mergeContext holds the call-scoped working state of one merge. Nothing
// in it survives the call: indexes, ID map, and clone tracking are built
// fresh every time.
type mergeContext struct {
	primary      *graph.Graph
	secondary    *graph.Graph
	result       *graph.Graph
	primaryIdx   *index.Index
	secondaryIdx *index.Index

	// idMap maps secondary ids to their resolved result ids.
	idMap map[string]string

	// clonedEntities marks result entities already safe to mutate.
	// Everything else is shared by pointer with the primary graph.
	clonedEntities    map[string]bool
	clonedTransitions map[string]bool

	// pending holds child references to secondary entities that were not
	// yet resolved when their parent was processed (forward references).
	// They are appended after every secondary entity has a mapping, so a
	// secondary id is never confused with an identical primary id.
	pending []pendingChild

	matchers []matchFunc
	policy   Policy
	res      *Result
	logger   *zerolog.Logger
}

// Merge implements the Merger interface.
func (m *merger) Merge(ctx context.Context, primary, secondary *graph.Graph) (*Result, error) {
	logger := logging.FromContext(ctx)

	if err := primary.Validate(); err != nil {
		return nil, err
	}
	if err := secondary.Validate(); err != nil {
		return nil, err
	}

	res := newResult(m.policy)

	mc := &mergeContext{
		primary:           primary,
		secondary:         secondary,
		result:            primary.Clone(),
		primaryIdx:        index.New(primary),
		secondaryIdx:      index.New(secondary),
		idMap:             res.IDMap,
		clonedEntities:    make(map[string]bool),
		clonedTransitions: make(map[string]bool),
		policy:            m.policy,
		res:               res,
		logger:            logger,
	}
	mc.matchers = []matchFunc{matchByPath, matchByParentName, matchByRootNameLevel}

	res.Warnings = append(res.Warnings, mc.primaryIdx.Warnings()...)
	res.Warnings = append(res.Warnings, mc.secondaryIdx.Warnings()...)

	logger.Info().
		Int("primary_entities", len(primary.Entities)).
		Int("secondary_entities", len(secondary.Entities)).
		Str("policy", m.policy.String()).
		Msg("Merging graphs")

	// Secondary entities in BFS (root-to-leaf) order, so a child's
	// parent-scoped match can rely on its parent already being mapped.
	for _, secID := range mc.secondaryIdx.Order() {
		mc.mergeEntity(secID)
	}

	// Entities unreachable from any secondary root carry no hierarchy
	// attributes, so no matcher tier applies; they are inserted as new.
	for _, secID := range secondary.EntityIDs() {
		if _, indexed := mc.secondaryIdx.Entry(secID); indexed {
			continue
		}
		mc.warn(graph.WarnUnreachable, secID, "")
		mc.insertEntity(secID)
	}

	mc.resolvePending()
	mc.mergeTransitions()
	mc.mergeRoots()

	res.Warnings = append(res.Warnings, finalizeGraph(mc.result, mc.mutableEntity)...)

	if err := verifyIntegrity(mc.result); err != nil {
		return nil, err
	}

	res.Graph = mc.result
	res.finalize()

	logger.Info().
		Int("entities", len(res.Graph.Entities)).
		Int("transitions", len(res.Graph.Transitions)).
		Int("warnings", len(res.Warnings)).
		Dur("duration", res.Metadata.Duration).
		Msg("Merge complete")

	return res, nil
}

// mergeEntity resolves one indexed secondary entity: merge into its
// matched primary entity, or insert it as new.
func (mc *mergeContext) mergeEntity(secID string) {
	if _, done := mc.idMap[secID]; done {
		return
	}

	matchID, found := mc.findMatch(secID)
	if !found {
		mc.insertEntity(secID)
		return
	}

	mc.idMap[secID] = matchID
	mc.res.Metadata.Stats.EntitiesMatched++

	secondary := mc.secondary.Entities[secID]
	merged := mc.mutableEntity(matchID)

	mergeProperties(merged.Properties, secondary.Properties, mc.policy)

	// Children are always unioned, never overwritten.
	for _, childID := range secondary.Children {
		mc.appendChild(matchID, childID, merged)
	}

	mc.logger.Debug().
		Str("secondary_id", secID).
		Str("matched_id", matchID).
		Msg("Merged matched entity")
}

// insertEntity adds an unmatched secondary entity to the result under a
// collision-free id.
func (mc *mergeContext) insertEntity(secID string) {
	newID := graph.UniqueID(secID, mc.result.HasEntity)
	mc.idMap[secID] = newID
	if newID != secID {
		mc.res.Metadata.Stats.EntitiesRenamed++
		mc.logger.Debug().
			Str("secondary_id", secID).
			Str("renamed_id", newID).
			Msg("Renamed colliding entity id")
	}

	inserted := mc.secondary.Entities[secID].Clone()
	children := inserted.Children
	inserted.Children = inserted.Children[:0]

	mc.result.Entities[newID] = inserted
	mc.clonedEntities[newID] = true
	mc.res.Metadata.Stats.EntitiesInserted++

	for _, childID := range children {
		mc.appendChild(newID, childID, inserted)
	}
}

// pendingChild is a forward reference: owner's child pointed at a
// secondary entity that had no mapping yet when owner was processed.
type pendingChild struct {
	owner string // result entity id
	secID string // unresolved secondary entity id
}

// appendChild adds a secondary child reference to a result entity,
// translating it through the ID map when the child is already resolved
// and deferring it otherwise.
func (mc *mergeContext) appendChild(ownerID, secChildID string, owner *graph.Entity) {
	if mapped, resolved := mc.idMap[secChildID]; resolved {
		if !slices.Contains(owner.Children, mapped) {
			owner.Children = append(owner.Children, mapped)
		}
		return
	}
	mc.pending = append(mc.pending, pendingChild{owner: ownerID, secID: secChildID})
}

// resolvePending appends the deferred forward references now that every
// secondary entity has a mapping. References that still do not resolve
// keep the raw secondary id and are left for finalization to drop.
func (mc *mergeContext) resolvePending() {
	for _, ref := range mc.pending {
		mapped := mc.mapped(ref.secID)
		owner := mc.mutableEntity(ref.owner)
		if !slices.Contains(owner.Children, mapped) {
			owner.Children = append(owner.Children, mapped)
		}
	}
	mc.pending = nil
}

// mergeTransitions dedupes transitions by their mapped endpoint pair and
// inserts the rest under collision-free ids.
func (mc *mergeContext) mergeTransitions() {
	type pair struct{ source, target string }
	byEndpoints := make(map[pair]string, len(mc.result.Transitions))

	for _, id := range mc.primary.TransitionIDs() {
		t := mc.primary.Transitions[id]
		key := pair{source: t.Source, target: t.Target}
		if _, exists := byEndpoints[key]; !exists {
			byEndpoints[key] = id
		}
	}

	for _, id := range mc.secondary.TransitionIDs() {
		t := mc.secondary.Transitions[id]

		if t.Source == "" || t.Target == "" {
			mc.warn(graph.WarnMissingEndpoint, id, "")
			mc.res.Metadata.Stats.TransitionsDropped++
			continue
		}

		key := pair{source: mc.mapped(t.Source), target: mc.mapped(t.Target)}

		if existingID, exists := byEndpoints[key]; exists {
			existing := mc.mutableTransition(existingID)
			mergeProperties(existing.Properties, t.Properties, mc.policy)
			mc.res.Metadata.Stats.TransitionsMerged++
			continue
		}

		if !mc.result.HasEntity(key.source) || !mc.result.HasEntity(key.target) {
			ref := key.source
			if mc.result.HasEntity(key.source) {
				ref = key.target
			}
			mc.warn(graph.WarnDanglingTransition, id, ref)
			mc.res.Metadata.Stats.TransitionsDropped++
			continue
		}

		newID := graph.UniqueID(id, func(candidate string) bool {
			_, taken := mc.result.Transitions[candidate]
			return taken
		})
		mc.result.Transitions[newID] = &graph.Transition{
			Source:     key.source,
			Target:     key.target,
			Properties: cloneProperties(t.Properties),
		}
		mc.clonedTransitions[newID] = true
		byEndpoints[key] = newID
		mc.res.Metadata.Stats.TransitionsInserted++
	}
}

// mergeRoots unions the primary roots with every secondary root whose
// mapped-or-own id survived into the result.
func (mc *mergeContext) mergeRoots() {
	roots := slices.Clone(mc.primary.Roots)
	for _, rootID := range mc.secondary.Roots {
		mapped := mc.mapped(rootID)
		if mc.result.HasEntity(mapped) && !slices.Contains(roots, mapped) {
			roots = append(roots, mapped)
		}
	}
	mc.result.Roots = roots
}

// mapped resolves an id through the ID map, returning it unchanged when
// no mapping has been recorded.
func (mc *mergeContext) mapped(id string) string {
	if mapped, ok := mc.idMap[id]; ok {
		return mapped
	}
	return id
}

// mutableEntity returns a result entity that is safe to mutate, cloning
// it away from the shared primary graph on first use.
func (mc *mergeContext) mutableEntity(id string) *graph.Entity {
	if !mc.clonedEntities[id] {
		mc.result.Entities[id] = mc.result.Entities[id].Clone()
		mc.clonedEntities[id] = true
	}
	return mc.result.Entities[id]
}

// mutableTransition returns a result transition that is safe to mutate.
func (mc *mergeContext) mutableTransition(id string) *graph.Transition {
	if !mc.clonedTransitions[id] {
		mc.result.Transitions[id] = mc.result.Transitions[id].Clone()
		mc.clonedTransitions[id] = true
	}
	return mc.result.Transitions[id]
}

func (mc *mergeContext) warn(kind graph.WarningKind, id, ref string) {
	mc.res.Warnings = append(mc.res.Warnings, graph.Warning{Kind: kind, ID: id, Ref: ref})
	mc.logger.Debug().
		Str("kind", string(kind)).
		Str("id", id).
		Str("ref", ref).
		Msg("Recovered structural inconsistency")
}

func cloneProperties(properties map[string]any) map[string]any {
	clone := make(map[string]any, len(properties))
	for key, value := range properties {
		clone[key] = value
	}
	return clone
}

// verifyIntegrity checks the output invariants after finalization. A
// violation here is a merger bug, not bad input.
func verifyIntegrity(g *graph.Graph) error {
	for id, entity := range g.Entities {
		for _, childID := range entity.Children {
			if !g.HasEntity(childID) {
				return &errors.IntegrityError{Kind: "child", ID: id, Ref: childID}
			}
		}
	}
	for id, t := range g.Transitions {
		if !g.HasEntity(t.Source) {
			return &errors.IntegrityError{Kind: "transition", ID: id, Ref: t.Source}
		}
		if !g.HasEntity(t.Target) {
			return &errors.IntegrityError{Kind: "transition", ID: id, Ref: t.Target}
		}
	}
	for _, rootID := range g.Roots {
		if !g.HasEntity(rootID) {
			return &errors.IntegrityError{Kind: "root", ID: rootID, Ref: rootID}
		}
	}
	return nil
}
