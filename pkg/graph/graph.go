// Package graph defines the hierarchical entity graph model: entities
// with child references, lateral transitions, and root entities. It is
// the common currency of the indexer, merger, and report generator.
package graph

import (
	"maps"
	"slices"

	"github.com/agentstation/graphmerge/pkg/errors"
)

// PathSeparator joins normalized entity names into path strings.
const PathSeparator = "/"

// Entity is a node in the hierarchical graph. The hierarchy is expressed
// exclusively through Children; Properties are opaque key/value data
// supplied by the property template service.
type Entity struct {
	Name       string         `json:"name" yaml:"name"`
	Children   []string       `json:"children" yaml:"children"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Transition is a lateral, non-hierarchical directed edge between two
// entities, carrying its own property map.
type Transition struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Graph is a rooted forest of entities plus lateral transitions.
type Graph struct {
	Entities    map[string]*Entity     `json:"entities" yaml:"entities"`
	Transitions map[string]*Transition `json:"transitions" yaml:"transitions"`
	Roots       []string               `json:"roots" yaml:"roots"`
}

// New returns an empty, well-formed graph.
func New() *Graph {
	return &Graph{
		Entities:    make(map[string]*Entity),
		Transitions: make(map[string]*Transition),
		Roots:       []string{},
	}
}

// Validate checks the required top-level fields, coerces missing entity
// children/properties to empty containers, and rejects graphs with
// missing containers. Every other component assumes its input graph has
// passed this check.
func (g *Graph) Validate() error {
	if g == nil {
		return errors.NewValidationError("graph", nil, "graph is nil")
	}
	if g.Entities == nil {
		return errors.NewValidationError("entities", nil, "required field is missing")
	}
	if g.Transitions == nil {
		return errors.NewValidationError("transitions", nil, "required field is missing")
	}
	if g.Roots == nil {
		return errors.NewValidationError("roots", nil, "required field is missing")
	}

	for id, entity := range g.Entities {
		if id == "" {
			return errors.NewValidationError("entities", id, "entity id must not be empty")
		}
		if entity == nil {
			return errors.NewValidationError("entities", id, "entity must not be null")
		}
		if entity.Children == nil {
			entity.Children = []string{}
		}
		if entity.Properties == nil {
			entity.Properties = map[string]any{}
		}
	}

	for id, transition := range g.Transitions {
		if id == "" {
			return errors.NewValidationError("transitions", id, "transition id must not be empty")
		}
		if transition == nil {
			return errors.NewValidationError("transitions", id, "transition must not be null")
		}
		if transition.Properties == nil {
			transition.Properties = map[string]any{}
		}
	}

	return nil
}

// HasEntity reports whether id is a key of Entities.
func (g *Graph) HasEntity(id string) bool {
	_, ok := g.Entities[id]
	return ok
}

// EntityIDs returns all entity ids in sorted order.
func (g *Graph) EntityIDs() []string {
	ids := slices.Collect(maps.Keys(g.Entities))
	slices.Sort(ids)
	return ids
}

// TransitionIDs returns all transition ids in sorted order.
func (g *Graph) TransitionIDs() []string {
	ids := slices.Collect(maps.Keys(g.Transitions))
	slices.Sort(ids)
	return ids
}

// Clone returns a shallow copy of the graph: fresh top-level containers
// that share Entity and Transition values by pointer. Callers that need
// to mutate a shared entity must replace it with entity.Clone() first.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Entities:    make(map[string]*Entity, len(g.Entities)),
		Transitions: make(map[string]*Transition, len(g.Transitions)),
		Roots:       slices.Clone(g.Roots),
	}
	maps.Copy(clone.Entities, g.Entities)
	maps.Copy(clone.Transitions, g.Transitions)
	return clone
}

// Clone returns a copy of the entity with its own children slice and
// properties map. Property values remain shared; they are treated as
// opaque and never mutated.
func (e *Entity) Clone() *Entity {
	clone := &Entity{
		Name:       e.Name,
		Children:   slices.Clone(e.Children),
		Properties: make(map[string]any, len(e.Properties)),
	}
	maps.Copy(clone.Properties, e.Properties)
	return clone
}

// Clone returns a copy of the transition with its own properties map.
func (t *Transition) Clone() *Transition {
	clone := &Transition{
		Source:     t.Source,
		Target:     t.Target,
		Properties: make(map[string]any, len(t.Properties)),
	}
	maps.Copy(clone.Properties, t.Properties)
	return clone
}
