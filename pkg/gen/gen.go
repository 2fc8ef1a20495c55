// Package gen produces deterministic synthetic graphs for tests and
// benchmarks. Generated graphs are layered org-style forests with unique
// entity names, so two graphs generated from the same config merge onto
// each other entirely through path matching.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/agentstation/graphmerge/pkg/graph"
)

// Config controls the shape of a generated graph. Zero values fall back
// to a small default shape.
type Config struct {
	// Roots is the number of independent trees.
	Roots int

	// Depth is the number of levels below each root.
	Depth int

	// FanOut is the number of children per non-leaf entity.
	FanOut int

	// TransitionDensity is the number of transitions generated per
	// entity. Endpoints are chosen uniformly over all entities.
	TransitionDensity float64

	// Seed drives the deterministic random source.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.Roots <= 0 {
		c.Roots = 1
	}
	if c.Depth <= 0 {
		c.Depth = 3
	}
	if c.FanOut <= 0 {
		c.FanOut = 3
	}
	if c.TransitionDensity < 0 {
		c.TransitionDensity = 0
	}
	return c
}

var (
	adjectives = []string{"global", "core", "digital", "regional", "central", "emerging", "unified", "strategic"}
	nouns      = []string{"platform", "operations", "engineering", "research", "sales", "finance", "logistics", "support"}
)

// Generate builds a graph from the config. The same config always yields
// the same graph.
func Generate(cfg Config) *graph.Graph {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	g := graph.New()

	var ids []string
	newEntity := func(level int) string {
		id := fmt.Sprintf("e%d", len(ids)+1)
		// The ordinal keeps sibling names, and therefore paths, unique.
		name := fmt.Sprintf("%s %s %d",
			adjectives[rng.Intn(len(adjectives))],
			nouns[rng.Intn(len(nouns))],
			len(ids)+1)
		g.Entities[id] = &graph.Entity{
			Name:     name,
			Children: []string{},
			Properties: map[string]any{
				"level":  level,
				"weight": rng.Intn(100),
			},
		}
		ids = append(ids, id)
		return id
	}

	var grow func(parentID string, level int)
	grow = func(parentID string, level int) {
		if level > cfg.Depth {
			return
		}
		for i := 0; i < cfg.FanOut; i++ {
			childID := newEntity(level)
			parent := g.Entities[parentID]
			parent.Children = append(parent.Children, childID)
			grow(childID, level+1)
		}
	}

	for r := 0; r < cfg.Roots; r++ {
		rootID := newEntity(0)
		g.Roots = append(g.Roots, rootID)
		grow(rootID, 1)
	}

	transitions := int(float64(len(ids)) * cfg.TransitionDensity)
	for i := 0; i < transitions; i++ {
		g.Transitions[fmt.Sprintf("t%d", i+1)] = &graph.Transition{
			Source:     ids[rng.Intn(len(ids))],
			Target:     ids[rng.Intn(len(ids))],
			Properties: map[string]any{"weight": rng.Intn(100)},
		}
	}

	return g
}

// Relabel returns a deep copy of g with every entity and transition id
// carrying the given prefix. Names and properties are preserved, so a
// relabeled graph represents the same organization described by a
// different source system.
func Relabel(g *graph.Graph, prefix string) *graph.Graph {
	out := graph.New()

	for id, entity := range g.Entities {
		clone := entity.Clone()
		for i, childID := range clone.Children {
			clone.Children[i] = prefix + childID
		}
		out.Entities[prefix+id] = clone
	}
	for id, transition := range g.Transitions {
		clone := transition.Clone()
		clone.Source = prefix + clone.Source
		clone.Target = prefix + clone.Target
		out.Transitions[prefix+id] = clone
	}
	for _, rootID := range g.Roots {
		out.Roots = append(out.Roots, prefix+rootID)
	}

	return out
}
