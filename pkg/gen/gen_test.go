package gen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/graphmerge/pkg/index"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Roots: 2, Depth: 3, FanOut: 2, TransitionDensity: 0.5, Seed: 42}

	first := Generate(cfg)
	second := Generate(cfg)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestGenerateShape(t *testing.T) {
	g := Generate(Config{Roots: 2, Depth: 2, FanOut: 3, Seed: 7})
	require.NoError(t, g.Validate())

	// Per root: 1 + 3 + 9 entities.
	assert.Len(t, g.Entities, 2*13)
	assert.Len(t, g.Roots, 2)
	assert.Empty(t, g.Transitions)

	// Unique names give a fully indexable forest with no warnings.
	idx := index.New(g)
	assert.Equal(t, len(g.Entities), idx.Len())
	assert.Empty(t, idx.Warnings())
}

func TestGenerateTransitionDensity(t *testing.T) {
	g := Generate(Config{Roots: 1, Depth: 2, FanOut: 2, TransitionDensity: 1, Seed: 3})
	require.NoError(t, g.Validate())

	assert.Len(t, g.Transitions, len(g.Entities))
}

func TestRelabel(t *testing.T) {
	g := Generate(Config{Roots: 1, Depth: 2, FanOut: 2, Seed: 11})

	relabeled := Relabel(g, "s_")
	require.NoError(t, relabeled.Validate())

	require.Len(t, relabeled.Entities, len(g.Entities))
	for id, entity := range g.Entities {
		counterpart, ok := relabeled.Entities["s_"+id]
		require.True(t, ok)
		assert.Equal(t, entity.Name, counterpart.Name)
	}
	for _, rootID := range relabeled.Roots {
		assert.Contains(t, relabeled.Entities, rootID)
	}

	// The source graph keeps its own ids.
	for id := range g.Entities {
		assert.NotContains(t, id, "s_")
	}
}
