package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/graphmerge/pkg/graph"
	"github.com/agentstation/graphmerge/pkg/index"
)

// Paths are built from BFS attribution, so an entity claimed by two
// parents carries only its shallowest discoverer's path. A secondary
// graph that reaches the same entity through the other parent misses the
// path tier and must fall through to the parent-scoped tier.
func TestMatchByParentName(t *testing.T) {
	primary := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"root": {Name: "Org", Children: []string{"a", "b"}},
			"a":    {Name: "Alpha", Children: []string{"x"}},
			"b":    {Name: "Beta", Children: []string{"x"}},
			"x":    {Name: "Shared Team"},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"root"},
	}
	secondary := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"root2": {Name: "Org", Children: []string{"b2"}},
			"b2":    {Name: "Beta", Children: []string{"x2"}},
			"x2":    {Name: "Shared Team"},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"root2"},
	}

	result := mustMerge(t, primary, secondary)

	assert.Equal(t, "x", result.IDMap["x2"])
	assert.Equal(t, 3, result.Metadata.Stats.EntitiesMatched)
	assert.Equal(t, 0, result.Metadata.Stats.EntitiesInserted)
}

// When the secondary parent chain has no primary counterpart, a matching
// entity deeper down is still found by normalized name and level within
// the mapped root.
func TestMatchByRootNameLevel(t *testing.T) {
	primary := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"root": {Name: "Org", Children: []string{"a"}},
			"a":    {Name: "Alpha", Children: []string{"x"}},
			"x":    {Name: "Shared Team"},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"root"},
	}
	secondary := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"root2": {Name: "Org", Children: []string{"b2"}},
			"b2":    {Name: "Beta", Children: []string{"x2"}},
			"x2":    {Name: "Shared Team"},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"root2"},
	}

	result := mustMerge(t, primary, secondary)

	assert.Equal(t, "x", result.IDMap["x2"])
	// Beta has no counterpart at level 1 and is inserted; its child
	// reference resolves to the matched primary entity.
	assert.Equal(t, "b2", result.IDMap["b2"])
	assert.Equal(t, []string{"x"}, result.Graph.Entities["b2"].Children)
	assert.Equal(t, 1, result.Metadata.Stats.EntitiesInserted)
}

func TestPickCandidate(t *testing.T) {
	primary := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"r1":    {Name: "R One", Children: []string{"z_dup"}},
			"r2":    {Name: "R Two", Children: []string{"a_dup"}},
			"z_dup": {Name: "Dup"},
			"a_dup": {Name: "Dup"},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"r1", "r2"},
	}
	require.NoError(t, primary.Validate())

	tests := []struct {
		name       string
		idMap      map[string]string
		candidates []string
		want       string
	}{
		{
			name:       "no candidates",
			idMap:      map[string]string{},
			candidates: nil,
			want:       "",
		},
		{
			name:       "single candidate wins outright",
			idMap:      map[string]string{},
			candidates: []string{"z_dup"},
			want:       "z_dup",
		},
		{
			name:       "unmapped root falls back to smallest id",
			idMap:      map[string]string{},
			candidates: []string{"z_dup", "a_dup"},
			want:       "a_dup",
		},
		{
			name:       "same mapped root beats smaller id",
			idMap:      map[string]string{"sroot": "r1"},
			candidates: []string{"z_dup", "a_dup"},
			want:       "z_dup",
		},
		{
			name:       "mapped root agrees with smallest id",
			idMap:      map[string]string{"sroot": "r2"},
			candidates: []string{"z_dup", "a_dup"},
			want:       "a_dup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &mergeContext{
				primaryIdx: index.New(primary),
				idMap:      tt.idMap,
			}
			entry := &index.Entry{RootID: "sroot"}

			got, found := mc.pickCandidate(tt.candidates, entry)
			if tt.want == "" {
				assert.False(t, found)
				return
			}
			require.True(t, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
