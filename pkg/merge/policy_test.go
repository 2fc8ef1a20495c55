package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyValid(t *testing.T) {
	assert.True(t, PolicyPrimaryWins.valid())
	assert.True(t, PolicySecondaryWins.valid())
	assert.False(t, Policy("").valid())
	assert.False(t, Policy("coin-flip").valid())
}

func TestMergeProperties(t *testing.T) {
	tests := []struct {
		name   string
		dst    map[string]any
		src    map[string]any
		policy Policy
		want   map[string]any
	}{
		{
			name:   "primary wins keeps existing values",
			dst:    map[string]any{"lead": "ann"},
			src:    map[string]any{"lead": "bob", "size": 5},
			policy: PolicyPrimaryWins,
			want:   map[string]any{"lead": "ann", "size": 5},
		},
		{
			name:   "secondary wins overwrites",
			dst:    map[string]any{"lead": "ann"},
			src:    map[string]any{"lead": "bob", "size": 5},
			policy: PolicySecondaryWins,
			want:   map[string]any{"lead": "bob", "size": 5},
		},
		{
			name:   "empty source is a no-op",
			dst:    map[string]any{"lead": "ann"},
			src:    map[string]any{},
			policy: PolicySecondaryWins,
			want:   map[string]any{"lead": "ann"},
		},
		{
			name:   "empty destination takes all",
			dst:    map[string]any{},
			src:    map[string]any{"lead": "bob"},
			policy: PolicyPrimaryWins,
			want:   map[string]any{"lead": "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mergeProperties(tt.dst, tt.src, tt.policy)
			assert.Equal(t, tt.want, tt.dst)
		})
	}
}
