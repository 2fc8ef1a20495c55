package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase passthrough", input: "engineering", want: "engineering"},
		{name: "case folded", input: "Engineering", want: "engineering"},
		{name: "all caps", input: "ACME", want: "acme"},
		{name: "surrounding whitespace trimmed", input: "  Frontend ", want: "frontend"},
		{name: "internal runs collapsed", input: "data \t platform  team", want: "data platform team"},
		{name: "unicode folding", input: "Straße", want: "strasse"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizedName(t *testing.T) {
	entity := &Entity{Name: "  Data  PLATFORM "}
	assert.Equal(t, "data platform", entity.NormalizedName())
}
