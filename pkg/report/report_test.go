package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/graphmerge/pkg/errors"
	"github.com/agentstation/graphmerge/pkg/graph"
)

func customerGraph() *graph.Graph {
	return &graph.Graph{
		Entities: map[string]*graph.Entity{
			"f_name": {
				Name: "Customer First Name",
				Properties: map[string]any{
					"aliases":     []any{"First Name", "Name"},
					"description": "This column represents the name of the customer",
					"descriptions": []any{
						"This represents customer first name",
						"This is the first name as in the passport",
					},
				},
			},
			"l_name": {
				Name: "Customer Last Name",
				Properties: map[string]any{
					"aliases": []string{"Surname"},
				},
			},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"f_name", "l_name"},
	}
}

func TestFromGraph(t *testing.T) {
	definitions := FromGraph(customerGraph())
	require.Len(t, definitions, 2)

	first := definitions[0]
	assert.Equal(t, "f_name", first.PhysicalName)
	assert.Equal(t, []string{"Customer First Name", "First Name", "Name"}, first.LogicalNames)
	assert.Equal(t, []string{
		"This column represents the name of the customer",
		"This represents customer first name",
		"This is the first name as in the passport",
	}, first.Descriptions)

	second := definitions[1]
	assert.Equal(t, "l_name", second.PhysicalName)
	assert.Equal(t, []string{"Customer Last Name", "Surname"}, second.LogicalNames)
	assert.Empty(t, second.Descriptions)
}

func TestFromGraphIgnoresNonStringValues(t *testing.T) {
	g := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"e1": {
				Name: "Entity",
				Properties: map[string]any{
					"aliases":     42,
					"description": []any{7, "kept"},
				},
			},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"e1"},
	}

	definitions := FromGraph(g)
	require.Len(t, definitions, 1)
	assert.Equal(t, []string{"Entity"}, definitions[0].LogicalNames)
	assert.Equal(t, []string{"kept"}, definitions[0].Descriptions)
}

func TestSentence(t *testing.T) {
	definition := Definition{
		PhysicalName: "f_name",
		LogicalNames: []string{"First Name", "Name"},
		Descriptions: []string{"The customer's first name."},
	}

	assert.Equal(t,
		"f_name: The customer's first name. It is also referred to as First Name, Name.",
		definition.Sentence())
}

func TestWriteText(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteText(&buf, FromGraph(customerGraph())))

	out := buf.String()
	assert.Contains(t, out, "Physical Name: f_name")
	assert.Contains(t, out, "Logical Names: Customer First Name, First Name, Name")
	assert.Contains(t, out, "- This represents customer first name")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 50)))
}

// failAfterWriter accepts a fixed number of writes and fails thereafter.
type failAfterWriter struct {
	remaining int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.remaining <= 0 {
		return 0, errors.New("writer is full")
	}
	w.remaining--
	return len(p), nil
}

func TestWriteTextPropagatesWriteErrors(t *testing.T) {
	definitions := FromGraph(customerGraph())

	// The first line succeeds; a later write fails and must surface.
	err := WriteText(&failAfterWriter{remaining: 1}, definitions)
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestWriteMarkdown(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteMarkdown(&buf, "Data Dictionary", FromGraph(customerGraph())))

	out := buf.String()
	assert.Contains(t, out, "# Data Dictionary")
	assert.Contains(t, out, "## f_name")
	assert.Contains(t, out, "## l_name")
	assert.Contains(t, out, "It is also referred to as Customer Last Name, Surname.")
}
