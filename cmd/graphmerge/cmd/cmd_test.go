package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/graphmerge/pkg/graph"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test", "none", "today")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestGenerateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.json")

	_, err := execute(t, "generate", "--roots", "1", "--depth", "2", "--fanout", "2", "--out", path)
	require.NoError(t, err)

	g, err := graph.Load(path)
	require.NoError(t, err)
	assert.Len(t, g.Entities, 7)
	assert.Len(t, g.Roots, 1)
}

func TestGenerateCommandStdout(t *testing.T) {
	out, err := execute(t, "generate", "--roots", "1", "--depth", "1", "--fanout", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"entities"`)
	assert.Contains(t, out, `"roots"`)
}

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.json")
	_, err := execute(t, "generate", "--roots", "2", "--depth", "2", "--fanout", "2", "--out", path)
	require.NoError(t, err)

	out, err := execute(t, "validate", path, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entities": 14`)
	assert.Contains(t, out, `"warnings": 0`)
}

func TestValidateCommandRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entities": {}}`), 0o644))

	_, err := execute(t, "validate", path)
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	primaryPath := filepath.Join(dir, "primary.json")
	secondaryPath := filepath.Join(dir, "secondary.json")
	mergedPath := filepath.Join(dir, "merged.json")

	_, err := execute(t, "generate", "--roots", "1", "--depth", "2", "--fanout", "2", "--seed", "1", "--out", primaryPath)
	require.NoError(t, err)
	_, err = execute(t, "generate", "--roots", "1", "--depth", "2", "--fanout", "2", "--seed", "2", "--out", secondaryPath)
	require.NoError(t, err)

	out, err := execute(t, "merge", primaryPath, secondaryPath, "--out", mergedPath, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entities_matched"`)

	merged, err := graph.Load(mergedPath)
	require.NoError(t, err)
	assert.NotEmpty(t, merged.Entities)
}

func TestMergeCommandRejectsInvalidPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.json")
	_, err := execute(t, "generate", "--depth", "1", "--out", path)
	require.NoError(t, err)

	_, err = execute(t, "merge", path, path, "--policy", "coin-flip")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := &graph.Graph{
		Entities: map[string]*graph.Entity{
			"f_name": {
				Name: "Customer First Name",
				Properties: map[string]any{
					"description": "The customer's first name",
				},
			},
		},
		Transitions: map[string]*graph.Transition{},
		Roots:       []string{"f_name"},
	}
	require.NoError(t, g.Validate())
	require.NoError(t, g.Save(path))

	out, err := execute(t, "report", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Physical Name: f_name")
	assert.Contains(t, out, "- The customer's first name")

	out, err = execute(t, "report", path, "--format", "markdown", "--title", "Entities")
	require.NoError(t, err)
	assert.Contains(t, out, "# Entities")
	assert.Contains(t, out, "## f_name")

	_, err = execute(t, "report", path, "--format", "pdf")
	assert.Error(t, err)
}
