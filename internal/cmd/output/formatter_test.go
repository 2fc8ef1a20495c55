package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	EntityID string `json:"entity_id"`
	Count    int    `json:"count"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "YAML", want: FormatYAML},
		{input: "table", want: FormatTable},
		{input: "", want: Format("")},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatJSON)

	require.NoError(t, formatter.Format(&buf, row{EntityID: "e1", Count: 3}))
	assert.Contains(t, buf.String(), `"entity_id": "e1"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatYAML)

	require.NoError(t, formatter.Format(&buf, row{EntityID: "e1", Count: 3}))
	assert.Contains(t, buf.String(), "entity_id: e1")
	assert.Contains(t, buf.String(), "count: 3")
}

func TestTableFormatterStructSlice(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	rows := []row{
		{EntityID: "e1", Count: 3},
		{EntityID: "e2", Count: 1},
	}
	require.NoError(t, formatter.Format(&buf, rows))

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "entity id")
	assert.Contains(t, out, "e1")
	assert.Contains(t, out, "e2")
}

func TestTableFormatterSingleStruct(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	require.NoError(t, formatter.Format(&buf, row{EntityID: "e1", Count: 3}))

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "property")
	assert.Contains(t, out, "Entity Id")
	assert.Contains(t, out, "e1")
}

func TestTableFormatterExplicitData(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	require.NoError(t, formatter.Format(&buf, Data{
		Headers: []string{"Kind", "ID"},
		Rows:    [][]string{{"dangling_child", "eng"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "dangling_child")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	require.NoError(t, formatter.Format(&buf, map[string]string{"k": "v"}))
	assert.Contains(t, buf.String(), `"k": "v"`)
}
