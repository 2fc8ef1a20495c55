package graph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/graphmerge/pkg/errors"
)

// ParseJSON decodes and validates a graph from its JSON wire shape.
func ParseJSON(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseYAML decodes and validates a graph from YAML.
func ParseYAML(data []byte) (*Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Load reads and validates a graph file. The format is chosen by file
// extension: .yaml/.yml for YAML, anything else is treated as JSON.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		g, err := ParseYAML(data)
		if err != nil {
			return nil, annotateParse(err, path)
		}
		return g, nil
	default:
		g, err := ParseJSON(data)
		if err != nil {
			return nil, annotateParse(err, path)
		}
		return g, nil
	}
}

// Save writes the graph to path, choosing the format by extension the
// same way Load does.
func (g *Graph) Save(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.MarshalWithOptions(g, yaml.Indent(2))
		if err != nil {
			return errors.WrapParse("yaml", path, err)
		}
	default:
		data, err = json.MarshalIndent(g, "", "  ")
		if err != nil {
			return errors.WrapParse("json", path, err)
		}
		data = append(data, '\n')
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// annotateParse fills in the file path on parse errors surfaced by the
// byte-level parse helpers.
func annotateParse(err error, path string) error {
	if parseErr, ok := err.(*errors.ParseError); ok && parseErr.File == "" {
		parseErr.File = path
	}
	return err
}
