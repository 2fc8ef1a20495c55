// Package report derives flat data-dictionary records from a merged
// graph and renders them as plain text or markdown documents.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/graphmerge/pkg/errors"
	"github.com/agentstation/graphmerge/pkg/graph"
)

// Definition is one data-dictionary record: an entity's id with every
// name and description collected for it across the merged sources.
type Definition struct {
	PhysicalName string   `json:"physical_name" yaml:"physical_name"`
	LogicalNames []string `json:"logical_names" yaml:"logical_names"`
	Descriptions []string `json:"descriptions" yaml:"descriptions"`
}

// FromGraph derives one definition per entity, sorted by id. The display
// name is always the first logical name; additional names come from the
// "aliases" property and descriptions from "description"/"descriptions".
func FromGraph(g *graph.Graph) []Definition {
	definitions := make([]Definition, 0, len(g.Entities))
	for _, id := range g.EntityIDs() {
		entity := g.Entities[id]

		names := []string{}
		if entity.Name != "" {
			names = append(names, entity.Name)
		}
		for _, alias := range stringList(entity.Properties["aliases"]) {
			if !slices.Contains(names, alias) {
				names = append(names, alias)
			}
		}

		descriptions := stringList(entity.Properties["description"])
		for _, description := range stringList(entity.Properties["descriptions"]) {
			if !slices.Contains(descriptions, description) {
				descriptions = append(descriptions, description)
			}
		}

		definitions = append(definitions, Definition{
			PhysicalName: id,
			LogicalNames: names,
			Descriptions: descriptions,
		})
	}
	return definitions
}

// Sentence renders a definition as a single prose sentence.
func (d Definition) Sentence() string {
	var b strings.Builder
	b.WriteString(d.PhysicalName)
	b.WriteString(":")
	for _, description := range d.Descriptions {
		b.WriteString(" ")
		b.WriteString(description)
	}
	if len(d.LogicalNames) > 0 {
		b.WriteString(" It is also referred to as ")
		b.WriteString(strings.Join(d.LogicalNames, ", "))
		b.WriteString(".")
	}
	return b.String()
}

// WriteText renders definitions as a plain-text data dictionary, one
// block per definition separated by a dashed rule.
func WriteText(w io.Writer, definitions []Definition) error {
	separator := strings.Repeat("-", 50)
	var err error
	write := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	for _, definition := range definitions {
		write("Physical Name: %s\n", definition.PhysicalName)
		write("Logical Names: %s\n", strings.Join(definition.LogicalNames, ", "))
		write("Descriptions:\n")
		for _, description := range definition.Descriptions {
			write("- %s\n", description)
		}
		write("%s\n", separator)
	}

	if err != nil {
		return errors.WrapIO("write", "report", err)
	}
	return nil
}

// WriteMarkdown renders definitions as a markdown data dictionary.
func WriteMarkdown(w io.Writer, title string, definitions []Definition) error {
	builder := md.NewMarkdown(w).H1(title).LF()
	for _, definition := range definitions {
		builder.H2(definition.PhysicalName).
			PlainText(definition.Sentence()).LF()
		if len(definition.Descriptions) > 0 {
			builder.BulletList(definition.Descriptions...).LF()
		}
	}
	if err := builder.Build(); err != nil {
		return errors.WrapIO("write", "report", err)
	}
	return nil
}

// stringList coerces an opaque property value into a list of strings.
// Non-string values are ignored.
func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
