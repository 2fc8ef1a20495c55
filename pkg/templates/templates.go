// Package templates manages property templates and the property values
// instantiated from them. Graph entities carry properties as opaque maps;
// this package is the service that defines what those properties mean:
// their names, types, allowed values, and descriptions.
package templates

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/graphmerge/pkg/errors"
)

// Template defines a reusable property: its display name, value type,
// and, for enumerated types, the set of allowed values.
type Template struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Type           string   `json:"type" yaml:"type"`
	PossibleValues []string `json:"possible_values,omitempty" yaml:"possible_values,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required       bool     `json:"required" yaml:"required"`
}

// Property is a value instantiated from a template.
type Property struct {
	ID         string `json:"id" yaml:"id"`
	TemplateID string `json:"template_id" yaml:"template_id"`
	Value      any    `json:"value" yaml:"value"`
}

// Definition is a property joined with its template, the flat record
// consumed by report generation.
type Definition struct {
	PropertyID     string   `json:"property_id" yaml:"property_id"`
	Value          any      `json:"value" yaml:"value"`
	TemplateID     string   `json:"template_id" yaml:"template_id"`
	TemplateName   string   `json:"template_name" yaml:"template_name"`
	TemplateType   string   `json:"template_type" yaml:"template_type"`
	PossibleValues []string `json:"possible_values,omitempty" yaml:"possible_values,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Store is an in-memory, concurrency-safe collection of templates and
// properties.
type Store struct {
	mu         sync.RWMutex
	templates  map[string]*Template
	properties map[string]*Property

	nextTemplate int
	nextProperty int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		templates:  make(map[string]*Template),
		properties: make(map[string]*Property),
	}
}

// CreateTemplate adds a template to the store. An empty id is assigned
// automatically; a supplied id must be unused.
func (s *Store) CreateTemplate(template Template) (*Template, error) {
	if template.Name == "" {
		return nil, errors.NewValidationError("name", template.Name, "template name must not be empty")
	}
	if template.Type == "" {
		return nil, errors.NewValidationError("type", template.Type, "template type must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if template.ID == "" {
		template.ID = s.nextID("tmpl", &s.nextTemplate, func(id string) bool {
			_, taken := s.templates[id]
			return taken
		})
	} else if _, exists := s.templates[template.ID]; exists {
		return nil, fmt.Errorf("template %s: %w", template.ID, errors.ErrAlreadyExists)
	}

	stored := template
	stored.PossibleValues = slices.Clone(template.PossibleValues)
	s.templates[stored.ID] = &stored

	created := stored
	return &created, nil
}

// Template returns the template with the given id.
func (s *Store) Template(id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	template, ok := s.templates[id]
	if !ok {
		return nil, errors.NewNotFoundError("template", id)
	}
	found := *template
	return &found, nil
}

// Templates returns all templates sorted by id.
func (s *Store) Templates() []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Template, 0, len(s.templates))
	for _, template := range s.templates {
		found := *template
		out = append(out, &found)
	}
	slices.SortFunc(out, func(a, b *Template) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// DeleteTemplate removes a template. Templates still referenced by a
// property cannot be deleted.
func (s *Store) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return errors.NewNotFoundError("template", id)
	}
	for _, property := range s.properties {
		if property.TemplateID == id {
			return errors.NewValidationError("id", id, "template is referenced by property "+property.ID)
		}
	}
	delete(s.templates, id)
	return nil
}

// CreateProperty adds a property instantiated from an existing template.
// Values for enumerated templates must be one of the allowed values.
func (s *Store) CreateProperty(property Property) (*Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	template, ok := s.templates[property.TemplateID]
	if !ok {
		return nil, errors.NewNotFoundError("template", property.TemplateID)
	}

	if template.Required && property.Value == nil {
		return nil, errors.NewValidationError("value", nil, "required property must have a value")
	}
	if len(template.PossibleValues) > 0 && property.Value != nil {
		value, isString := property.Value.(string)
		if !isString || !slices.Contains(template.PossibleValues, value) {
			return nil, errors.NewValidationError("value", property.Value,
				"value is not one of the template's possible values")
		}
	}

	if property.ID == "" {
		property.ID = s.nextID("prop", &s.nextProperty, func(id string) bool {
			_, taken := s.properties[id]
			return taken
		})
	} else if _, exists := s.properties[property.ID]; exists {
		return nil, fmt.Errorf("property %s: %w", property.ID, errors.ErrAlreadyExists)
	}

	stored := property
	s.properties[stored.ID] = &stored

	created := stored
	return &created, nil
}

// Property returns the property with the given id.
func (s *Store) Property(id string) (*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	property, ok := s.properties[id]
	if !ok {
		return nil, errors.NewNotFoundError("property", id)
	}
	found := *property
	return &found, nil
}

// Properties returns all properties sorted by id.
func (s *Store) Properties() []*Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Property, 0, len(s.properties))
	for _, property := range s.properties {
		found := *property
		out = append(out, &found)
	}
	slices.SortFunc(out, func(a, b *Property) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// DeleteProperty removes a property.
func (s *Store) DeleteProperty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return errors.NewNotFoundError("property", id)
	}
	delete(s.properties, id)
	return nil
}

// Definitions joins every property with its template, sorted by property
// id.
func (s *Store) Definitions() []Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Definition, 0, len(s.properties))
	for _, property := range s.properties {
		template, ok := s.templates[property.TemplateID]
		if !ok {
			continue
		}
		out = append(out, Definition{
			PropertyID:     property.ID,
			Value:          property.Value,
			TemplateID:     template.ID,
			TemplateName:   template.Name,
			TemplateType:   template.Type,
			PossibleValues: slices.Clone(template.PossibleValues),
			Description:    template.Description,
		})
	}
	slices.SortFunc(out, func(a, b Definition) int {
		return strings.Compare(a.PropertyID, b.PropertyID)
	})
	return out
}

// Form assembles the definitions for a set of property ids, preserving
// the requested order. Unknown property ids are an error; properties
// whose template has disappeared are skipped.
func (s *Store) Form(propertyIDs []string) ([]Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Definition, 0, len(propertyIDs))
	for _, id := range propertyIDs {
		property, ok := s.properties[id]
		if !ok {
			return nil, errors.NewNotFoundError("property", id)
		}
		template, ok := s.templates[property.TemplateID]
		if !ok {
			continue
		}
		out = append(out, Definition{
			PropertyID:     property.ID,
			Value:          property.Value,
			TemplateID:     template.ID,
			TemplateName:   template.Name,
			TemplateType:   template.Type,
			PossibleValues: slices.Clone(template.PossibleValues),
			Description:    template.Description,
		})
	}
	return out, nil
}

// nextID hands out sequential ids under a prefix, skipping any that a
// caller already claimed explicitly.
func (s *Store) nextID(prefix string, counter *int, taken func(string) bool) string {
	for {
		*counter++
		id := fmt.Sprintf("%s_%d", prefix, *counter)
		if !taken(id) {
			return id
		}
	}
}
