package templates

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/graphmerge/pkg/errors"
)

// storeFile is the YAML persistence shape of a store.
type storeFile struct {
	Templates  []*Template `yaml:"templates"`
	Properties []*Property `yaml:"properties"`
}

// Save writes the store's templates and properties to a YAML file.
func (s *Store) Save(path string) error {
	file := storeFile{
		Templates:  s.Templates(),
		Properties: s.Properties(),
	}

	data, err := yaml.MarshalWithOptions(file, yaml.Indent(2))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// LoadStore reads a store from a YAML file written by Save. Every loaded
// record passes the same validation as one created through the API.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	store := NewStore()
	for _, template := range file.Templates {
		if template == nil {
			continue
		}
		if _, err := store.CreateTemplate(*template); err != nil {
			return nil, err
		}
	}
	for _, property := range file.Properties {
		if property == nil {
			continue
		}
		if _, err := store.CreateProperty(*property); err != nil {
			return nil, err
		}
	}
	return store, nil
}
