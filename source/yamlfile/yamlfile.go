// Package yamlfile provides a parameter source backed by a YAML document,
// the file-based analog of a remote parameter server. Nested mappings
// flatten into fully qualified slash-separated names rooted at "/":
//
//	robot:
//	  gain: 2.5
//	  arm:
//	    joints: [1, 2, 3]
//
// exposes "/robot/gain" and "/robot/arm/joints". Name order follows
// document order, so enumeration is deterministic.
package yamlfile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/raultapia/rush/errors"
	"github.com/raultapia/rush/param"
)

// Source is a YAML-document-backed implementation of param.Source. All
// methods are safe for concurrent use; Refresh swaps the whole snapshot.
type Source struct {
	mu       sync.RWMutex
	path     string // empty for Parse-constructed sources
	basePath string
	names    []string
	values   map[string]param.Value
}

// Option configures a Source
type Option func(*Source)

// WithBasePath sets the base path returned by BasePath (default "/")
func WithBasePath(base string) Option {
	return func(s *Source) {
		if base != "" {
			s.basePath = base
		}
	}
}

// Load reads and parses a YAML parameter file
func Load(path string, opts ...Option) (*Source, error) {
	s := newSource(opts...)
	s.path = path
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse builds a source from an in-memory YAML document
func Parse(data []byte, opts ...Option) (*Source, error) {
	s := newSource(opts...)
	names, values, err := flattenDocument(data)
	if err != nil {
		return nil, err
	}
	s.names, s.values = names, values
	return s, nil
}

func newSource(opts ...Option) *Source {
	s := &Source{
		basePath: "/",
		values:   make(map[string]param.Value),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh re-reads the backing file and replaces the snapshot wholesale.
// Returns errors.ErrSourceUnavailable if the file cannot be read. Sources
// built with Parse have no backing file and refresh to their current state.
func (s *Source) Refresh() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", errors.ErrSourceUnavailable, s.path, err)
	}

	names, values, err := flattenDocument(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.names, s.values = names, values
	s.mu.Unlock()
	return nil
}

// ListNames implements param.Source
func (s *Source) ListNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

// GetValue implements param.Source
func (s *Source) GetValue(_ context.Context, name string) (param.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	if !ok {
		return param.Value{}, fmt.Errorf("%w: name %q not found", errors.ErrSourceUnavailable, name)
	}
	return v, nil
}

// BasePath implements param.Source
func (s *Source) BasePath() string {
	return s.basePath
}

// flattenDocument parses YAML and walks the node tree so document order is
// preserved (unmarshalling into a map would lose it).
func flattenDocument(data []byte) ([]string, map[string]param.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, errors.WrapInvalid(err, "Source", "Refresh", "parse YAML")
	}

	names := []string{}
	values := make(map[string]param.Value)

	if len(root.Content) == 0 {
		// Empty document exposes no parameters
		return names, values, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, nil, errors.WrapInvalid(
			fmt.Errorf("top-level YAML must be a mapping, got %v", doc.Kind),
			"Source", "Refresh", "parse YAML")
	}

	if err := flattenMapping(doc, "", &names, values); err != nil {
		return nil, nil, err
	}
	return names, values, nil
}

func flattenMapping(node *yaml.Node, prefix string, names *[]string, values map[string]param.Value) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		name := prefix + "/" + keyNode.Value

		if valNode.Kind == yaml.MappingNode {
			if err := flattenMapping(valNode, name, names, values); err != nil {
				return err
			}
			continue
		}

		var raw any
		if err := valNode.Decode(&raw); err != nil {
			return errors.WrapInvalid(err, "Source", "Refresh",
				fmt.Sprintf("decode value for %s", name))
		}

		v, err := param.NewValue(raw)
		if err != nil {
			return errors.WrapInvalid(err, "Source", "Refresh",
				fmt.Sprintf("wrap value for %s", name))
		}

		if _, ok := values[name]; !ok {
			*names = append(*names, name)
		}
		values[name] = v
	}
	return nil
}
