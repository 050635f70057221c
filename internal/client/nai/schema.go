package nai

import (
	"embed"
	"fmt"
	"sync"

	go_json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// schemaSet compiles the embedded response schemas on first use.
// Cross-file $refs resolve because every embedded schema is registered
// as a compiler resource.
type schemaSet struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

func newSchemaSet() *schemaSet {
	return &schemaSet{compiled: make(map[string]*jsonschema.Schema)}
}

func (s *schemaSet) get(resource string) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if schema, ok := s.compiled[resource]; ok {
		return schema, nil
	}

	compiler := jsonschema.NewCompiler()

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas: %w", err)
	}
	for _, entry := range entries {
		f, err := schemaFS.Open("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to open schema %s: %w", entry.Name(), err)
		}
		err = compiler.AddResource(entry.Name(), f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", entry.Name(), err)
		}
	}

	name := resource + ".json"
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	s.compiled[resource] = compiled
	return compiled, nil
}

// validate checks a raw response body against the resource's schema.
func (s *schemaSet) validate(resource string, raw []byte) error {
	schema, err := s.get(resource)
	if err != nil {
		return err
	}

	var payload any
	if err := go_json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	return schema.Validate(payload)
}
