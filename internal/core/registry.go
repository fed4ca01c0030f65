package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrSchemaNotFound is returned by LookupSchema for an unknown name.
var ErrSchemaNotFound = errors.New("schema not found")

var (
	registry   = make(map[string]Schema)
	registryMu sync.RWMutex
)

// Register adds a schema to the registry.
// Panics if the schema is invalid or the name is already registered.
func Register(s Schema) {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("invalid schema %q: %v", s.Name, err))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("schema already registered: %s", s.Name))
	}
	registry[s.Name] = s
}

// LookupSchema returns a registered schema by name.
func LookupSchema(name string) (Schema, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[name]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return s, nil
}

// SchemaNames returns all registered names, sorted.
func SchemaNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered schemas.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Schema)
}

// Validate checks that the schema can produce entries: an identifier
// column, at least one flag, and unique flag keys. Two flags may read the
// same column.
func (s Schema) Validate() error {
	var errs []string

	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.IdentifierColumn) == "" {
		errs = append(errs, "identifier column is required")
	}
	if len(s.Flags) == 0 {
		errs = append(errs, "at least one flag is required")
	}

	keys := make(map[string]bool, len(s.Flags))
	for i, f := range s.Flags {
		if f.Key == "" || f.Column == "" {
			errs = append(errs, fmt.Sprintf("flag %d: key and column are required", i))
			continue
		}
		if keys[f.Key] {
			errs = append(errs, fmt.Sprintf("flag %d: duplicate key %q", i, f.Key))
		}
		keys[f.Key] = true
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
