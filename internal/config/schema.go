package config

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/alcheck/internal/core"
	"gopkg.in/yaml.v3"
)

// LoadSchemaFile reads a flag schema from a YAML file:
//
//	name: memoon
//	identifier_column: email
//	flags:
//	  - key: chargeAL
//	    column: ChargeAL
//	    label: Charge AL
//
// Unknown keys are rejected so that a typo does not silently drop a flag.
func LoadSchemaFile(path string) (core.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Schema{}, fmt.Errorf("open schema file: %w", err)
	}
	defer f.Close()

	var s core.Schema
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return core.Schema{}, fmt.Errorf("decode schema file %s: %w", path, err)
	}

	for i := range s.Flags {
		if s.Flags[i].Label == "" {
			s.Flags[i].Label = s.Flags[i].Key
		}
	}

	if err := s.Validate(); err != nil {
		return core.Schema{}, fmt.Errorf("schema file %s: %w", path, err)
	}
	return s, nil
}

// ResolveSchema returns the schema selected by the source settings. A
// schema file takes precedence over a registered name.
func (c *SourceConfig) ResolveSchema() (core.Schema, error) {
	if c.SchemaFile != "" {
		return LoadSchemaFile(c.SchemaFile)
	}
	return core.LookupSchema(c.Schema)
}
