package core

import (
	"errors"
	"testing"
)

func TestRegister_LookupAndNames(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	s := testSchema()
	Register(s)

	got, err := LookupSchema("test")
	if err != nil {
		t.Fatalf("LookupSchema() error = %v", err)
	}
	if got.IdentifierColumn != "email" {
		t.Errorf("IdentifierColumn = %q, want %q", got.IdentifierColumn, "email")
	}

	if _, err := LookupSchema("missing"); !errors.Is(err, ErrSchemaNotFound) {
		t.Errorf("LookupSchema(missing) error = %v, want ErrSchemaNotFound", err)
	}

	other := testSchema()
	other.Name = "alpha"
	Register(other)

	names := SchemaNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "test" {
		t.Errorf("SchemaNames() = %v, want [alpha test]", names)
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(testSchema())

	defer func() {
		if recover() == nil {
			t.Error("Register() did not panic on duplicate name")
		}
	}()
	Register(testSchema())
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Schema)
		wantErr bool
	}{
		{"valid", func(*Schema) {}, false},
		{"missing name", func(s *Schema) { s.Name = "" }, true},
		{"missing identifier", func(s *Schema) { s.IdentifierColumn = " " }, true},
		{"no flags", func(s *Schema) { s.Flags = nil }, true},
		{"flag without column", func(s *Schema) { s.Flags[0].Column = "" }, true},
		{"duplicate key", func(s *Schema) { s.Flags[1].Key = s.Flags[0].Key }, true},
		{"shared column", func(s *Schema) { s.Flags[1].Column = s.Flags[0].Column }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchema()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
