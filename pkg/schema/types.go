package schema

import (
	"fmt"
	"sort"
)

// FieldType is the storage type of a log field in the index mapping
type FieldType string

const (
	FieldTypeDate    FieldType = "date"
	FieldTypeLong    FieldType = "long"
	FieldTypeKeyword FieldType = "keyword"
	FieldTypeText    FieldType = "text"
	FieldTypeIP      FieldType = "ip"
)

// ValidTypes lists the field types the generator knows how to emit
var ValidTypes = map[FieldType]bool{
	FieldTypeDate:    true,
	FieldTypeLong:    true,
	FieldTypeKeyword: true,
	FieldTypeText:    true,
	FieldTypeIP:      true,
}

// Field describes how one log field is stored and searched.
// Index is only serialized when indexing is disabled.
type Field struct {
	Type  FieldType `json:"type" yaml:"type"`
	Index *bool     `json:"index,omitempty" yaml:"index,omitempty"`
}

// Table maps field names to their descriptors
type Table map[string]Field

// Of returns an indexed field of the given type
func Of(t FieldType) Field {
	return Field{Type: t}
}

// Unindexed returns a field of the given type that is stored but not searchable
func Unindexed(t FieldType) Field {
	index := false
	return Field{Type: t, Index: &index}
}

// Indexed reports whether the field is searchable (the default)
func (f Field) Indexed() bool {
	return f.Index == nil || *f.Index
}

// Validate checks that the field type is known
func (f Field) Validate() error {
	if !ValidTypes[f.Type] {
		return fmt.Errorf("unknown type %q", f.Type)
	}
	return nil
}

// Validate checks every field in the table
func (t Table) Validate() error {
	for _, name := range t.Names() {
		if name == "" {
			return fmt.Errorf("schema error: field with empty name")
		}
		if err := t[name].Validate(); err != nil {
			return fmt.Errorf("schema error: field %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the field names in sorted order
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge combines layers left to right into a new table. When two layers
// define the same field the later one wins. The inputs are not modified.
func Merge(layers ...Table) Table {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}

	merged := make(Table, size)
	for _, layer := range layers {
		for name, field := range layer {
			merged[name] = field
		}
	}
	return merged
}
