package tables

import (
	"fmt"

	"github.com/simonhull/optable/internal/types"
)

// FieldKind identifies how a field's value is produced
type FieldKind int

const (
	// FieldString is a plain field whose value is the text found at XPath
	FieldString FieldKind = iota

	// FieldTyped converts the text found at XPath with a registered type
	FieldTyped

	// FieldTable renders the element at the field's position through a sub-table
	FieldTable
)

// String returns the field kind name
func (k FieldKind) String() string {
	switch k {
	case FieldString:
		return "string"
	case FieldTyped:
		return "typed"
	case FieldTable:
		return "table"
	default:
		return "unknown"
	}
}

// Field is a single named projection in a view
type Field struct {
	Name  string
	XPath string
	Group string // Group tag from a fields_<group> block, empty for plain "fields"
	Kind  FieldKind
	Type  types.TypeInfo // Set for FieldString and FieldTyped
	Table *Table         // Set for FieldTable
}

// Convert applies the field's type conversion to a raw value
func (f Field) Convert(raw any) (any, error) {
	if f.Kind == FieldTable {
		return nil, fmt.Errorf("field %s is a sub-table reference and has no scalar value", f.Name)
	}
	return f.Type.Convert(raw)
}

// FieldSet is the finalized, ordered set of fields of a view
type FieldSet struct {
	fields []Field
	index  map[string]int
}

// Len returns the number of fields in the set
func (s FieldSet) Len() int {
	return len(s.fields)
}

// All returns the fields in registration order
func (s FieldSet) All() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in registration order
func (s FieldSet) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Get returns the named field
func (s FieldSet) Get(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Group returns the fields tagged with the given group, in registration order
func (s FieldSet) Group(tag string) []Field {
	var out []Field
	for _, f := range s.fields {
		if f.Group == tag {
			out = append(out, f)
		}
	}
	return out
}

// Fields accumulates field registrations for a view.
// Registering a name twice keeps its first position and the latest definition.
type Fields struct {
	fields []Field
	index  map[string]int
}

// NewFields creates an empty field collector
func NewFields() *Fields {
	return &Fields{index: make(map[string]int)}
}

// Str registers a plain field read from xpath
func (b *Fields) Str(name, xpath, group string) *Fields {
	return b.add(Field{
		Name:  name,
		XPath: xpath,
		Group: group,
		Kind:  FieldString,
		Type:  types.String,
	})
}

// AsType registers a field read from xpath and converted with info
func (b *Fields) AsType(name, xpath string, info types.TypeInfo, group string) *Fields {
	return b.add(Field{
		Name:  name,
		XPath: xpath,
		Group: group,
		Kind:  FieldTyped,
		Type:  info,
	})
}

// Table registers a field rendered through a sub-table.
// The table's item path is where the sub-table finds its rows.
func (b *Fields) Table(name string, tbl *Table) *Fields {
	return b.add(Field{
		Name:  name,
		XPath: tbl.Item,
		Kind:  FieldTable,
		Table: tbl,
	})
}

func (b *Fields) add(f Field) *Fields {
	if i, ok := b.index[f.Name]; ok {
		b.fields[i] = f
		return b
	}
	b.index[f.Name] = len(b.fields)
	b.fields = append(b.fields, f)
	return b
}

// End finalizes the collected fields.
// The returned set does not change when the collector is used again.
func (b *Fields) End() FieldSet {
	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)

	index := make(map[string]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}

	return FieldSet{fields: fields, index: index}
}
