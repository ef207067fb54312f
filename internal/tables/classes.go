package tables

import "sort"

// Class is implemented by every value a catalog holds
type Class interface {
	ItemName() string
}

// ViewOptions configures a view
type ViewOptions struct {
	Name   string
	Groups map[string]string // Group tag -> xpath the group's fields are relative to
}

// View is a named field-set descriptor
type View struct {
	Name   string
	Fields FieldSet
	Groups map[string]string
}

// NewView creates a view from finalized fields
func NewView(fields FieldSet, opts ViewOptions) *View {
	groups := make(map[string]string, len(opts.Groups))
	for k, v := range opts.Groups {
		groups[k] = v
	}

	return &View{
		Name:   opts.Name,
		Fields: fields,
		Groups: groups,
	}
}

// ItemName returns the catalog name of the view
func (v *View) ItemName() string { return v.Name }

// GroupNames returns the configured group tags in sorted order
func (v *View) GroupNames() []string {
	names := make([]string, 0, len(v.Groups))
	for name := range v.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TableOptions configures a table or get-table
type TableOptions struct {
	Name    string
	View    *View
	Options map[string]any // Passthrough attributes, kept verbatim
}

// Table iterates a repeated item in device output
type Table struct {
	Name    string
	Item    string
	View    *View
	Options map[string]any
}

// NewTable creates a table over the given row item
func NewTable(item string, opts TableOptions) *Table {
	return &Table{
		Name:    opts.Name,
		Item:    item,
		View:    opts.View,
		Options: copyOptions(opts.Options),
	}
}

// ItemName returns the catalog name of the table
func (t *Table) ItemName() string { return t.Name }

// Option returns a passthrough attribute
func (t *Table) Option(key string) (any, bool) {
	v, ok := t.Options[key]
	return v, ok
}

// GetTable is a table whose rows are fetched by an RPC
type GetTable struct {
	Name    string
	RPC     string
	View    *View
	Options map[string]any
}

// NewGetTable creates a get-table for the given RPC
func NewGetTable(rpc string, opts TableOptions) *GetTable {
	return &GetTable{
		Name:    opts.Name,
		RPC:     rpc,
		View:    opts.View,
		Options: copyOptions(opts.Options),
	}
}

// ItemName returns the catalog name of the get-table
func (g *GetTable) ItemName() string { return g.Name }

// Option returns a passthrough attribute
func (g *GetTable) Option(key string) (any, bool) {
	v, ok := g.Options[key]
	return v, ok
}

// OptionKeys returns the passthrough attribute names of a table or get-table in sorted order
func OptionKeys(options map[string]any) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyOptions(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
