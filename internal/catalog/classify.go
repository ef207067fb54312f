package catalog

// Kind is the derived category of a catalog item
type Kind int

const (
	// KindView is a field-set descriptor
	KindView Kind = iota

	// KindTable iterates a row item, optionally through a view
	KindTable

	// KindGetTable is a table whose rows are fetched by an RPC
	KindGetTable
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindTable:
		return "table"
	case KindGetTable:
		return "get-table"
	default:
		return "unknown"
	}
}

// Spec is a classified item definition
type Spec interface {
	Kind() Kind
	Definition() *Definition
}

// GetTableSpec is a definition carrying an rpc key
type GetTableSpec struct{ Def *Definition }

// TableSpec is a definition carrying a view or item key and no rpc key
type TableSpec struct{ Def *Definition }

// ViewSpec is any other definition
type ViewSpec struct{ Def *Definition }

func (s GetTableSpec) Kind() Kind              { return KindGetTable }
func (s GetTableSpec) Definition() *Definition { return s.Def }
func (s TableSpec) Kind() Kind                 { return KindTable }
func (s TableSpec) Definition() *Definition    { return s.Def }
func (s ViewSpec) Kind() Kind                  { return KindView }
func (s ViewSpec) Definition() *Definition     { return s.Def }

// Classify decides the kind of a definition from the keys it carries
func Classify(def *Definition) Spec {
	switch {
	case def.Has("rpc"):
		return GetTableSpec{Def: def}
	case def.Has("view"), def.Has("item"):
		return TableSpec{Def: def}
	default:
		return ViewSpec{Def: def}
	}
}

// Classified holds item names grouped by kind, each list in document order
type Classified struct {
	GetTables []string
	Tables    []string
	Views     []string

	specs map[string]Spec
}

// SortItems classifies every item of a document in one pass
func SortItems(doc *Document) Classified {
	c := Classified{specs: make(map[string]Spec, doc.Len())}

	for _, name := range doc.Names() {
		def, _ := doc.Get(name)
		spec := Classify(def)
		c.specs[name] = spec

		switch spec.Kind() {
		case KindGetTable:
			c.GetTables = append(c.GetTables, name)
		case KindTable:
			c.Tables = append(c.Tables, name)
		default:
			c.Views = append(c.Views, name)
		}
	}

	return c
}

// Spec returns the classified definition of name
func (c Classified) Spec(name string) (Spec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}
