package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/simonhull/optable/internal/logger"
	"github.com/simonhull/optable/internal/tables"
	"github.com/simonhull/optable/internal/types"
)

// fieldsPrefix marks the attributes of a view that hold field specs
const fieldsPrefix = "fields"

// ErrLoaderInUse is returned when a Loader is handed a second document
var ErrLoaderInUse = errors.New("loader is already bound to another document")

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the logger build steps are reported to
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// Loader links one document into a catalog
type Loader struct {
	doc     *Document
	items   Classified
	catalog *Catalog
	stack   []string // items currently being built, outermost first
	log     logger.Logger
}

// NewLoader creates a loader with an empty catalog
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		catalog: newCatalog(),
		log:     logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Catalog returns the catalog built so far, including entries completed
// before a failed Parse
func (l *Loader) Catalog() *Catalog {
	return l.catalog
}

func (l *Loader) bind(doc *Document) error {
	if doc == nil {
		return &MalformedDefinitionError{Message: "document is nil"}
	}
	if l.doc != nil {
		if l.doc != doc {
			return ErrLoaderInUse
		}
		return nil
	}
	l.doc = doc
	l.items = SortItems(doc)
	l.log.Debug("classified items",
		logger.F("get_tables", len(l.items.GetTables)),
		logger.F("tables", len(l.items.Tables)),
		logger.F("views", len(l.items.Views)),
	)
	return nil
}

// Parse builds every item of doc: get-tables, then tables, then views.
// It stops at the first failure; entries built before it stay in Catalog().
func (l *Loader) Parse(doc *Document) (*Catalog, error) {
	if err := l.bind(doc); err != nil {
		return nil, err
	}

	for _, name := range l.items.GetTables {
		if _, err := l.buildGetTable(name); err != nil {
			return nil, err
		}
	}
	for _, name := range l.items.Tables {
		if _, err := l.buildTable(name); err != nil {
			return nil, err
		}
	}
	for _, name := range l.items.Views {
		if _, err := l.buildView(name); err != nil {
			return nil, err
		}
	}

	l.log.Debug("catalog complete", logger.F("items", l.catalog.Len()))
	return l.catalog, nil
}

// ParseAll attempts every item of doc and reports all failures together
// as BuildErrors. Items that built are kept in the returned catalog.
func (l *Loader) ParseAll(doc *Document) (*Catalog, error) {
	if err := l.bind(doc); err != nil {
		return nil, err
	}

	var errs BuildErrors
	for _, name := range doc.Names() {
		if _, err := l.Build(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return l.catalog, errs
	}
	return l.catalog, nil
}

// Build builds a single item of the bound document, and everything it
// references, by its classified kind
func (l *Loader) Build(name string) (tables.Class, error) {
	if l.doc == nil {
		return nil, &MalformedDefinitionError{Message: "loader has no document"}
	}

	spec, ok := l.items.Spec(name)
	if !ok {
		return nil, &MissingReferenceError{Ref: name}
	}

	switch spec.Kind() {
	case KindGetTable:
		return l.buildGetTable(name)
	case KindTable:
		return l.buildTable(name)
	default:
		return l.buildView(name)
	}
}

// enter puts name on the build stack, failing if it is already being built
func (l *Loader) enter(name string) error {
	if i := slices.Index(l.stack, name); i >= 0 {
		chain := append(slices.Clone(l.stack[i:]), name)
		return &CircularReferenceError{Chain: chain}
	}
	l.stack = append(l.stack, name)
	return nil
}

func (l *Loader) leave() {
	l.stack = l.stack[:len(l.stack)-1]
}

// resolve checks that ref exists and has the wanted kind
func (l *Loader) resolve(from, ref string, want Kind, line int) error {
	spec, ok := l.items.Spec(ref)
	if !ok {
		return &MissingReferenceError{Item: from, Ref: ref, Line: line}
	}
	if spec.Kind() != want {
		return &KindMismatchError{Item: from, Ref: ref, Want: want, Got: spec.Kind(), Line: line}
	}
	return nil
}

func (l *Loader) resolveView(from, ref string, line int) (*tables.View, error) {
	if err := l.resolve(from, ref, KindView, line); err != nil {
		return nil, err
	}
	return l.buildView(ref)
}

func (l *Loader) resolveTable(from, ref string, line int) (*tables.Table, error) {
	if err := l.resolve(from, ref, KindTable, line); err != nil {
		return nil, err
	}
	return l.buildTable(ref)
}

// cached returns the memoized class for name, if any
func (l *Loader) cached(name string) (tables.Class, bool) {
	return l.catalog.Get(name)
}

func (l *Loader) store(name string, cls tables.Class) error {
	if err := l.catalog.add(name, cls); err != nil {
		return err
	}
	l.log.Debug("built item", logger.F("item", name), logger.F("kind", KindOf(cls).String()))
	return nil
}

func (l *Loader) buildView(name string) (*tables.View, error) {
	if cls, ok := l.cached(name); ok {
		if v, ok := cls.(*tables.View); ok {
			return v, nil
		}
		return nil, &KindMismatchError{Item: name, Ref: name, Want: KindView, Got: KindOf(cls)}
	}

	view, err := l.newView(name)
	if err != nil {
		return nil, fmt.Errorf("build view %q: %w", name, err)
	}
	return view, nil
}

func (l *Loader) newView(name string) (*tables.View, error) {
	def, ok := l.doc.Get(name)
	if !ok {
		return nil, &MissingReferenceError{Ref: name}
	}
	if err := l.enter(name); err != nil {
		return nil, err
	}
	defer l.leave()

	opts := tables.ViewOptions{Name: name}
	if attr, ok := def.Get("groups"); ok {
		groups, err := groupMap(name, attr)
		if err != nil {
			return nil, err
		}
		opts.Groups = groups
	}

	fields := tables.NewFields()
	for _, key := range def.Keys() {
		if !strings.HasPrefix(key, fieldsPrefix) {
			continue
		}
		if err := l.addViewFields(def, key, fields); err != nil {
			return nil, err
		}
	}

	view := tables.NewView(fields.End(), opts)
	if err := l.store(name, view); err != nil {
		return nil, err
	}
	return view, nil
}

// groupTag returns the suffix after the first underscore of a fields group
// name: "fields_brief" -> "brief", "fields" -> ""
func groupTag(groupName string) string {
	if i := strings.IndexByte(groupName, '_'); i >= 0 {
		return groupName[i+1:]
	}
	return ""
}

func (l *Loader) addViewFields(view *Definition, groupName string, fields *tables.Fields) error {
	attr, _ := view.Get(groupName)
	if attr.Value == nil {
		return nil
	}

	group, ok := attr.Value.(*Mapping)
	if !ok {
		return &MalformedDefinitionError{
			Item:    view.Name,
			Path:    groupName,
			Message: fmt.Sprintf("fields group must be a mapping, got %s", describe(attr.Value)),
			Line:    attr.Line,
		}
	}

	tag := groupTag(groupName)

	for _, field := range group.Attrs {
		path := groupName + "." + field.Key

		switch spec := field.Value.(type) {
		case *Mapping:
			if err := l.addMappingField(view.Name, path, field, spec, tag, fields); err != nil {
				return err
			}

		case string:
			if l.doc.Has(spec) {
				tbl, err := l.resolveTable(view.Name, spec, field.Line)
				if err != nil {
					return err
				}
				fields.Table(field.Key, tbl)
				continue
			}
			fields.Str(field.Key, spec, tag)

		case bool:
			if !spec {
				return &MalformedDefinitionError{
					Item:    view.Name,
					Path:    path,
					Message: "field spec false is not allowed; remove the field or give it an xpath",
					Line:    field.Line,
				}
			}
			fields.Str(field.Key, field.Key, tag)

		default:
			return &MalformedDefinitionError{
				Item:    view.Name,
				Path:    path,
				Message: fmt.Sprintf("field spec must be true, an xpath, an item name or a mapping, got %s", describe(field.Value)),
				Line:    field.Line,
			}
		}
	}

	return nil
}

// addMappingField handles {xpath: type} and {table: Name} field specs
func (l *Loader) addMappingField(item, path string, field Attr, spec *Mapping, tag string, fields *tables.Fields) error {
	if spec.Len() != 1 {
		return &MalformedDefinitionError{
			Item:    item,
			Path:    path,
			Message: fmt.Sprintf("field mapping must have exactly one key, got %d", spec.Len()),
			Line:    field.Line,
		}
	}

	pair := spec.Attrs[0]
	value, ok := pair.Value.(string)
	if !ok {
		return &MalformedDefinitionError{
			Item:    item,
			Path:    path,
			Message: fmt.Sprintf("value of %q must be a name, got %s", pair.Key, describe(pair.Value)),
			Line:    pair.Line,
		}
	}

	if pair.Key == "table" && l.isTableRef(value) {
		tbl, err := l.resolveTable(item, value, pair.Line)
		if err != nil {
			return err
		}
		fields.Table(field.Key, tbl)
		return nil
	}

	info, ok := types.Lookup(value)
	if !ok {
		return &UnsupportedTypeError{
			Item:      item,
			Field:     field.Key,
			Type:      value,
			Supported: types.Names(),
			Line:      pair.Line,
		}
	}

	fields.AsType(field.Key, pair.Key, info, tag)
	return nil
}

// isTableRef decides whether {table: value} names a sub-table rather than a
// typed field read from the xpath "table". Item names win over type names.
func (l *Loader) isTableRef(value string) bool {
	if l.doc.Has(value) {
		return true
	}
	_, isType := types.Lookup(value)
	return !isType
}

func (l *Loader) buildTable(name string) (*tables.Table, error) {
	if cls, ok := l.cached(name); ok {
		if t, ok := cls.(*tables.Table); ok {
			return t, nil
		}
		return nil, &KindMismatchError{Item: name, Ref: name, Want: KindTable, Got: KindOf(cls)}
	}

	tbl, err := l.newTable(name)
	if err != nil {
		return nil, fmt.Errorf("build table %q: %w", name, err)
	}
	return tbl, nil
}

func (l *Loader) newTable(name string) (*tables.Table, error) {
	def, ok := l.doc.Get(name)
	if !ok {
		return nil, &MissingReferenceError{Ref: name}
	}
	if err := l.enter(name); err != nil {
		return nil, err
	}
	defer l.leave()

	item, err := requiredString(def, "item")
	if err != nil {
		return nil, err
	}

	opts, err := l.tableOptions(def, "item")
	if err != nil {
		return nil, err
	}

	tbl := tables.NewTable(item, opts)
	if err := l.store(name, tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

func (l *Loader) buildGetTable(name string) (*tables.GetTable, error) {
	if cls, ok := l.cached(name); ok {
		if g, ok := cls.(*tables.GetTable); ok {
			return g, nil
		}
		return nil, &KindMismatchError{Item: name, Ref: name, Want: KindGetTable, Got: KindOf(cls)}
	}

	gt, err := l.newGetTable(name)
	if err != nil {
		return nil, fmt.Errorf("build get-table %q: %w", name, err)
	}
	return gt, nil
}

func (l *Loader) newGetTable(name string) (*tables.GetTable, error) {
	def, ok := l.doc.Get(name)
	if !ok {
		return nil, &MissingReferenceError{Ref: name}
	}
	if err := l.enter(name); err != nil {
		return nil, err
	}
	defer l.leave()

	rpc, err := requiredString(def, "rpc")
	if err != nil {
		return nil, err
	}

	opts, err := l.tableOptions(def, "rpc")
	if err != nil {
		return nil, err
	}

	gt := tables.NewGetTable(rpc, opts)
	if err := l.store(name, gt); err != nil {
		return nil, err
	}
	return gt, nil
}

// tableOptions forwards every attribute except the extracted key, with
// the view reference replaced by the built view
func (l *Loader) tableOptions(def *Definition, extracted string) (tables.TableOptions, error) {
	opts := tables.TableOptions{
		Name:    def.Name,
		Options: make(map[string]any, def.Len()),
	}

	for _, attr := range def.Attrs {
		switch attr.Key {
		case extracted:
			continue
		case "view":
			ref, ok := attr.Value.(string)
			if !ok || ref == "" {
				return opts, &MalformedDefinitionError{
					Item:    def.Name,
					Path:    "view",
					Message: fmt.Sprintf("view must name a view item, got %s", describe(attr.Value)),
					Line:    attr.Line,
				}
			}
			view, err := l.resolveView(def.Name, ref, attr.Line)
			if err != nil {
				return opts, err
			}
			opts.View = view
		default:
			opts.Options[attr.Key] = Plain(attr.Value)
		}
	}

	return opts, nil
}

// requiredString extracts a key every table or get-table must carry
func requiredString(def *Definition, key string) (string, error) {
	attr, ok := def.Get(key)
	if !ok || attr.Value == nil {
		return "", &MissingRequiredKeyError{Item: def.Name, Key: key, Line: def.Line}
	}

	s, ok := attr.Value.(string)
	if !ok {
		return "", &MalformedDefinitionError{
			Item:    def.Name,
			Path:    key,
			Message: fmt.Sprintf("%s must be a string, got %s", key, describe(attr.Value)),
			Line:    attr.Line,
		}
	}
	if s == "" {
		return "", &MissingRequiredKeyError{Item: def.Name, Key: key, Line: attr.Line}
	}
	return s, nil
}

// groupMap reads a view's groups attribute: group tag -> xpath
func groupMap(item string, attr Attr) (map[string]string, error) {
	m, ok := attr.Value.(*Mapping)
	if !ok {
		return nil, &MalformedDefinitionError{
			Item:    item,
			Path:    "groups",
			Message: fmt.Sprintf("groups must be a mapping of group name to xpath, got %s", describe(attr.Value)),
			Line:    attr.Line,
		}
	}

	groups := make(map[string]string, m.Len())
	for _, g := range m.Attrs {
		xpath, ok := g.Value.(string)
		if !ok {
			return nil, &MalformedDefinitionError{
				Item:    item,
				Path:    "groups." + g.Key,
				Message: fmt.Sprintf("group xpath must be a string, got %s", describe(g.Value)),
				Line:    g.Line,
			}
		}
		groups[g.Key] = xpath
	}
	return groups, nil
}

// describe names the YAML shape of a decoded value for error messages
func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case *Mapping:
		return "a mapping"
	case []any:
		return "a sequence"
	case string:
		return fmt.Sprintf("string %q", val)
	default:
		return fmt.Sprintf("%T %v", v, v)
	}
}
