package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Attr is one key/value pair of a mapping, in document order
type Attr struct {
	Key   string
	Value any // *Mapping, []any, or a scalar (bool, int, float64, string, nil)
	Line  int
}

// Mapping is an ordered YAML mapping
type Mapping struct {
	Attrs []Attr
	Line  int
	index map[string]int
}

// NewMapping builds a mapping from attrs, later duplicates replacing earlier ones
func NewMapping(attrs ...Attr) *Mapping {
	m := &Mapping{index: make(map[string]int, len(attrs))}
	for _, a := range attrs {
		m.set(a)
	}
	return m
}

func (m *Mapping) set(a Attr) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[a.Key]; ok {
		m.Attrs[i] = a
		return
	}
	m.index[a.Key] = len(m.Attrs)
	m.Attrs = append(m.Attrs, a)
}

// Get returns the attribute stored under key
func (m *Mapping) Get(key string) (Attr, bool) {
	if m == nil {
		return Attr{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Attr{}, false
	}
	return m.Attrs[i], true
}

// Has reports whether key is present
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in document order
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.Attrs))
	for i, a := range m.Attrs {
		keys[i] = a.Key
	}
	return keys
}

// Len returns the number of attributes
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Attrs)
}

// Definition is a named item of a document
type Definition struct {
	Name string
	*Mapping
}

// NewDefinition creates an item definition from attrs
func NewDefinition(name string, attrs ...Attr) *Definition {
	return &Definition{Name: name, Mapping: NewMapping(attrs...)}
}

// Document is a parsed catalog source: item name -> definition, in document order
type Document struct {
	items []*Definition
	index map[string]int
}

// NewDocument assembles a document from definitions.
// A repeated name is a MalformedDefinitionError.
func NewDocument(defs ...*Definition) (*Document, error) {
	doc := &Document{index: make(map[string]int, len(defs))}
	for _, def := range defs {
		if err := doc.add(def); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) add(def *Definition) error {
	if def.Mapping == nil {
		def.Mapping = NewMapping()
	}
	if _, exists := d.index[def.Name]; exists {
		return &MalformedDefinitionError{
			Item:    def.Name,
			Message: "item is defined more than once",
			Line:    def.Line,
		}
	}
	d.index[def.Name] = len(d.items)
	d.items = append(d.items, def)
	return nil
}

// Names returns the item names in document order
func (d *Document) Names() []string {
	names := make([]string, len(d.items))
	for i, def := range d.items {
		names[i] = def.Name
	}
	return names
}

// Get returns the named definition
func (d *Document) Get(name string) (*Definition, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.items[i], true
}

// Has reports whether the document defines name
func (d *Document) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Len returns the number of items
func (d *Document) Len() int {
	return len(d.items)
}

// Decode parses YAML bytes into a Document.
// An empty input yields an empty document.
func Decode(data []byte) (*Document, error) {
	var root yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDocument()
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewDocument()
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)

	// "---" alone or an explicit null document
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return NewDocument()
	}

	if node.Kind != yaml.MappingNode {
		return nil, &MalformedDefinitionError{
			Message: "document must be a mapping of item names to definitions",
			Line:    node.Line,
		}
	}

	doc, _ := NewDocument()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := resolveAlias(node.Content[i+1])
		name := keyNode.Value

		if isMergeKey(keyNode) {
			return nil, &MalformedDefinitionError{
				Message: "merge keys are not supported between items",
				Line:    keyNode.Line,
			}
		}

		if valueNode.Kind != yaml.MappingNode {
			return nil, &MalformedDefinitionError{
				Item:    name,
				Message: "item definition must be a mapping",
				Line:    keyNode.Line,
			}
		}

		body, err := decodeMapping(valueNode, name)
		if err != nil {
			return nil, err
		}
		body.Line = keyNode.Line

		if err := doc.add(&Definition{Name: name, Mapping: body}); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// decodeMapping walks a mapping node keeping key order and line numbers.
// Merge keys are expanded first so explicit keys override merged ones.
func decodeMapping(node *yaml.Node, item string) (*Mapping, error) {
	m := &Mapping{Line: node.Line, index: make(map[string]int, len(node.Content)/2)}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if isMergeKey(node.Content[i]) {
			if err := mergeInto(m, node.Content[i+1], item); err != nil {
				return nil, err
			}
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if isMergeKey(keyNode) {
			continue
		}
		value, err := decodeValue(node.Content[i+1], item)
		if err != nil {
			return nil, err
		}
		m.set(Attr{Key: keyNode.Value, Value: value, Line: keyNode.Line})
	}

	return m, nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

// mergeInto copies the attributes of a "<<" value into m. In a sequence of
// mappings the earlier entries win.
func mergeInto(m *Mapping, node *yaml.Node, item string) error {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		src, err := decodeMapping(node, item)
		if err != nil {
			return err
		}
		for _, a := range src.Attrs {
			m.set(a)
		}
		return nil
	case yaml.SequenceNode:
		for i := len(node.Content) - 1; i >= 0; i-- {
			child := resolveAlias(node.Content[i])
			if child.Kind != yaml.MappingNode {
				return &MalformedDefinitionError{
					Item:    item,
					Message: "merge key sequence must only hold mappings",
					Line:    child.Line,
				}
			}
			if err := mergeInto(m, child, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return &MalformedDefinitionError{
			Item:    item,
			Message: "merge key value must be a mapping or a sequence of mappings",
			Line:    node.Line,
		}
	}
}

func decodeValue(node *yaml.Node, item string) (any, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node, item)
	case yaml.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := decodeValue(child, item)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, &MalformedDefinitionError{
				Item:    item,
				Message: fmt.Sprintf("invalid scalar %q: %v", node.Value, err),
				Line:    node.Line,
			}
		}
		return v, nil
	default:
		return nil, &MalformedDefinitionError{
			Item:    item,
			Message: "unsupported YAML node",
			Line:    node.Line,
		}
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// Plain converts decoded values to plain Go maps and slices
func Plain(v any) any {
	switch val := v.(type) {
	case *Mapping:
		out := make(map[string]any, val.Len())
		for _, a := range val.Attrs {
			out[a.Key] = Plain(a.Value)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}
