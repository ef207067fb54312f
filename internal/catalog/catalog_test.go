package catalog

import (
	"testing"

	"github.com/simonhull/optable/internal/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsAppendOnly(t *testing.T) {
	c := newCatalog()
	view := tables.NewView(tables.FieldSet{}, tables.ViewOptions{Name: "V"})

	require.NoError(t, c.add("V", view))
	err := c.add("V", tables.NewView(tables.FieldSet{}, tables.ViewOptions{Name: "V"}))
	assert.Error(t, err)

	got, ok := c.Get("V")
	require.True(t, ok)
	assert.Same(t, view, got)
	assert.Equal(t, 1, c.Len())
}

func TestCatalogTypedAccessors(t *testing.T) {
	c := newCatalog()
	require.NoError(t, c.add("V", tables.NewView(tables.FieldSet{}, tables.ViewOptions{Name: "V"})))
	require.NoError(t, c.add("T", tables.NewTable("row", tables.TableOptions{Name: "T"})))
	require.NoError(t, c.add("G", tables.NewGetTable("get-g", tables.TableOptions{Name: "G"})))

	assert.Equal(t, []string{"V", "T", "G"}, c.Names())

	_, ok := c.View("V")
	assert.True(t, ok)
	_, ok = c.View("T")
	assert.False(t, ok)
	_, ok = c.Table("T")
	assert.True(t, ok)
	_, ok = c.GetTable("G")
	assert.True(t, ok)
	_, ok = c.GetTable("missing")
	assert.False(t, ok)

	for name, want := range map[string]Kind{"V": KindView, "T": KindTable, "G": KindGetTable} {
		cls, _ := c.Get(name)
		assert.Equal(t, want, KindOf(cls), name)
	}

	names := c.Names()
	names[0] = "mutated"
	assert.Equal(t, "V", c.Names()[0])
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&MissingReferenceError{Item: "T", Ref: "V", Line: 3}, `item "T" references undefined item "V" (line 3)`},
		{&MissingReferenceError{Ref: "V"}, `item "V" is not defined`},
		{&MissingRequiredKeyError{Item: "T", Key: "item"}, `item "T" is missing required key "item"`},
		{&UnsupportedTypeError{Item: "V", Field: "p", Type: "money"}, `field "p" of item "V" uses unsupported type "money"`},
		{&MalformedDefinitionError{Message: "bad"}, "malformed document: bad"},
		{&MalformedDefinitionError{Item: "V", Message: "bad", Line: 2}, `malformed item "V" (line 2): bad`},
		{&MalformedDefinitionError{Item: "V", Path: "fields.a", Message: "bad"}, `malformed item "V" at fields.a: bad`},
		{&KindMismatchError{Item: "T", Ref: "U", Want: KindView, Got: KindTable}, `item "T" references "U" as a view, but it is a table`},
		{&CircularReferenceError{Chain: []string{"A", "B", "A"}}, "circular reference: A -> B -> A"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
