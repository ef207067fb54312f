package tables

import (
	"testing"

	"github.com/simonhull/optable/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKindString(t *testing.T) {
	tests := []struct {
		kind FieldKind
		want string
	}{
		{FieldString, "string"},
		{FieldTyped, "typed"},
		{FieldTable, "table"},
		{FieldKind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestFieldsEnd(t *testing.T) {
	intType, ok := types.Lookup("int")
	require.True(t, ok)

	sub := NewTable("logical-interface", TableOptions{Name: "LogicalTable"})

	set := NewFields().
		Str("oper", "oper-status", "").
		AsType("mtu", "mtu", intType, "").
		Str("flap", "interface-flapped", "brief").
		Table("logical", sub).
		End()

	require.Equal(t, 4, set.Len())
	assert.Equal(t, []string{"oper", "mtu", "flap", "logical"}, set.Names())

	oper, ok := set.Get("oper")
	require.True(t, ok)
	assert.Equal(t, FieldString, oper.Kind)
	assert.Equal(t, "oper-status", oper.XPath)
	assert.Empty(t, oper.Group)

	mtu, ok := set.Get("mtu")
	require.True(t, ok)
	assert.Equal(t, FieldTyped, mtu.Kind)
	assert.Equal(t, "int", mtu.Type.Name)

	logical, ok := set.Get("logical")
	require.True(t, ok)
	assert.Equal(t, FieldTable, logical.Kind)
	assert.Same(t, sub, logical.Table)
	assert.Equal(t, "logical-interface", logical.XPath)

	brief := set.Group("brief")
	require.Len(t, brief, 1)
	assert.Equal(t, "flap", brief[0].Name)

	_, ok = set.Get("missing")
	assert.False(t, ok)
}

func TestFieldsDuplicateNameKeepsPosition(t *testing.T) {
	set := NewFields().
		Str("a", "a", "").
		Str("b", "b", "").
		Str("a", "alpha", "extra").
		End()

	assert.Equal(t, []string{"a", "b"}, set.Names())

	a, _ := set.Get("a")
	assert.Equal(t, "alpha", a.XPath)
	assert.Equal(t, "extra", a.Group)
}

func TestFieldSetIsDetached(t *testing.T) {
	b := NewFields().Str("a", "a", "")
	set := b.End()

	b.Str("b", "b", "")

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, 2, b.End().Len())
}

func TestFieldConvert(t *testing.T) {
	floatType, _ := types.Lookup("float")
	set := NewFields().
		AsType("price", "price", floatType, "").
		Str("name", "name", "").
		Table("rows", NewTable("row", TableOptions{Name: "RowTable"})).
		End()

	price, _ := set.Get("price")
	v, err := price.Convert("19.5")
	require.NoError(t, err)
	assert.Equal(t, 19.5, v)

	name, _ := set.Get("name")
	v, err = name.Convert(" xe-0/0/1 ")
	require.NoError(t, err)
	assert.Equal(t, "xe-0/0/1", v)

	rows, _ := set.Get("rows")
	_, err = rows.Convert("anything")
	assert.Error(t, err)
}
