package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewView(t *testing.T) {
	groups := map[string]string{"mac_stats": "ethernet-mac-statistics", "flags": "if-device-flags"}
	view := NewView(NewFields().Str("name", "name", "").End(), ViewOptions{
		Name:   "EthPortView",
		Groups: groups,
	})

	assert.Equal(t, "EthPortView", view.ItemName())
	assert.Equal(t, []string{"flags", "mac_stats"}, view.GroupNames())
	assert.Equal(t, 1, view.Fields.Len())

	// the view owns its groups
	groups["extra"] = "x"
	assert.Len(t, view.Groups, 2)
}

func TestNewTable(t *testing.T) {
	view := NewView(FieldSet{}, ViewOptions{Name: "V"})
	opts := map[string]any{"key": "name"}

	tbl := NewTable("physical-interface", TableOptions{
		Name:    "EthPortTable",
		View:    view,
		Options: opts,
	})

	assert.Equal(t, "EthPortTable", tbl.ItemName())
	assert.Equal(t, "physical-interface", tbl.Item)
	assert.Same(t, view, tbl.View)

	key, ok := tbl.Option("key")
	assert.True(t, ok)
	assert.Equal(t, "name", key)

	opts["key"] = "changed"
	key, _ = tbl.Option("key")
	assert.Equal(t, "name", key)
}

func TestNewGetTable(t *testing.T) {
	gt := NewGetTable("get-interface-information", TableOptions{
		Name:    "EthPortTable",
		Options: map[string]any{"item": "physical-interface", "args": map[string]any{"extensive": true}},
	})

	assert.Equal(t, "EthPortTable", gt.ItemName())
	assert.Equal(t, "get-interface-information", gt.RPC)
	assert.Nil(t, gt.View)
	assert.Equal(t, []string{"args", "item"}, OptionKeys(gt.Options))

	_, ok := gt.Option("missing")
	assert.False(t, ok)
}

func TestClassInterface(t *testing.T) {
	classes := []Class{
		NewView(FieldSet{}, ViewOptions{Name: "V"}),
		NewTable("x", TableOptions{Name: "T"}),
		NewGetTable("get-x", TableOptions{Name: "G"}),
	}

	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.ItemName())
	}
	assert.Equal(t, []string{"V", "T", "G"}, names)
}
