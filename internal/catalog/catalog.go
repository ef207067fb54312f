package catalog

import (
	"fmt"

	"github.com/simonhull/optable/internal/tables"
)

// Catalog maps item names to built classes.
// Entries are only ever added, and each name at most once.
type Catalog struct {
	names []string
	items map[string]tables.Class
}

func newCatalog() *Catalog {
	return &Catalog{items: make(map[string]tables.Class)}
}

func (c *Catalog) add(name string, cls tables.Class) error {
	if _, exists := c.items[name]; exists {
		return fmt.Errorf("catalog already holds item %q", name)
	}
	c.items[name] = cls
	c.names = append(c.names, name)
	return nil
}

// Get returns the class built for name
func (c *Catalog) Get(name string) (tables.Class, bool) {
	cls, ok := c.items[name]
	return cls, ok
}

// Names returns the item names in the order they were built
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of built items
func (c *Catalog) Len() int {
	return len(c.names)
}

// View returns name if it was built as a view
func (c *Catalog) View(name string) (*tables.View, bool) {
	v, ok := c.items[name].(*tables.View)
	return v, ok
}

// Table returns name if it was built as a table
func (c *Catalog) Table(name string) (*tables.Table, bool) {
	t, ok := c.items[name].(*tables.Table)
	return t, ok
}

// GetTable returns name if it was built as a get-table
func (c *Catalog) GetTable(name string) (*tables.GetTable, bool) {
	g, ok := c.items[name].(*tables.GetTable)
	return g, ok
}

// KindOf reports the kind of a built item
func KindOf(cls tables.Class) Kind {
	switch cls.(type) {
	case *tables.GetTable:
		return KindGetTable
	case *tables.Table:
		return KindTable
	default:
		return KindView
	}
}
