package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/simonhull/optable/internal/catalog"
	"github.com/simonhull/optable/internal/tables"
)

func (p *Printer) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.st.border).
		Headers(headers...).
		Rows(rows...)

	if p.styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.st.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.String()
}

// Catalog prints every item of cat with its kind and a one-line summary
func (p *Printer) Catalog(cat *catalog.Catalog) {
	rows := make([][]string, 0, cat.Len())
	for _, name := range cat.Names() {
		cls, _ := cat.Get(name)
		rows = append(rows, []string{name, catalog.KindOf(cls).String(), summary(cls)})
	}
	fmt.Fprintln(p.w, p.table([]string{"ITEM", "KIND", "DETAIL"}, rows))
}

func summary(cls tables.Class) string {
	switch c := cls.(type) {
	case *tables.GetTable:
		return "rpc " + c.RPC + viewSuffix(c.View)
	case *tables.Table:
		return "item " + c.Item + viewSuffix(c.View)
	case *tables.View:
		return fmt.Sprintf("%d fields", c.Fields.Len())
	}
	return ""
}

func viewSuffix(v *tables.View) string {
	if v == nil {
		return ""
	}
	return ", view " + v.Name
}

// Item prints the full definition of a built item
func (p *Printer) Item(cls tables.Class) {
	kind := catalog.KindOf(cls)
	p.Info(fmt.Sprintf("%s (%s)", cls.ItemName(), kind))

	switch c := cls.(type) {
	case *tables.GetTable:
		p.Step("rpc: " + c.RPC)
		p.options(c.Options)
		p.view(c.View)
	case *tables.Table:
		p.Step("item: " + c.Item)
		p.options(c.Options)
		p.view(c.View)
	case *tables.View:
		p.fields(c)
	}
}

func (p *Printer) options(opts map[string]any) {
	for _, key := range tables.OptionKeys(opts) {
		p.Step(fmt.Sprintf("%s: %v", key, opts[key]))
	}
}

func (p *Printer) view(v *tables.View) {
	if v == nil {
		p.Step("view: (none)")
		return
	}
	p.Step("view: " + v.Name)
	p.fields(v)
}

func (p *Printer) fields(v *tables.View) {
	if len(v.Groups) > 0 {
		groups := make([]string, 0, len(v.Groups))
		for _, tag := range v.GroupNames() {
			groups = append(groups, tag+"="+v.Groups[tag])
		}
		p.Step("groups: " + strings.Join(groups, ", "))
	}

	rows := make([][]string, 0, v.Fields.Len())
	for _, f := range v.Fields.All() {
		rows = append(rows, []string{f.Name, f.XPath, fieldType(f), f.Group})
	}
	fmt.Fprintln(p.w, p.table([]string{"FIELD", "XPATH", "TYPE", "GROUP"}, rows))
}

func fieldType(f tables.Field) string {
	if f.Kind == tables.FieldTable {
		return "table " + f.Table.Name
	}
	return f.Type.Name
}

// Types prints the supported type names
func (p *Printer) Types(names []string) {
	for _, name := range names {
		p.Step(name)
	}
}
