package client

import (
	"strings"

	"golang.org/x/net/html"
)

//ColumnVisibility drives the column toggle switches of one rendered grid.
//It addresses cells purely by their table-column-{uuid} class, so it never
//needs a handle on the table that produced the markup.
type ColumnVisibility struct {
	root *html.Node
}

func NewColumnVisibility(root *html.Node) *ColumnVisibility {
	return &ColumnVisibility{root: root}
}

//SetColumnVisible shows or hides every header and body cell of the column
//with the given uuid. An unknown uuid is a silent no-op, matching a toggle
//for a column the current page does not render.
func (c *ColumnVisibility) SetColumnVisible(uuid string, visible bool) {
	for _, node := range findByClass(c.root, "table-column-"+uuid) {
		setDisplayed(node, visible)
	}
}

//ColumnVisible reports whether the column's cells currently render. An
//unknown uuid reports false.
func (c *ColumnVisibility) ColumnVisible(uuid string) bool {
	nodes := findByClass(c.root, "table-column-"+uuid)
	if len(nodes) == 0 {
		return false
	}
	return !strings.Contains(attrValue(nodes[0], "style"), "display: none")
}
