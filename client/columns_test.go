package client

import (
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/flexihtml/flexihtml/flexihtml"
)

func parseMarkup(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return root
}

func renderedGrid(t *testing.T) (*flexihtml.Table, *html.Node) {
	t.Helper()
	table := flexihtml.NewTable()
	table.Add("title", "", nil, "", 0, true, "")
	table.Add("price", "", nil, "", 1, false, "")
	table.Fill([]flexihtml.Row{{"title": "One", "price": 1.5}}, 1, 0, 15, 11)
	return table, parseMarkup(t, table.RenderTable(url.Values{}))
}

func TestSetColumnVisible(t *testing.T) {
	table, root := renderedGrid(t)
	visibility := NewColumnVisibility(root)
	labels := table.Labels()

	if !visibility.ColumnVisible(labels[0].UUID) {
		t.Error("visible column reported hidden")
	}
	if visibility.ColumnVisible(labels[1].UUID) {
		t.Error("hidden column reported visible")
	}

	visibility.SetColumnVisible(labels[1].UUID, true)
	if !visibility.ColumnVisible(labels[1].UUID) {
		t.Error("column still hidden after toggling on")
	}

	visibility.SetColumnVisible(labels[0].UUID, false)
	if visibility.ColumnVisible(labels[0].UUID) {
		t.Error("column still visible after toggling off")
	}

	// both the header and the body cell have to move together
	hidden := 0
	for _, node := range findByClass(root, "table-column-"+labels[0].UUID) {
		if strings.Contains(attrValue(node, "style"), "display: none") {
			hidden++
		}
	}
	if hidden != 2 {
		t.Errorf("%d cells hidden, want header and body cell", hidden)
	}
}

func TestSetColumnVisibleUnknownColumn(t *testing.T) {
	_, root := renderedGrid(t)
	visibility := NewColumnVisibility(root)

	// must not panic or touch anything
	visibility.SetColumnVisible("ffffff", false)
	if visibility.ColumnVisible("ffffff") {
		t.Error("unknown column reported visible")
	}
}
