package flexihtml

import (
	"net/url"
	"strings"
	"testing"
)

func TestRenderTableAddressing(t *testing.T) {
	table := NewTable()
	table.Add("title", "", nil, "", 0, true, "")
	table.Add("price", "", nil, "", 1, false, "")
	table.Fill(testRows(1), 1, 0, 15, 11)

	html := table.RenderTable(url.Values{})
	labels := table.Labels()

	if strings.Count(html, "table-column-"+labels[0].UUID) != 2 {
		t.Error("title column uuid class missing on header or cell")
	}
	if strings.Count(html, "table-column-"+labels[1].UUID) != 2 {
		t.Error("price column uuid class missing on header or cell")
	}
	if strings.Count(html, `style="display: none;"`) != 2 {
		t.Error("hidden column not masked on both header and cell")
	}
	if !strings.Contains(html, "sort=title") || !strings.Contains(html, "order=asc") {
		t.Error("sortable header missing sort link")
	}
	if strings.Contains(html, "sort=price") {
		t.Error("unsortable header got a sort link")
	}
}

func TestRenderTableSortToggle(t *testing.T) {
	params := url.Values{"sort": {"title"}, "order": {"asc"}, "title_sb1": {"abc"}}
	link := sortLink(params, "title")
	if !strings.Contains(link, "order=desc") {
		t.Errorf("second click on sorted column = %q, want descending", link)
	}
	if !strings.Contains(link, "title_sb1=abc") {
		t.Errorf("sort link %q drops the search parameters", link)
	}
	if link := sortLink(params, "price"); !strings.Contains(link, "order=asc") {
		t.Errorf("click on another column = %q, want ascending", link)
	}
}

func TestRenderSwitches(t *testing.T) {
	table := NewTable()
	table.Add("title", "", nil, "", 0, true, "")
	table.Add("price", "", nil, "", 1, false, "")
	table.Add("actions", "", nil, "", -1, false, "")

	html := table.RenderSwitches()
	labels := table.Labels()

	if !strings.Contains(html, "switch-"+labels[0].UUID) || !strings.Contains(html, "switch-"+labels[1].UUID) {
		t.Error("toggleable columns missing their switch")
	}
	if strings.Contains(html, "switch-"+labels[2].UUID) {
		t.Error("always-on column got a switch")
	}
	if strings.Count(html, `checked="1"`) != 1 {
		t.Error("only the visible column should render checked")
	}
}

func TestRenderPaginations(t *testing.T) {
	table := NewTable()
	table.SetPageQName("products_pg")
	table.Add("title", "", nil, "", 0, true, "")
	table.Fill(testRows(10), 30, 10, 10, 11)

	html := table.RenderPaginations(url.Values{"title_sb1": {"abc"}})
	if !strings.Contains(html, "products_pg=3") {
		t.Error("page links not built with the table's page parameter")
	}
	if !strings.Contains(html, "title_sb1=abc") {
		t.Error("page links drop the search parameters")
	}
	if strings.Count(html, "page-item active") != 1 {
		t.Error("exactly one page should be active")
	}
}

func TestRenderSearchboxLayout(t *testing.T) {
	set := NewSearchboxSet()
	box := set.Add("price", InputTypeNumber, "Price", "")

	html := box.RenderSearchbox("products")
	if !strings.Contains(html, `id="div-1-price"`) || !strings.Contains(html, `id="div-2-price"`) {
		t.Fatal("value containers not addressable")
	}
	if !strings.Contains(html, `class="col-12" id="div-1-price"`) {
		t.Error("first container not full width for a single-value operator")
	}
	if !strings.Contains(html, `style="display: none;"`) {
		t.Error("second container not masked for a single-value operator")
	}
	if !strings.Contains(html, `disabled="disabled"`) {
		t.Error("second input not disabled for a single-value operator")
	}
	if !strings.Contains(html, `name="price_sb0"`) || !strings.Contains(html, `name="price_sb1"`) || !strings.Contains(html, `name="price_sb2"`) {
		t.Error("derived input names missing")
	}
	if !strings.Contains(html, `id="products-price"`) {
		t.Error("suggestion list not addressable as model-column")
	}

	box.ExpSelected = OpIsBetween
	html = box.RenderSearchbox("products")
	if !strings.Contains(html, `class="col-6" id="div-1-price"`) || !strings.Contains(html, `class="col-6" id="div-2-price"`) {
		t.Error("containers not split for a range operator")
	}
	if strings.Contains(html, `disabled="disabled"`) {
		t.Error("second input still disabled for a range operator")
	}
	if strings.Contains(html, `style="display: none;"`) {
		t.Error("second container still masked for a range operator")
	}
}

func TestRenderSearchboxSelect(t *testing.T) {
	set := NewSearchboxSet()
	box := set.Add("active", InputTypeBoolean, "Active", "")
	box.InputValue1 = "1"
	box.ExpSelected = OpIsEqual

	html := box.RenderSearchbox("products")
	if !strings.Contains(html, "<select") {
		t.Fatal("boolean searchbox not rendered as select")
	}
	if !strings.Contains(html, `selected="selected" value="1">True`) {
		t.Error("submitted value not reselected")
	}
	if strings.Contains(html, "datalist") {
		t.Error("select input got a suggestion list")
	}
}

func TestRenderDetailPane(t *testing.T) {
	html := RenderDetailPane()
	if !strings.Contains(html, `id="`+PaneID+`"`) {
		t.Error("detail pane container missing its fixed id")
	}
	if !strings.Contains(html, PaneLoadingTitle) {
		t.Error("detail pane missing the loading title")
	}
}
