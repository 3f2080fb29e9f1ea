package flexihtml

import (
	"net/url"
	"strconv"
	"strings"
)

//Fixed addressing for the one detail pane per page and its loading state.
const (
	PaneID           = "flexipane"
	PaneLoadingTitle = "Loading ..."
	PaneLoadingBody  = `<div class="flexipane-loading">Loading ...</div>`
)

func sortLink(params url.Values, name string) string {
	link := url.Values{}
	for key, values := range params {
		for _, value := range values {
			link.Add(key, value)
		}
	}
	order := "asc"
	if link.Get("sort") == name && link.Get("order") == "asc" {
		order = "desc"
	}
	link.Set("sort", name)
	link.Set("order", order)
	return "?" + link.Encode()
}

//RenderTable renders the grid table. Every header and body cell of a column
//carries the table-column-{uuid} class the visibility controller addresses;
//columns hidden via the tri-state flag render with inline display none.
func (t *Table) RenderTable(params url.Values) string {
	var html strings.Builder
	html.WriteString(`<table class="table table-striped flexitable"><thead><tr>`)
	for _, entry := range t.labels {
		attributes := map[string]interface{}{
			"class": strings.TrimSpace("table-column-" + entry.UUID + " " + entry.Column.Classname),
		}
		if entry.Column.Hidden > 0 {
			attributes["style"] = "display: none;"
		}
		html.WriteString("<th " + FlattenAttributes(attributes) + ">")
		if entry.Column.Sortable {
			html.WriteString(`<a href="` + HTMLEncode(sortLink(params, entry.Column.Name)) + `">` + HTMLEncode(entry.Column.Label) + "</a>")
		} else {
			html.WriteString(HTMLEncode(entry.Column.Label))
		}
		html.WriteString("</th>")
	}
	html.WriteString("</tr></thead><tbody>")
	for _, line := range t.items {
		html.WriteString(`<tr id="line-` + line.UUID + `">`)
		for _, entry := range t.labels {
			attributes := map[string]interface{}{
				"class": strings.TrimSpace("table-column-" + entry.UUID + " " + entry.Column.Classname),
			}
			if entry.Column.Hidden > 0 {
				attributes["style"] = "display: none;"
			}
			html.WriteString("<td " + FlattenAttributes(attributes) + ">" + line.Cells[entry.UUID] + "</td>")
		}
		html.WriteString("</tr>")
	}
	html.WriteString("</tbody></table>")
	return html.String()
}

//RenderSwitches renders one visibility switch per toggleable column.
//Columns with a negative hidden flag are not offered.
func (t *Table) RenderSwitches() string {
	var html strings.Builder
	html.WriteString(`<div class="flexitable-switches">`)
	for _, entry := range t.labels {
		if entry.Column.Hidden < 0 {
			continue
		}
		attributes := map[string]interface{}{
			"type":             "checkbox",
			"class":            "form-check-input flexitable-switch",
			"id":               "switch-" + entry.UUID,
			"data-column-uuid": entry.UUID,
			"checked":          entry.Column.Hidden == 0,
		}
		if entry.Column.Hidden > 0 {
			delete(attributes, "checked")
		}
		html.WriteString(`<div class="form-check form-switch">`)
		html.WriteString("<input " + FlattenAttributes(attributes) + " />")
		html.WriteString(`<label class="form-check-label" for="switch-` + entry.UUID + `">` + HTMLEncode(entry.Column.Label) + "</label>")
		html.WriteString("</div>")
	}
	html.WriteString("</div>")
	return html.String()
}

//RenderPaginations renders the page links using the table's page parameter.
func (t *Table) RenderPaginations(params url.Values) string {
	var html strings.Builder
	html.WriteString(`<ul class="pagination">`)
	for _, page := range t.paginations {
		link := url.Values{}
		for key, values := range params {
			for _, value := range values {
				link.Add(key, value)
			}
		}
		link.Set(t.pageQName, strconv.Itoa(page.Page))
		classname := "page-item"
		if page.Active {
			classname += " active"
		}
		html.WriteString(`<li class="` + classname + `"><a class="page-link" href="?` + HTMLEncode(link.Encode()) + `">` + HTMLEncode(page.Text) + "</a></li>")
	}
	html.WriteString("</ul>")
	return html.String()
}

func (b *Searchbox) renderValueInput(model string, which int, value string, layout Layout) string {
	name := b.InputName + "_sb" + strconv.Itoa(which)
	disabled := which == 2 && !layout.SecondEnabled
	switch b.HTMLInputTag {
	case "select":
		attributes := map[string]interface{}{
			"name":  name,
			"id":    "flexinput-" + ShortUUIDText(name),
			"class": "form-select",
		}
		if disabled {
			attributes["disabled"] = "disabled"
		}
		var html strings.Builder
		html.WriteString("<select " + FlattenAttributes(attributes) + ">")
		html.WriteString(`<option value=""></option>`)
		for _, option := range b.ValueOptions {
			optattributes := map[string]interface{}{"value": option.Value}
			if option.Value == value {
				optattributes["selected"] = "selected"
			}
			html.WriteString("<option " + FlattenAttributes(optattributes) + ">" + HTMLEncode(option.Label) + "</option>")
		}
		html.WriteString("</select>")
		return html.String()
	case "textarea":
		attributes := map[string]interface{}{
			"name":  name,
			"id":    "flexinput-" + ShortUUIDText(name),
			"class": "form-control",
			"rows":  "1",
		}
		if disabled {
			attributes["disabled"] = "disabled"
		}
		datalist := ""
		if which == 1 {
			attributes["list"] = model + "-" + b.InputName
			datalist = `<datalist id="` + HTMLEncode(model+"-"+b.InputName) + `"></datalist>`
		}
		return datalist + "<textarea " + FlattenAttributes(attributes) + ">" + HTMLEncode(value) + "</textarea>"
	default:
		attributes := map[string]interface{}{
			"name":  name,
			"id":    "flexinput-" + ShortUUIDText(name),
			"class": "form-control",
			"type":  b.HTMLInputType,
			"value": value,
		}
		if disabled {
			attributes["disabled"] = "disabled"
		}
		datalist := ""
		if which == 1 {
			attributes["list"] = model + "-" + b.InputName
			datalist = `<datalist id="` + HTMLEncode(model+"-"+b.InputName) + `"></datalist>`
		}
		return datalist + "<input " + FlattenAttributes(attributes) + " />"
	}
}

//RenderSearchbox renders one searchbox group: the operator select plus the
//two value containers div-1-{name} / div-2-{name}. The containers' spans
//and the second input's disabled state come from LayoutFor, the same rule
//the client controller applies on operator changes.
func (b *Searchbox) RenderSearchbox(model string) string {
	layout := LayoutFor(b.ExpSelected)

	var html strings.Builder
	html.WriteString(`<div class="form-group flexinput-group" id="flexinput-group-` + ShortUUIDText(b.InputName) + `">`)
	html.WriteString(`<label class="form-label">` + HTMLEncode(b.Label) + "</label>")
	html.WriteString(`<div class="row">`)

	html.WriteString(`<div class="col-4"><select ` + FlattenAttributes(map[string]interface{}{
		"name":            b.InputName + "_sb0",
		"class":           "form-select searchbox-exp",
		"data-input-name": b.InputName,
	}) + ">")
	for _, option := range b.ExpOptions {
		attributes := map[string]interface{}{"value": option.Value}
		if option.Value == b.ExpSelected {
			attributes["selected"] = "selected"
		}
		html.WriteString("<option " + FlattenAttributes(attributes) + ">" + HTMLEncode(option.Label) + "</option>")
	}
	html.WriteString("</select></div>")

	html.WriteString(`<div class="col-8"><div class="row">`)

	div1 := map[string]interface{}{
		"id":    "div-1-" + b.InputName,
		"class": "col-" + strconv.Itoa(layout.FirstSpan),
	}
	html.WriteString("<div " + FlattenAttributes(div1) + ">" + b.renderValueInput(model, 1, b.InputValue1, layout) + "</div>")

	div2 := map[string]interface{}{
		"id": "div-2-" + b.InputName,
	}
	if layout.SecondEnabled {
		div2["class"] = "col-" + strconv.Itoa(layout.SecondSpan)
	} else {
		div2["class"] = "col-6"
		div2["style"] = "display: none;"
	}
	html.WriteString("<div " + FlattenAttributes(div2) + ">" + b.renderValueInput(model, 2, b.InputValue2, layout) + "</div>")

	html.WriteString("</div></div></div>")
	if b.HelpText != "" {
		html.WriteString(`<small class="form-text text-muted">` + HTMLEncode(b.HelpText) + "</small>")
	}
	html.WriteString("</div>")
	return html.String()
}

//RenderSearchboxes renders the whole filter form.
func (s *SearchboxSet) RenderSearchboxes(model string, action string) string {
	var html strings.Builder
	html.WriteString(`<form method="get" action="` + HTMLEncode(action) + `" class="flexisearch">`)
	for _, box := range s.items {
		html.WriteString(box.RenderSearchbox(model))
	}
	html.WriteString(`<button type="submit" class="btn btn-primary">Search</button>`)
	html.WriteString("</form>")
	return html.String()
}

//RenderDetailPane renders the one shared detail pane container.
func RenderDetailPane() string {
	return `<div id="` + PaneID + `" class="flexipane" style="display: none;">` +
		`<div class="flexipane-title">` + PaneLoadingTitle + `</div>` +
		`<div class="flexipane-content">` + PaneLoadingBody + `</div>` +
		`</div>`
}
