package client

import (
	"strings"
	"testing"

	"github.com/flexihtml/flexihtml/flexihtml"
)

func renderedSearchbox(t *testing.T) *OperatorController {
	t.Helper()
	set := flexihtml.NewSearchboxSet()
	set.Add("price", flexihtml.InputTypeNumber, "Price", "")
	root := parseMarkup(t, set.RenderSearchboxes("products", "/products"))
	return NewOperatorController(root)
}

func TestOperatorApplyRange(t *testing.T) {
	controller := renderedSearchbox(t)
	controller.Apply("price", flexihtml.OpIsBetween)

	div1 := findByID(controller.root, "div-1-price")
	div2 := findByID(controller.root, "div-2-price")
	if !strings.Contains(attrValue(div1, "class"), "col-6") {
		t.Errorf("first container class = %q, want col-6", attrValue(div1, "class"))
	}
	if !strings.Contains(attrValue(div2, "class"), "col-6") {
		t.Errorf("second container class = %q, want col-6", attrValue(div2, "class"))
	}
	if strings.Contains(attrValue(div2, "style"), "display: none") {
		t.Error("second container still masked")
	}
	for _, node := range elementsByTag(div2, "input") {
		if attrValue(node, "disabled") != "" {
			t.Error("second input still disabled")
		}
	}
}

func TestOperatorApplyRoundTrip(t *testing.T) {
	controller := renderedSearchbox(t)
	controller.Apply("price", flexihtml.OpIsBetween)
	controller.Apply("price", flexihtml.OpIsEqual)

	div1 := findByID(controller.root, "div-1-price")
	div2 := findByID(controller.root, "div-2-price")
	if !strings.Contains(attrValue(div1, "class"), "col-12") {
		t.Errorf("first container class = %q, want col-12", attrValue(div1, "class"))
	}
	if !strings.Contains(attrValue(div2, "style"), "display: none") {
		t.Error("second container not masked again")
	}
	for _, node := range elementsByTag(div2, "input") {
		if attrValue(node, "disabled") != "disabled" {
			t.Error("second input not disabled again")
		}
	}

	// the round trip has to land on the markup the renderer produces
	set := flexihtml.NewSearchboxSet()
	box := set.Add("price", flexihtml.InputTypeNumber, "Price", "")
	box.ExpSelected = flexihtml.OpIsEqual
	fresh := NewOperatorController(parseMarkup(t, set.RenderSearchboxes("products", "/products")))
	freshDiv2 := findByID(fresh.root, "div-2-price")
	if attrValue(div2, "class") != attrValue(freshDiv2, "class") {
		t.Errorf("round trip class = %q, renderer produces %q", attrValue(div2, "class"), attrValue(freshDiv2, "class"))
	}
}

func TestOperatorApplyUnknownSearchbox(t *testing.T) {
	controller := renderedSearchbox(t)
	// must not panic
	controller.Apply("nope", flexihtml.OpIsBetween)
}
