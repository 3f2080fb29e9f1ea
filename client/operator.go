package client

import (
	"golang.org/x/net/html"

	"github.com/flexihtml/flexihtml/flexihtml"
)

//OperatorController reshapes a searchbox when its operator select changes.
//It calls the same layout rule the server renderer used for the initial
//markup, so a round of changes always ends in a state the server would
//have produced itself.
type OperatorController struct {
	root *html.Node
}

func NewOperatorController(root *html.Node) *OperatorController {
	return &OperatorController{root: root}
}

//Apply arranges the two value containers of the named searchbox for the
//given operator. Missing containers are a silent no-op.
func (o *OperatorController) Apply(inputName string, operator string) {
	layout := flexihtml.LayoutFor(operator)

	if div1 := findByID(o.root, "div-1-"+inputName); div1 != nil {
		setColumnSpan(div1, layout.FirstSpan)
	}
	div2 := findByID(o.root, "div-2-"+inputName)
	if div2 == nil {
		return
	}
	if layout.SecondEnabled {
		setColumnSpan(div2, layout.SecondSpan)
	} else {
		setColumnSpan(div2, 6)
	}
	setDisplayed(div2, layout.SecondEnabled)
	for _, tag := range []string{"input", "textarea", "select"} {
		for _, node := range elementsByTag(div2, tag) {
			if layout.SecondEnabled {
				removeAttr(node, "disabled")
			} else {
				setAttr(node, "disabled", "disabled")
			}
		}
	}
}

func elementsByTag(root *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			nodes = append(nodes, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return nodes
}
