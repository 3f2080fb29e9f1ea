package client

import (
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func findByID(root *html.Node, id string) *html.Node {
	node, err := htmlquery.Query(root, `//*[@id='`+id+`']`)
	if err != nil {
		return nil
	}
	return node
}

func findByClass(root *html.Node, classname string) []*html.Node {
	nodes, err := htmlquery.QueryAll(root, `//*[contains(concat(' ', normalize-space(@class), ' '), ' `+classname+` ')]`)
	if err != nil {
		return nil
	}
	return nodes
}

func attrValue(node *html.Node, name string) string {
	for idx := range node.Attr {
		if node.Attr[idx].Key == name {
			return node.Attr[idx].Val
		}
	}
	return ""
}

func setAttr(node *html.Node, name string, value string) {
	for idx := range node.Attr {
		if node.Attr[idx].Key == name {
			node.Attr[idx].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(node *html.Node, name string) {
	for idx := range node.Attr {
		if node.Attr[idx].Key == name {
			node.Attr = append(node.Attr[:idx], node.Attr[idx+1:]...)
			return
		}
	}
}

//setDisplayed toggles the inline display of a node without touching any
//other inline style it carries.
func setDisplayed(node *html.Node, displayed bool) {
	rules := make([]string, 0, 2)
	for _, rule := range strings.Split(attrValue(node, "style"), ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" || strings.HasPrefix(rule, "display:") {
			continue
		}
		rules = append(rules, rule)
	}
	if !displayed {
		rules = append(rules, "display: none")
	}
	if len(rules) == 0 {
		removeAttr(node, "style")
		return
	}
	setAttr(node, "style", strings.Join(rules, "; ")+";")
}

//setColumnSpan swaps the bootstrap col-{n} class for the given span,
//keeping all other classes.
func setColumnSpan(node *html.Node, span int) {
	classes := make([]string, 0, 4)
	for _, classname := range strings.Fields(attrValue(node, "class")) {
		if strings.HasPrefix(classname, "col-") {
			continue
		}
		classes = append(classes, classname)
	}
	if span > 0 {
		classes = append(classes, "col-"+strconv.Itoa(span))
	}
	setAttr(node, "class", strings.Join(classes, " "))
}

func removeChildren(node *html.Node) {
	for node.FirstChild != nil {
		node.RemoveChild(node.FirstChild)
	}
}

func setText(node *html.Node, text string) {
	removeChildren(node)
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

//setMarkup replaces the node's children with the parsed fragment. The
//fragment is inserted as structure, not as escaped text.
func setMarkup(node *html.Node, markup string) {
	removeChildren(node)
	children, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, child := range children {
		node.AppendChild(child)
	}
}
