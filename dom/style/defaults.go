package style

import (
	"golang.org/x/net/html"
)

// User-agent defaults for properties a layout directive commonly reads back
// from an element. Values "default" have the following semantics:
// treat this as an inherent UA default, which should not be instantiated,
// but rather will be handled implicitely by rendering code.
var nonInherited = map[string]string{
	"position":         "static",
	"background-color": "default",
	"box-sizing":       "content-box",
	"flex-direction":   "row",
	"flex-wrap":        "nowrap",
	"flex-grow":        "0",
	"flex-shrink":      "1",
	"flex-basis":       "auto",
	"order":            "0",
	"justify-content":  "normal",
	"align-items":      "normal",
	"align-content":    "normal",
	"align-self":       "auto",
	"float":            "none",
}

var isDimension = map[string]string{
	"width":          "auto",
	"height":         "auto",
	"min-width":      "auto",
	"min-height":     "auto",
	"max-width":      "none",
	"max-height":     "none",
	"top":            "auto",
	"right":          "auto",
	"bottom":         "auto",
	"left":           "auto",
	"margin-top":     "0",
	"margin-left":    "0",
	"margin-right":   "0",
	"margin-bottom":  "0",
	"padding-top":    "0",
	"padding-left":   "0",
	"padding-right":  "0",
	"padding-bottom": "0",
	"gap":            "normal",
	"row-gap":        "normal",
	"column-gap":     "normal",
}

// IsDimension reports whether a property takes a length value, e.g.
// "width" or "margin-top".
func IsDimension(key string) bool {
	_, ok := isDimension[key]
	return ok || key == "flex-basis" || key == "margin" || key == "padding"
}

// GetUserAgentDefaultProperty returns the user-agent default property for a
// given key, or NullStyle if there is none.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	switch key {
	case "display":
		return DisplayPropertyForHTMLNode(node)
	}
	if dim, ok := isDimension[key]; ok {
		return Property(dim)
	}
	if p, ok := nonInherited[key]; ok {
		return Property(p)
	}
	return NullStyle
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "script", "style", "template":
		return "none"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "main", "nav", "ol", "p", "section",
		"header", "footer", "article", "form", "ul":
		return "block"
	case "li":
		return "list-item"
	case "i", "b", "a", "em", "span", "strong", "label", "img", "button", "input":
		return "inline"
	case "table":
		return "table"
	}
	tracer().Infof("unknown HTML element %s/%d will be set to display: block",
		node.Data, node.Type)
	return "block"
}
