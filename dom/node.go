package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsElement is a predicate for element nodes.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Attr returns the value of an attribute of an element.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute of an element. An empty value removes the
// attribute.
func SetAttr(n *html.Node, key, value string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			if value == "" {
				n.Attr = append(n.Attr[:i:i], n.Attr[i+1:]...)
			} else {
				n.Attr[i].Val = value
			}
			return
		}
	}
	if value != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
	}
}

// Classes returns the CSS classes of an element.
func Classes(n *html.Node) []string {
	c, _ := Attr(n, "class")
	return strings.Fields(c)
}

// HasClass checks if an element carries a CSS class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a CSS class to an element, if not already present.
func AddClass(n *html.Node, class string) {
	if class == "" || HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(Classes(n), class), " ")))
}

// RemoveClasses removes the CSS classes of an element for which drop is
// true. An element left without classes loses its class attribute.
func RemoveClasses(n *html.Node, drop func(class string) bool) {
	var kept []string
	for _, c := range Classes(n) {
		if !drop(c) {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// Walk visits n and all of its descendents in document order. Walking a
// sub-tree stops if f returns false for its root.
func Walk(n *html.Node, f func(*html.Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		Walk(ch, f)
	}
}

// FindElement finds the first element of a given type.
func FindElement(a atom.Atom, root *html.Node) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// Path returns a short description of an element's position, e.g.
// "html/body/div[2]", for debugging.
func Path(n *html.Node) string {
	var parts []string
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		part := n.Data
		if id, ok := Attr(n, "id"); ok {
			part += "#" + id
		} else if i := elementIndex(n); i > 0 {
			part += "[" + strconv.Itoa(i) + "]"
		}
		parts = append(parts, part)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// elementIndex is the 1-based position among siblings of the same type, or
// 0 if the element is the only one of its type.
func elementIndex(n *html.Node) int {
	if n.Parent == nil {
		return 0
	}
	count, pos := 0, 0
	for ch := n.Parent.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.Data == n.Data {
			count++
			if ch == n {
				pos = count
			}
		}
	}
	if count == 1 {
		return 0
	}
	return pos
}
