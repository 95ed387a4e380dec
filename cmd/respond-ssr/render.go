package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/respond"
	"github.com/npillmayer/respond/bind"
	"github.com/npillmayer/respond/config"
	"github.com/npillmayer/respond/dom"
	"github.com/npillmayer/respond/dom/domdbg"
	"github.com/npillmayer/respond/dom/styler"
	"github.com/npillmayer/respond/ssr"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'respond.ssr'.
func tracer() tracing.Trace {
	return tracing.Select("respond.ssr")
}

// Rules is the content of a rules file.
type Rules struct {
	Rules []Rule `yaml:"rules"`
}

// Rule assigns responsive styles to the elements matching a selector.
// Style names are either a property ("flex") for the base value, or a
// property and a breakpoint alias ("flex.gt-sm").
type Rule struct {
	Selector string            `yaml:"selector"`
	Styles   map[string]string `yaml:"styles"`
}

// LoadRules reads a rules file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, err
	}
	return ParseRules(data)
}

// ParseRules decodes rules from YAML.
func ParseRules(data []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("rules: %w", err)
	}
	return rules, nil
}

// Render parses an HTML document, applies the rules through a server engine
// and writes the document with generated classes and style sheet to out.
// If dump is not nil, debug output is written to it.
func Render(in io.Reader, out io.Writer, rules Rules, opts config.Options, dump io.Writer) error {
	doc, err := html.Parse(in)
	if err != nil {
		return fmt.Errorf("html: %w", err)
	}
	if opts.ServerLoaded {
		removeServerStyles(doc)
	}
	engine, err := respond.NewServerEngine[*html.Node, string](opts)
	if err != nil {
		return err
	}
	defer engine.Close()
	sheet := ssr.NewStyleSheet[*html.Node]()
	sty := styler.NewServer(sheet)
	bindings := make(map[*html.Node]map[string]*bind.Binding[*html.Node])
	for _, rule := range rules.Rules {
		sel, err := cascadia.Compile(rule.Selector)
		if err != nil {
			return fmt.Errorf("rules: selector %q: %w", rule.Selector, err)
		}
		for _, el := range sel.MatchAll(doc) {
			for _, name := range sortedNames(rule.Styles) {
				key := propertyOf(name)
				b := bindings[el][key]
				if b == nil {
					builder := &bind.DeclarationBuilder{Property: key, Unit: opts.DefaultUnit}
					b = bind.Bind[*html.Node](engine.Marshaller, engine.Registry, sty, el, key, builder)
					if bindings[el] == nil {
						bindings[el] = make(map[string]*bind.Binding[*html.Node])
					}
					bindings[el][key] = b
				}
				b.SetInput(name, rule.Styles[name])
			}
		}
	}
	gen := ssr.NewGenerator[*html.Node]()
	css := gen.Generate(sheet, engine.Server(), engine.Registry, engine.Marshaller)
	gen.Classes(func(el *html.Node, class string) {
		sty.AddClass(el, class)
	})
	injectStyle(doc, css)
	if dump != nil {
		fmt.Fprintln(dump, domdbg.Tree(doc, domdbg.InlineStyles))
		fmt.Fprintln(dump, domdbg.Values[*html.Node, string](engine.Marshaller, dom.Path))
	}
	return html.Render(out, doc)
}

// sortedNames orders style names so that base values precede the values
// for breakpoints.
func sortedNames(styles map[string]string) []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func propertyOf(name string) string {
	for i, c := range name {
		if c == '.' {
			return name[:i]
		}
	}
	return name
}

func injectStyle(doc *html.Node, css string) {
	head := dom.FindElement(atom.Head, doc)
	if head == nil {
		head = doc
	}
	style := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style",
		Attr: []html.Attribute{{Key: serverStyleAttr, Val: "ssr"}}}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.AppendChild(style)
}

// serverStyleAttr marks the style element of a server render.
const serverStyleAttr = "data-respond"

// removeServerStyles strips the output of an earlier render: generated
// classes and marked style elements.
func removeServerStyles(doc *html.Node) {
	var styles []*html.Node
	dom.Walk(doc, func(n *html.Node) bool {
		if !dom.IsElement(n) {
			return true
		}
		if _, ok := dom.Attr(n, serverStyleAttr); ok && n.DataAtom == atom.Style {
			styles = append(styles, n)
			return false
		}
		dom.RemoveClasses(n, func(c string) bool {
			return strings.HasPrefix(c, ssr.DefaultClassPrefix)
		})
		return true
	})
	for _, n := range styles {
		n.Parent.RemoveChild(n)
	}
	tracer().Debugf("removed %d server style elements", len(styles))
}
