/*
Package domdbg implements helpers to debug a DOM tree and its responsive
styles.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/respond/dom"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/dom/style/cssom/douceuradapter"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// StylesFunc returns the styles to display for an element.
type StylesFunc func(*html.Node) style.Declarations

// InlineStyles reports the style attribute of an element. Malformed
// attributes are displayed as a single pseudo-property "!malformed".
func InlineStyles(n *html.Node) style.Declarations {
	attr, ok := dom.Attr(n, "style")
	if !ok {
		return nil
	}
	d, err := douceuradapter.ParseDeclarations(attr)
	if err != nil {
		return style.Decl("!malformed", attr)
	}
	return d
}

// --- Tree dumps ------------------------------------------------------------

// Tree renders the element tree under n as an indented text tree. Elements
// are labeled with their tag, id and classes, followed by the styles
// returned by styles, which may be nil.
func Tree(n *html.Node, styles StylesFunc) string {
	root := tp.New()
	addElements(root, n, styles)
	return root.String()
}

func addElements(branch tp.Tree, n *html.Node, styles StylesFunc) {
	if !dom.IsElement(n) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			addElements(branch, c, styles)
		}
		return
	}
	var d style.Declarations
	if styles != nil {
		d = styles(n)
	}
	label := elementLabel(n)
	hasChildElements := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		hasChildElements = hasChildElements || dom.IsElement(c)
	}
	if len(d) == 0 && !hasChildElements {
		branch.AddNode(label)
		return
	}
	sub := branch.AddBranch(label)
	if len(d) > 0 {
		sub.AddNode("{" + d.String() + "}")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		addElements(sub, c, styles)
	}
}

func elementLabel(n *html.Node) string {
	label := n.Data
	if id, ok := dom.Attr(n, "id"); ok {
		label += "#" + id
	}
	for _, c := range dom.Classes(n) {
		label += "." + c
	}
	return label
}

// Inspector is implemented by marshallers.
type Inspector[E comparable, V comparable] interface {
	Inspect(f func(el E, key, suffix string, value V))
}

// Values renders the values stored in a marshaller as a text tree, grouped
// by element and key. name produces the label of an element.
func Values[E comparable, V comparable](m Inspector[E, V], name func(E) string) string {
	root := tp.New()
	elements := make(map[E]tp.Tree)
	keys := make(map[E]map[string]tp.Tree)
	m.Inspect(func(el E, key, suffix string, value V) {
		eb, ok := elements[el]
		if !ok {
			eb = root.AddBranch(name(el))
			elements[el] = eb
			keys[el] = make(map[string]tp.Tree)
		}
		kb, ok := keys[el][key]
		if !ok {
			kb = eb.AddBranch(key)
			keys[el][key] = kb
		}
		if suffix == "" {
			suffix = "(base)"
		}
		kb.AddNode(fmt.Sprintf("%s = %v", suffix, value))
	})
	return root.String()
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	StyleTmpl *template.Template
	SedgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM, a Writer, and an optional function reporting the styles of
// elements. Text nodes are displayed as well, other nodes are skipped.
//
// If the client does not provide a styles function, InlineStyles is used.
func ToGraphViz(doc *html.Node, w io.Writer, styles StylesFunc) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StyleTmpl = template.Must(template.New("styles").Parse(stylesTmpl))
	gparams.SedgeTmpl = template.Must(template.New("sedge").Parse(styleEdgeTmpl))
	if styles == nil {
		styles = InlineStyles
	}
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*html.Node]string, 4096)
	if err = nodes(doc, w, dict, &gparams, styles); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a DOM node and a testing.T, it will
// create a Graphiviz image of the DOM tree under `doc` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If GraphViz is not installed, the test is skipped. Other errors will be
// reported with t.Error(…), causing the test to fail.
func Dotty(doc *html.Node, t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("GraphViz not installed")
	}
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(doc, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *html.Node
	Name string
}

type styleRecord struct {
	Name   string
	Styles style.Declarations
}

func nodes(n *html.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType,
	styles StylesFunc) error {
	//
	if n.Type != html.ElementNode && n.Type != html.TextNode && n.Type != html.DocumentNode {
		return nil
	}
	if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
		return nil
	}
	name := nodeName(n, dict)
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		return err
	}
	if dom.IsElement(n) {
		if d := styles(n); len(d) > 0 {
			if err := gparams.StyleTmpl.Execute(w, styleRecord{name, d}); err != nil {
				return err
			}
			if err := gparams.SedgeTmpl.Execute(w, name); err != nil {
				return err
			}
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := nodes(ch, w, dict, gparams, styles); err != nil {
			return err
		}
		if chname, ok := dict[ch]; ok {
			if err := gparams.EdgeTmpl.Execute(w, []string{name, chname}); err != nil {
				return err
			}
		}
	}
	return nil
}

func nodeName(n *html.Node, dict map[*html.Node]string) string {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	return name
}

func shortText(n *html.Node) string {
	s := "\"\\\""
	if len(n.Data) > 10 {
		s += n.Data[:10] + "...\\\"\""
	} else {
		s += n.Data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.Type 1 }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.Data }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const stylesTmpl = `{{ .Name }}_st [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">styles</font></td></tr>
      {{ range .Styles }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ index . 0 }} -> {{ index . 1 }} [weight=1] ;
`

const styleEdgeTmpl = `{{ . }} -> {{ . }}_st [dir=none weight=1 style="dashed"] ;
`
