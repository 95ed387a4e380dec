/*
Package dom provides small utilities for HTML parse trees.

Responsive styling works on elements of an HTML DOM, represented by
*html.Node of package golang.org/x/net/html. Package dom contains helpers to
access attributes, inline style strings and CSS classes of element nodes,
and to walk a tree. Sub-package style is about style properties,
sub-package styler applies styles to elements.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'respond.dom'
func tracer() tracing.Trace {
	return tracing.Select("respond.dom")
}
