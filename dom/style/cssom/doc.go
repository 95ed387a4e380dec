/*
Package cssom provides a minimal object model for CSS style sheets.

The engine produces style sheets as text: inline style attributes and
static @media blocks for server-side rendering. To inspect these sheets, e.g.
in tests or in tooling, they are parsed back into a StyleSheet. CSS handling
is de-coupled by introducing the interfaces StyleSheet and Rule. A concrete
implementation may be found in sub-package douceuradapter.

Rules nested in @media blocks are flattened: every rule knows the media
query of its enclosing block (see Rule.Media).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("respond.cssom")
}
