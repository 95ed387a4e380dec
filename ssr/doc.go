/*
Package ssr generates static responsive style sheets on the server.

On the server there is no viewport, hence no live media queries. Instead,
styles written by a styler are captured in a StyleSheet. A Generator then
activates every breakpoint of a registry in turn, in ascending order of
priority, using a simulated media environment, and records which styles the
marshaller applies while the breakpoint is active. The result is a style
sheet text with one @media block per breakpoint, preceded by a block for
the base values:

    @media all{.flex-layout-0{flex:1;}}@media screen and (min-width: 600px){.flex-layout-0{flex:2;}}

Every element gets one class name, used in all blocks. Blocks of higher
priority breakpoints come later in the text, thus win the CSS cascade.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ssr

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond.ssr'.
func tracer() tracing.Trace {
	return tracing.Select("respond.ssr")
}
