/*
Package printhook intercepts print media.

While a document is printed, the activated breakpoints of a target are
replaced by the print breakpoints: the built-in 'print' breakpoint plus the
breakpoints configured to be used when printing. After printing, the former
activations are restored.

Printing starts either with a platform's before-print notification or, for
platforms without one, with the activation of the print media query. It stops
with the after-print notification or with the deactivation of the print query.

Browsers deactivate the current breakpoint before they activate print media.
The hook therefore collects deactivations continuously, and the restore queue
is built from them plus the activations of the target at print start.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package printhook

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond.printhook'.
func tracer() tracing.Trace {
	return tracing.Select("respond.printhook")
}
