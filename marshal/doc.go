/*
Package marshal resolves responsive values.

Clients register values for style keys of elements, each value qualified by
the suffix of a breakpoint ("" for the base value). A Marshaller keeps track
of the activated breakpoints and decides, for every element and key, which of
the registered values applies: the value of the activated breakpoint with the
highest priority, or else the base value (if fallbacks are enabled). Whenever
the result changes, the element's update callback is called with the new
value, or its clear callback if no value applies.

Values are opaque to the marshaller. They are compared for change detection
only, which is why the value type has to be comparable.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package marshal

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond.marshal'.
func tracer() tracing.Trace {
	return tracing.Select("respond.marshal")
}
