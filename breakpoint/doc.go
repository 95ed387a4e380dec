/*
Package breakpoint holds the catalog of named breakpoints.

A breakpoint is a named, prioritized CSS media query, e.g.

	md = screen and (min-width: 960px) and (max-width: 1279.98px)

Applications start from a default table (see Defaults and Orientations) and
merge their own breakpoints into it by alias. The resulting list is wrapped
into a Registry, which is immutable after construction and answers lookups by
alias or by raw media query.

Every breakpoint carries a suffix, the UpperCamelCase form of its alias
("gt-sm" ⇒ "GtSm"). Suffixes are the qualifiers under which responsive values
are stored by package marshal.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package breakpoint

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond.breakpoint'.
func tracer() tracing.Trace {
	return tracing.Select("respond.breakpoint")
}
