/*
Package media watches CSS media queries.

A watcher keeps one query list per distinct media query and turns the match
state of these lists into a stream of Change events. There are two variants
sharing the Matcher contract:

Watcher is backed by a Platform, i.e. something able to evaluate media queries
live, usually a browser page (see package rodmedia). Without a platform, or if
the platform cannot evaluate a query, the watcher falls back to static query
lists which match "all" and nothing else.

ServerWatcher simulates a media environment. Its query lists are active if
they belong to one of the breakpoints configured as server-side active, and
change only if ActivateBreakpoint or DeactivateBreakpoint is called. It drives
static stylesheet generation.

Trigger simulates activations on top of either variant.

All types of this package are meant to be used from one goroutine. Platform
implementations which receive notifications elsewhere have to hand them over
to that goroutine first.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package media

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond.media'.
func tracer() tracing.Trace {
	return tracing.Select("respond.media")
}
