/*
Package respond is a responsive layout engine.

Responsive layouts assign different style values to elements depending on
which media queries currently match. respond keeps a registry of named
breakpoints (aliases for media queries, e.g. "md" or "gt-sm"), watches the
media queries of an environment, resolves for every element and style key
the value of the highest priority active breakpoint, and writes the result
to a style sink.

The engine runs in two environments:

■ In a browser-like environment a media.Platform evaluates media queries
live. Changes are delivered asynchronously through a scheduler, usually an
eventloop.Loop.

■ On a server there is no viewport. A media.ServerWatcher simulates
activations, and package ssr renders every breakpoint into a static style
sheet of @media blocks.

    engine, err := respond.NewServerEngine[*html.Node, string](config.Default())
    …
    b := bind.Bind(engine.Marshaller, engine.Registry, sink, el, "flex", bind.NewDeclarationBuilder("flex"))
    b.SetValue("1", "")
    b.SetValue("2", "gt-sm")

Print media is handled by package printhook: while printing, a configured
set of breakpoints replaces the screen activations.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package respond

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'respond'.
func tracer() tracing.Trace {
	return tracing.Select("respond")
}
