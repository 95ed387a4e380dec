/*
Package stream implements small push-based streams.

Media query changes travel through the engine as streams of values. A
pipeline is built from a source (a Subject, a Behavior or a Func) and a chain
of transforms (Filter, Map, Tap, Debounce, Distinct, …). Every transform is a
stage which receives values from its predecessor and pushes results to its
successor; nothing is pulled.

Transforms are cold: every call to Subscribe creates fresh per-subscription
state for the whole chain. Share turns a chain into a hot stream, connected
once for all of its subscribers.

Delivery is synchronous and happens on the goroutine calling Next. Streams are
not safe for concurrent use; clients that receive events from other
goroutines hand them over to a single goroutine first (see package
eventloop). Debounce is the only stage which defers work, by handing a task to
a Scheduler.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package stream
