package marshal

import (
	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/respond/printhook"
	"github.com/npillmayer/respond/stream"
)

// UpdateFunc receives the resolved value of a key.
type UpdateFunc[V any] func(value V)

// ClearFunc is called if no value applies to a key.
type ClearFunc func()

// Applied is the notification for a value applied to (or cleared from) an
// element.
type Applied[E comparable, V any] struct {
	Element E
	Key     string
	Value   V
	Cleared bool
}

// keyState is the state of one style key of one element.
type keyState[V comparable] struct {
	values   map[string]V // by breakpoint suffix, "" is the base value
	suffixes []string     // insertion order of values
	update   UpdateFunc[V]
	clear    ClearFunc
	applied  V
	state    applyState
	trigger  *stream.Subscription
}

type applyState int8

const (
	untouched applyState = iota
	updated
	cleared
)

type elementState[V comparable] struct {
	keys  map[string]*keyState[V]
	order []string
}

func (es *elementState[V]) key(k string) *keyState[V] {
	ks, ok := es.keys[k]
	if !ok {
		ks = &keyState[V]{values: make(map[string]V)}
		es.keys[k] = ks
		es.order = append(es.order, k)
	}
	return ks
}

// Marshaller is the value resolver for elements of type E and values of
// type V. Construct it with New.
type Marshaller[E comparable, V comparable] struct {
	registry     *breakpoint.Registry
	hook         *printhook.Hook
	activated    []*breakpoint.Breakpoint // descending priority
	useFallbacks bool
	elements     map[E]*elementState[V]
	order        []E
	applied      stream.Subject[Applied[E, V]]
	mediaSub     *stream.Subscription
	closed       bool
}

// New creates a marshaller which follows the activations reported by m.
// Print events are handled by hook.
func New[E comparable, V comparable](m media.Matcher, reg *breakpoint.Registry, hook *printhook.Hook) *Marshaller[E, V] {
	mm := &Marshaller[E, V]{
		registry:     reg,
		hook:         hook,
		useFallbacks: true,
		elements:     make(map[E]*elementState[V]),
	}
	mm.observeActivations(m)
	return mm
}

func (mm *Marshaller[E, V]) observeActivations(m media.Matcher) {
	mm.hook.RegisterBeforeAfterPrintHooks(mm)
	s := m.Observe(mm.hook.WithPrintQuery(mm.registry.Queries()), false)
	s = stream.Tap(s, mm.hook.InterceptEvents(mm))
	s = stream.Filter(s, mm.hook.BlockPropagation())
	mm.mediaSub = s.Subscribe(mm.onMediaChange)
}

func (mm *Marshaller[E, V]) onMediaChange(c media.Change) {
	bp := mm.registry.FindByQuery(c.MediaQuery)
	if bp == nil {
		return
	}
	at := indexOf(mm.activated, bp)
	if c.Matches && at < 0 {
		mm.activated = append(mm.activated, bp)
		breakpoint.SortDescending(mm.activated)
		tracer().Debugf("breakpoint %s activated", bp.Alias)
		mm.UpdateStyles()
	} else if !c.Matches && at >= 0 {
		mm.activated = append(mm.activated[:at:at], mm.activated[at+1:]...)
		tracer().Debugf("breakpoint %s deactivated", bp.Alias)
		mm.UpdateStyles()
	}
}

func indexOf(list []*breakpoint.Breakpoint, bp *breakpoint.Breakpoint) int {
	for i, x := range list {
		if x == bp {
			return i
		}
	}
	return -1
}

// ActivatedBreakpoints returns a copy of the activated breakpoints, sorted
// by descending priority.
func (mm *Marshaller[E, V]) ActivatedBreakpoints() []*breakpoint.Breakpoint {
	list := make([]*breakpoint.Breakpoint, len(mm.activated))
	copy(list, mm.activated)
	return list
}

// SetActivatedBreakpoints replaces the activated breakpoints. It does not
// update any element; call UpdateStyles for that.
func (mm *Marshaller[E, V]) SetActivatedBreakpoints(bps []*breakpoint.Breakpoint) {
	list := make([]*breakpoint.Breakpoint, 0, len(bps))
	for _, bp := range bps {
		if bp != nil && indexOf(list, bp) < 0 {
			list = append(list, bp)
		}
	}
	breakpoint.SortDescending(list)
	mm.activated = list
}

// ActivatedAlias is the alias of the highest priority activated
// breakpoint, or "".
func (mm *Marshaller[E, V]) ActivatedAlias() string {
	if len(mm.activated) == 0 {
		return ""
	}
	return mm.activated[0].Alias
}

// SetUseFallbacks enables or disables falling back to base values.
func (mm *Marshaller[E, V]) SetUseFallbacks(on bool) {
	mm.useFallbacks = on
}

// UseFallbacks reports whether base values are used as fallbacks.
func (mm *Marshaller[E, V]) UseFallbacks() bool {
	return mm.useFallbacks
}

// Init registers the callbacks for a key of an element. The element takes
// part in every subsequent style update. Every value of the trigger streams
// causes a re-evaluation of the key.
func (mm *Marshaller[E, V]) Init(el E, key string, update UpdateFunc[V], clear ClearFunc,
	triggers ...stream.Stream[struct{}]) {
	//
	ks := mm.element(el).key(key)
	ks.update = update
	ks.clear = clear
	if len(triggers) > 0 && ks.trigger == nil {
		ks.trigger = stream.Merge(triggers...).Subscribe(func(struct{}) {
			mm.apply(el, key, false)
		})
	}
}

func (mm *Marshaller[E, V]) element(el E) *elementState[V] {
	es, ok := mm.elements[el]
	if !ok {
		es = &elementState[V]{keys: make(map[string]*keyState[V])}
		mm.elements[el] = es
		mm.order = append(mm.order, el)
	}
	return es
}

func (mm *Marshaller[E, V]) lookup(el E, key string) *keyState[V] {
	if es, ok := mm.elements[el]; ok {
		return es.keys[key]
	}
	return nil
}

// SetValue stores a value for a key of an element, qualified by a
// breakpoint suffix ("" for the base value). If a value applies to the key
// afterwards and differs from the applied one, the update callback is
// called.
func (mm *Marshaller[E, V]) SetValue(el E, key string, value V, suffix string) {
	ks := mm.element(el).key(key)
	if _, ok := ks.values[suffix]; !ok {
		ks.suffixes = append(ks.suffixes, suffix)
	}
	ks.values[suffix] = value
	if _, ok := mm.resolve(ks); ok {
		mm.apply(el, key, false)
	}
}

// GetValue returns the value which currently applies to a key of an
// element.
func (mm *Marshaller[E, V]) GetValue(el E, key string) (V, bool) {
	ks := mm.lookup(el, key)
	if ks == nil {
		var zero V
		return zero, false
	}
	return mm.resolve(ks)
}

// GetValueAt returns the value stored for a breakpoint suffix, regardless
// of activations.
func (mm *Marshaller[E, V]) GetValueAt(el E, key string, suffix string) (V, bool) {
	ks := mm.lookup(el, key)
	if ks == nil {
		var zero V
		return zero, false
	}
	v, ok := ks.values[suffix]
	return v, ok
}

// HasValue reports whether a value currently applies to a key of an element.
func (mm *Marshaller[E, V]) HasValue(el E, key string) bool {
	_, ok := mm.GetValue(el, key)
	return ok
}

// resolve walks the activated breakpoints in descending priority. The first
// one with a value for the key wins. If none has, the base value is used, if
// fallbacks are enabled.
func (mm *Marshaller[E, V]) resolve(ks *keyState[V]) (V, bool) {
	for _, bp := range mm.activated {
		if v, ok := ks.values[bp.Suffix]; ok {
			return v, true
		}
	}
	if mm.useFallbacks {
		if v, ok := ks.values[""]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// UpdateStyles re-evaluates every key of every element and calls update or
// clear callbacks where the result has changed.
func (mm *Marshaller[E, V]) UpdateStyles() {
	if mm.closed {
		return
	}
	for _, el := range append([]E(nil), mm.order...) {
		es, ok := mm.elements[el]
		if !ok {
			continue
		}
		for _, key := range append([]string(nil), es.order...) {
			mm.apply(el, key, false)
		}
	}
}

// TriggerUpdate re-evaluates keys of an element and calls the callbacks
// regardless of the applied values. Without keys, all keys of the element
// are updated.
func (mm *Marshaller[E, V]) TriggerUpdate(el E, keys ...string) {
	es, ok := mm.elements[el]
	if !ok {
		return
	}
	if len(keys) == 0 {
		keys = append([]string(nil), es.order...)
	}
	for _, key := range keys {
		mm.apply(el, key, true)
	}
}

// apply resolves a key and calls the matching callback. If force is not set,
// callbacks are skipped when the outcome equals the last one.
func (mm *Marshaller[E, V]) apply(el E, key string, force bool) {
	ks := mm.lookup(el, key)
	if ks == nil || mm.closed {
		return
	}
	if v, ok := mm.resolve(ks); ok {
		if !force && ks.state == updated && ks.applied == v {
			return
		}
		if ks.update == nil {
			return
		}
		ks.applied, ks.state = v, updated
		ks.update(v)
		mm.applied.Next(Applied[E, V]{Element: el, Key: key, Value: v})
		return
	}
	if !force && ks.state == cleared {
		return
	}
	if ks.clear == nil {
		return
	}
	var zero V
	ks.applied, ks.state = zero, cleared
	ks.clear()
	mm.applied.Next(Applied[E, V]{Element: el, Key: key, Cleared: true})
}

// TrackValue returns a stream of the values applied to a key of an element.
func (mm *Marshaller[E, V]) TrackValue(el E, key string) stream.Stream[Applied[E, V]] {
	return stream.Filter[Applied[E, V]](&mm.applied, func(a Applied[E, V]) bool {
		return a.Element == el && a.Key == key
	})
}

// ReleaseElement drops all values and trigger subscriptions of an element.
// ReleaseElement is idempotent.
func (mm *Marshaller[E, V]) ReleaseElement(el E) {
	es, ok := mm.elements[el]
	if !ok {
		return
	}
	for _, ks := range es.keys {
		ks.trigger.Unsubscribe()
	}
	delete(mm.elements, el)
	for i, x := range mm.order {
		if x == el {
			mm.order = append(mm.order[:i:i], mm.order[i+1:]...)
			break
		}
	}
}

// ReleaseKey drops the values and the trigger subscription of one key of an
// element. An element without keys is released.
func (mm *Marshaller[E, V]) ReleaseKey(el E, key string) {
	es, ok := mm.elements[el]
	if !ok {
		return
	}
	ks, ok := es.keys[key]
	if !ok {
		return
	}
	ks.trigger.Unsubscribe()
	delete(es.keys, key)
	for i, k := range es.order {
		if k == key {
			es.order = append(es.order[:i:i], es.order[i+1:]...)
			break
		}
	}
	if len(es.keys) == 0 {
		mm.ReleaseElement(el)
	}
}

// Elements returns the registered elements in registration order.
func (mm *Marshaller[E, V]) Elements() []E {
	return append([]E(nil), mm.order...)
}

// Inspect calls f for every stored value, in registration order.
func (mm *Marshaller[E, V]) Inspect(f func(el E, key, suffix string, value V)) {
	for _, el := range mm.order {
		es := mm.elements[el]
		for _, key := range es.order {
			ks := es.keys[key]
			for _, suffix := range ks.suffixes {
				f(el, key, suffix, ks.values[suffix])
			}
		}
	}
}

// Close stops following media changes and drops all elements. Close is
// idempotent.
func (mm *Marshaller[E, V]) Close() {
	if mm.closed {
		return
	}
	for _, el := range mm.Elements() {
		mm.ReleaseElement(el)
	}
	mm.closed = true
	mm.mediaSub.Unsubscribe()
	mm.applied.Close()
}

var _ printhook.Target = (*Marshaller[string, string])(nil)
