package media

// QueryList is the match state of one media query, the equivalent of a
// browser's MediaQueryList.
type QueryList interface {
	Media() string
	Matches() bool
	// AddListener registers a callback for changes of the match state. The
	// returned function removes the listener again.
	AddListener(l func(matches bool)) (remove func())
}

// staticList is a query list without live updates. It matches "all" (and
// the empty query) only.
type staticList struct {
	media string
}

// StaticQueryList returns a non-reactive query list for a media query.
func StaticQueryList(query string) QueryList {
	return staticList{media: query}
}

func (l staticList) Media() string { return l.media }

func (l staticList) Matches() bool {
	return l.media == AllQuery || l.media == ""
}

func (l staticList) AddListener(func(bool)) func() {
	return func() {}
}

// --- Server query list -----------------------------------------------------

// ServerQueryList is a query list with a simulated match state. It is
// changed by calling Activate or Deactivate, which notify all listeners if
// the state actually changes.
type ServerQueryList struct {
	media     string
	active    bool
	listeners []*listener
}

type listener struct {
	callback func(bool)
}

// NewServerQueryList creates a simulated query list.
func NewServerQueryList(query string, active bool) *ServerQueryList {
	return &ServerQueryList{media: query, active: active}
}

// Media returns the media query of l.
func (l *ServerQueryList) Media() string { return l.media }

// Matches returns the simulated match state.
func (l *ServerQueryList) Matches() bool { return l.active }

// AddListener registers a callback for changes of the match state.
func (l *ServerQueryList) AddListener(callback func(bool)) func() {
	lsnr := &listener{callback: callback}
	l.listeners = append(l.listeners, lsnr)
	return func() {
		for i, x := range l.listeners {
			if x == lsnr {
				l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

// Activate sets the query list to matching.
func (l *ServerQueryList) Activate() {
	if !l.active {
		l.active = true
		l.notify()
	}
}

// Deactivate sets the query list to not matching.
func (l *ServerQueryList) Deactivate() {
	if l.active {
		l.active = false
		l.notify()
	}
}

func (l *ServerQueryList) notify() {
	current := make([]*listener, len(l.listeners))
	copy(current, l.listeners)
	for _, lsnr := range current {
		lsnr.callback(l.active)
	}
}

// Destroy drops all listeners and deactivates the list silently.
func (l *ServerQueryList) Destroy() {
	l.listeners = nil
	l.active = false
}
