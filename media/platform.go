package media

// Platform evaluates media queries in a live environment.
type Platform interface {
	// MatchMedia returns a live query list, or nil if the platform is not
	// able to evaluate media queries.
	MatchMedia(query string) QueryList
	// AppendStyle adds a style sheet with the given CSS text to the
	// environment.
	AppendStyle(css string)
}

// PrintEvents is implemented by platforms which are able to report the
// start and the end of printing.
type PrintEvents interface {
	OnBeforePrint(callback func()) (remove func())
	OnAfterPrint(callback func()) (remove func())
}

// ResizeEvents is implemented by platforms which report resizes of the
// viewport.
type ResizeEvents interface {
	OnResize(callback func()) (remove func())
}
