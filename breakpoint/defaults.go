package breakpoint

// Media queries for device orientation breakpoints.
const (
	HandsetPortrait  = "(orientation: portrait) and (max-width: 599.98px)"
	HandsetLandscape = "(orientation: landscape) and (max-width: 959.98px)"
	TabletPortrait   = "(orientation: portrait) and (min-width: 600px) and (max-width: 839.98px)"
	TabletLandscape  = "(orientation: landscape) and (min-width: 960px) and (max-width: 1279.98px)"
	WebPortrait      = "(orientation: portrait) and (min-width: 840px)"
	WebLandscape     = "(orientation: landscape) and (min-width: 1280px)"
)

// Combined screen types.
const (
	Handset = HandsetPortrait + ", " + HandsetLandscape
	Tablet  = TabletPortrait + " , " + TabletLandscape
	Web     = WebPortrait + ", " + WebLandscape + " "
)

// Defaults returns a fresh copy of the default breakpoint table.
//
// The overlap flags are reference data: xs…xl are mutually exclusive ranges,
// the lt-* and gt-* breakpoints overlap.
func Defaults() []*Breakpoint {
	return []*Breakpoint{
		{Alias: "xs", MediaQuery: "screen and (min-width: 0px) and (max-width: 599.98px)", Priority: 1000},
		{Alias: "sm", MediaQuery: "screen and (min-width: 600px) and (max-width: 959.98px)", Priority: 900},
		{Alias: "md", MediaQuery: "screen and (min-width: 960px) and (max-width: 1279.98px)", Priority: 800},
		{Alias: "lg", MediaQuery: "screen and (min-width: 1280px) and (max-width: 1919.98px)", Priority: 700},
		{Alias: "xl", MediaQuery: "screen and (min-width: 1920px) and (max-width: 4999.98px)", Priority: 600},
		{Alias: "lt-sm", MediaQuery: "screen and (max-width: 599.98px)", Priority: 950, Overlapping: true},
		{Alias: "lt-md", MediaQuery: "screen and (max-width: 959.98px)", Priority: 850, Overlapping: true},
		{Alias: "lt-lg", MediaQuery: "screen and (max-width: 1279.98px)", Priority: 750, Overlapping: true},
		{Alias: "lt-xl", MediaQuery: "screen and (max-width: 1919.98px)", Priority: 650, Overlapping: true},
		{Alias: "gt-xs", MediaQuery: "screen and (min-width: 600px)", Priority: -950, Overlapping: true},
		{Alias: "gt-sm", MediaQuery: "screen and (min-width: 960px)", Priority: -850, Overlapping: true},
		{Alias: "gt-md", MediaQuery: "screen and (min-width: 1280px)", Priority: -750, Overlapping: true},
		{Alias: "gt-lg", MediaQuery: "screen and (min-width: 1920px)", Priority: -650, Overlapping: true},
	}
}

// Orientations returns a fresh copy of the orientation breakpoint table.
func Orientations() []*Breakpoint {
	return []*Breakpoint{
		{Alias: "handset", MediaQuery: Handset, Priority: 2000},
		{Alias: "handset.landscape", MediaQuery: HandsetLandscape, Priority: 2000},
		{Alias: "handset.portrait", MediaQuery: HandsetPortrait, Priority: 2000},
		{Alias: "tablet", MediaQuery: Tablet, Priority: 2100},
		{Alias: "tablet.landscape", MediaQuery: TabletLandscape, Priority: 2100},
		{Alias: "tablet.portrait", MediaQuery: TabletPortrait, Priority: 2100},
		{Alias: "web", MediaQuery: Web, Priority: 2200, Overlapping: true},
		{Alias: "web.landscape", MediaQuery: WebLandscape, Priority: 2200, Overlapping: true},
		{Alias: "web.portrait", MediaQuery: WebPortrait, Priority: 2200, Overlapping: true},
	}
}
