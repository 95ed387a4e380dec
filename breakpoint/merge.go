package breakpoint

// BuildOptions controls which default tables Build starts from.
type BuildOptions struct {
	DisableDefaults bool // do not include the default breakpoints
	AddOrientations bool // include the orientation breakpoints
}

// Build merges custom breakpoints into the default tables selected by opts.
// Orientation breakpoints, if requested, precede the default ones.
func Build(custom []*Breakpoint, opts BuildOptions) []*Breakpoint {
	var base []*Breakpoint
	if opts.AddOrientations {
		base = append(base, Orientations()...)
	}
	if !opts.DisableDefaults {
		base = append(base, Defaults()...)
	}
	return MergeByAlias(base, custom)
}

// MergeByAlias merges custom breakpoints into a list of defaults.
//
// If a custom breakpoint's alias already exists, the existing entry is
// extended: a non-empty media query or suffix and a non-zero priority
// replace the default's fields, and an overlap flag set on either side
// is kept. Otherwise the custom breakpoint is appended.
// Suffixes missing after the merge are derived from the alias.
//
// Neither input list is modified; the result consists of copies.
func MergeByAlias(defaults []*Breakpoint, custom []*Breakpoint) []*Breakpoint {
	merged := make([]*Breakpoint, 0, len(defaults)+len(custom))
	index := make(map[string]int, len(defaults)+len(custom))
	add := func(bp *Breakpoint) {
		if bp == nil || bp.Alias == "" {
			tracer().Errorf("breakpoint without alias ignored: %v", bp)
			return
		}
		if at, ok := index[bp.Alias]; ok {
			extend(merged[at], bp)
			return
		}
		index[bp.Alias] = len(merged)
		c := bp.Clone()
		c.MediaQuery = NormalizeQuery(c.MediaQuery)
		merged = append(merged, c)
	}
	for _, bp := range defaults {
		add(bp)
	}
	for _, bp := range custom {
		add(bp)
	}
	return validateSuffixes(merged)
}

func extend(dest, src *Breakpoint) {
	if q := NormalizeQuery(src.MediaQuery); q != "" {
		dest.MediaQuery = q
	}
	if src.Priority != 0 {
		dest.Priority = src.Priority
	}
	if src.Suffix != "" {
		dest.Suffix = src.Suffix
	}
	dest.Overlapping = dest.Overlapping || src.Overlapping
}

func validateSuffixes(list []*Breakpoint) []*Breakpoint {
	for _, bp := range list {
		if bp.Suffix == "" {
			bp.Suffix = Suffix(bp.Alias)
		}
	}
	return list
}
