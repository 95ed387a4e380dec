package breakpoint

// Registry is an immutable catalog of breakpoints.
//
// Lookups are exact string matches of normalized queries (see
// NormalizeQuery). If more than one breakpoint shares a
// media query, the first one in insertion order is found. A Registry is safe
// for concurrent reads.
type Registry struct {
	items   []*Breakpoint
	byAlias map[string]*Breakpoint
	byQuery map[string]*Breakpoint
}

// NewRegistry creates a registry for a list of breakpoints, usually the
// result of Build. Entries without an alias are dropped; duplicate aliases
// keep their first occurrence.
func NewRegistry(list []*Breakpoint) *Registry {
	r := &Registry{
		items:   make([]*Breakpoint, 0, len(list)),
		byAlias: make(map[string]*Breakpoint, len(list)),
		byQuery: make(map[string]*Breakpoint, len(list)),
	}
	for _, bp := range list {
		if bp == nil || bp.Alias == "" {
			continue
		}
		if _, dup := r.byAlias[bp.Alias]; dup {
			tracer().Errorf("duplicate breakpoint alias %q ignored", bp.Alias)
			continue
		}
		if bp.Suffix == "" || bp.MediaQuery != NormalizeQuery(bp.MediaQuery) {
			bp = bp.Clone()
			bp.MediaQuery = NormalizeQuery(bp.MediaQuery)
			if bp.Suffix == "" {
				bp.Suffix = Suffix(bp.Alias)
			}
		}
		r.items = append(r.items, bp)
		r.byAlias[bp.Alias] = bp
		if _, ok := r.byQuery[bp.MediaQuery]; !ok {
			r.byQuery[bp.MediaQuery] = bp
		}
	}
	tracer().Debugf("breakpoint registry with %d entries", len(r.items))
	return r
}

// NewDefaultRegistry is a shortcut for a registry of the default breakpoints.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Build(nil, BuildOptions{}))
}

// FindByAlias returns the breakpoint for an alias, or nil.
func (r *Registry) FindByAlias(alias string) *Breakpoint {
	if r == nil || alias == "" {
		return nil
	}
	return r.byAlias[alias]
}

// FindByQuery returns the breakpoint for a raw media query, or nil.
// Surrounding white space of query is ignored.
func (r *Registry) FindByQuery(query string) *Breakpoint {
	if r == nil {
		return nil
	}
	return r.byQuery[NormalizeQuery(query)]
}

// Items returns the breakpoints in insertion order. The slice is a copy, the
// breakpoints are shared and must not be modified.
func (r *Registry) Items() []*Breakpoint {
	if r == nil {
		return nil
	}
	items := make([]*Breakpoint, len(r.items))
	copy(items, r.items)
	return items
}

// Len returns the number of breakpoints.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// Queries returns the media queries of all breakpoints in insertion order.
func (r *Registry) Queries() []string {
	return r.collect(func(bp *Breakpoint) string { return bp.MediaQuery })
}

// Aliases returns the aliases of all breakpoints in insertion order.
func (r *Registry) Aliases() []string {
	return r.collect(func(bp *Breakpoint) string { return bp.Alias })
}

// Suffixes returns the suffixes of all breakpoints in insertion order.
func (r *Registry) Suffixes() []string {
	return r.collect(func(bp *Breakpoint) string { return bp.Suffix })
}

// Overlappings returns all breakpoints flagged as overlapping.
func (r *Registry) Overlappings() []*Breakpoint {
	var list []*Breakpoint
	for _, bp := range r.Items() {
		if bp.Overlapping {
			list = append(list, bp)
		}
	}
	return list
}

func (r *Registry) collect(f func(*Breakpoint) string) []string {
	if r == nil {
		return nil
	}
	s := make([]string, len(r.items))
	for i, bp := range r.items {
		s[i] = f(bp)
	}
	return s
}

// ToMediaQuery resolves an alias or a raw media query to a media query known
// to the registry. Aliases take precedence. Returns "" for unknown input.
func (r *Registry) ToMediaQuery(aliasOrQuery string) string {
	bp := r.FindByAlias(aliasOrQuery)
	if bp == nil {
		bp = r.FindByQuery(aliasOrQuery)
	}
	if bp == nil {
		return ""
	}
	return bp.MediaQuery
}
