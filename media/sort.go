package media

import (
	"sort"

	"github.com/npillmayer/respond/breakpoint"
)

func sortChanges(changes []Change, less func(a, b int) bool) {
	sort.SliceStable(changes, func(i, j int) bool {
		return less(changes[i].Priority, changes[j].Priority)
	})
}

// uniqueQueries normalizes queries and drops empty strings and duplicates, keeping
// the first occurrence.
func uniqueQueries(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	list := make([]string, 0, len(queries))
	for _, q := range queries {
		q = breakpoint.NormalizeQuery(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		list = append(list, q)
	}
	return list
}
