// Package format renders abstract stores and intervals for the CLI
// and REPL output contract described in spec.md §6: one variable per
// line, sorted, with intervals formatted as "[l, u]", "⊥", or "⊤".
package format

import (
	"sort"
	"strings"

	"whileanalyzer/internal/store"
)

// DumpStore renders s as sorted "name: interval" lines. A bottom store
// is rendered as a single "⊥" line, since no per-variable breakdown is
// meaningful once the store itself is unreachable.
func DumpStore(s store.Store) string {
	if s.IsBottom() {
		return "⊥"
	}

	keys := s.Keys()
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+s.Get(k).String())
	}
	return strings.Join(lines, "\n")
}
