package store

import (
	"fmt"
	"sort"
	"strings"
)

// String renders the store as "{x: [1, 2], y: ⊤}" (or "Bottom ⊥ {...}"
// when unreachable), mirroring abstract_state.rs's Display impl.
// Variables are sorted for deterministic output.
func (s Store) String() string {
	keys := s.Keys()
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, s.vars[k]))
	}
	body := strings.Join(parts, ", ")

	if s.bottom {
		return fmt.Sprintf("Bottom ⊥ {%s}", body)
	}
	return fmt.Sprintf("{%s}", body)
}
