// SPDX-License-Identifier: Apache-2.0

// Package interval implements the bounded interval abstract domain used
// throughout this analyzer: the lattice with bottom/top, lub/glb,
// widening and narrowing, and saturating interval arithmetic.
package interval

import "fmt"

// Window is the widening/narrowing configuration `(m, n)`. It is an
// immutable value threaded explicitly through every operation that needs
// it, rather than process-wide mutable state: the source this spec was
// distilled from kept (m, n) behind a global lock, which is a contamination
// hazard for re-entrancy and testing. Carrying it as a parameter makes
// concurrent analyses with different windows trivially safe.
type Window struct {
	M, N int64
}

// NewWindow validates m <= n and returns the window value.
func NewWindow(m, n int64) (Window, error) {
	if m > n {
		return Window{}, fmt.Errorf("invalid widening window [%d, %d]: m must be <= n", m, n)
	}
	return Window{M: m, N: n}, nil
}

// singleton reports whether this window collapses every binary operation
// to [m, m] (spec.md's degenerate m == n analysis knob).
func (w Window) singleton() bool { return w.M == w.N }

func (w Window) clampLower(v int64) int64 {
	if v < w.M {
		return w.M
	}
	if v > w.N {
		return w.N
	}
	return v
}

func (w Window) clampUpper(v int64) int64 {
	return w.clampLower(v)
}
