// SPDX-License-Identifier: Apache-2.0

// Package storeparser parses the small "name := integer;" declarative
// grammar used to seed an analysis with an initial concrete store
// (spec.md §4.8), via a participle declarative grammar rather than a
// hand-written scanner — the same parsing technology the teacher's
// grammar package uses for its own module-level surface syntax.
package storeparser

// StoreFile is a sequence of variable bindings, one per line.
type StoreFile struct {
	Bindings []*Binding `@@*`
}

// Binding is a single "name := value;" entry.
type Binding struct {
	Name  string `@Ident ":" "="`
	Value int64  `@Int ";"`
}
