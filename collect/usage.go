// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package collect

import (
	"sort"
)

// Usage accumulates used classes and resources of one compilation unit.
// Adding an entry twice is a no-op.
// It is not safe for concurrent use.
type Usage struct {
	explicit  map[CanonicalPath]bool
	implicit  map[CanonicalPath]bool
	resources map[string]bool
}

// NewUsage creates empty usage sets.
func NewUsage() *Usage {
	return &Usage{
		explicit:  make(map[CanonicalPath]bool),
		implicit:  make(map[CanonicalPath]bool),
		resources: make(map[string]bool),
	}
}

// AddExplicit adds p as a directly referenced class.
func (u *Usage) AddExplicit(p CanonicalPath) {
	u.explicit[p] = true
}

// AddImplicit adds p as a class required only structurally.
func (u *Usage) AddImplicit(p CanonicalPath) {
	u.implicit[p] = true
}

// AddResource adds a used resource name.
func (u *Usage) AddResource(name string) {
	u.resources[name] = true
}

// Explicit returns explicitly used classes, sorted.
func (u *Usage) Explicit() []CanonicalPath {
	return sortedPaths(u.explicit)
}

// Implicit returns implicitly used classes, sorted.
// A class in both sets is returned by both Explicit and Implicit.
func (u *Usage) Implicit() []CanonicalPath {
	return sortedPaths(u.implicit)
}

// Resources returns used resource names, sorted.
func (u *Usage) Resources() []string {
	names := make([]string, 0, len(u.resources))
	for name := range u.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedPaths(m map[CanonicalPath]bool) []CanonicalPath {
	paths := make([]CanonicalPath, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Archive != paths[j].Archive {
			return paths[i].Archive < paths[j].Archive
		}
		return paths[i].Entry < paths[j].Entry
	})
	return paths
}
