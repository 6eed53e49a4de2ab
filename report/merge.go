// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package report

import (
	"sort"
)

// rank of kinds in merge. Higher wins.
var kindRank = map[Kind]int{
	Incomplete: 0,
	Unused:     1,
	Implicit:   2,
	Explicit:   3,
}

// Merge merges reports of the same target, e.g. reports of Java and
// Kotlin compilation of one rule.
//
// For each archive, the strongest kind wins (Explicit > Implicit >
// Unused > Incomplete), and used classes of the winning kind are
// unioned by internal path. Used resources are unioned. The result is
// successful only if all inputs are.
func Merge(label string, inputs ...*Dependencies) *Dependencies {
	merged := &Dependencies{
		Success:   true,
		RuleLabel: label,
	}
	deps := make(map[string]*Dependency)
	resources := make(map[string]bool)
	for _, in := range inputs {
		if !in.Success {
			merged.Success = false
		}
		for _, dep := range in.Dependencies {
			cur, ok := deps[dep.Path]
			switch {
			case !ok || kindRank[dep.Kind] > kindRank[cur.Kind]:
				dep.UsedClasses = append([]UsedClass(nil), dep.UsedClasses...)
				deps[dep.Path] = &dep
			case dep.Kind == cur.Kind:
				cur.UsedClasses = mergeClasses(cur.UsedClasses, dep.UsedClasses)
			}
		}
		for _, r := range in.UsedResources {
			resources[r] = true
		}
	}
	paths := make([]string, 0, len(deps))
	for p := range deps {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		di, dj := deps[paths[i]], deps[paths[j]]
		if di.Kind != dj.Kind {
			return kindOrder(di.Kind) < kindOrder(dj.Kind)
		}
		return paths[i] < paths[j]
	})
	for _, p := range paths {
		merged.Dependencies = append(merged.Dependencies, *deps[p])
	}
	for r := range resources {
		merged.UsedResources = append(merged.UsedResources, r)
	}
	sort.Strings(merged.UsedResources)
	return merged
}

// kindOrder is the order of kinds in a report, the same as Builder.Build.
func kindOrder(k Kind) int {
	switch k {
	case Unused:
		return 0
	case Explicit:
		return 1
	case Implicit:
		return 2
	}
	return 3
}

func mergeClasses(a, b []UsedClass) []UsedClass {
	seen := make(map[string]bool, len(a))
	for _, c := range a {
		seen[c.InternalPath] = true
	}
	for _, c := range b {
		if seen[c.InternalPath] {
			continue
		}
		seen[c.InternalPath] = true
		a = append(a, c)
	}
	sort.Slice(a, func(i, j int) bool {
		return a[i].InternalPath < a[j].InternalPath
	})
	return a
}
