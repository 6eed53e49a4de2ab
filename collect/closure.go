// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package collect

import (
	"go.chromium.org/infra/build/jdeps/symbol"
)

// expand records t and its type closure.
//
// t itself and its type arguments (recursively) are recorded with the
// same kind; supertypes of each of them are always implicit.
func (c *Collector) expand(t *symbol.Type, explicit bool) {
	c.expandType(t, explicit, make(map[*symbol.Type]bool))
}

func (c *Collector) expandType(t *symbol.Type, explicit bool, visited map[*symbol.Type]bool) {
	if t == nil || visited[t] {
		return
	}
	visited[t] = true
	c.addType(t, explicit)
	for _, st := range allSupertypes(t) {
		c.addType(st, false)
	}
	for _, arg := range t.Args {
		c.expandType(arg, explicit, visited)
	}
}

func (c *Collector) addType(t *symbol.Type, explicit bool) {
	p, ok := LocateType(t)
	if !ok {
		return
	}
	c.add(p, explicit)
}

func (c *Collector) add(p CanonicalPath, explicit bool) {
	if explicit {
		c.usage.AddExplicit(p)
		return
	}
	c.usage.AddImplicit(p)
}

// allSupertypes returns the transitive supertypes of t, excluding t.
func allSupertypes(t *symbol.Type) []*symbol.Type {
	seen := map[*symbol.Type]bool{t: true}
	var result []*symbol.Type
	queue := t.Supertypes()
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		if st == nil || seen[st] {
			continue
		}
		seen[st] = true
		result = append(result, st)
		queue = append(queue, st.Supertypes()...)
	}
	return result
}
