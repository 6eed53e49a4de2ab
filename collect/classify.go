// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package collect classifies resolved symbols of a compilation unit into
// explicit and implicit class usages.
//
// The analyzer calls OnResolvedCall for each resolved call or reference
// and OnDeclaration for each declaration, synchronously, from a single
// traversal of the unit.
//
// A class the source names directly (a declared parameter type, the class
// that defines a called method) is explicit. A class needed only because
// it is a supertype or a type argument of something the source names, or
// because a call's return type has to be known, is implicit.
package collect

import (
	"strings"

	"go.chromium.org/infra/build/jdeps/symbol"
)

// Options configures a Collector.
type Options struct {
	// TrackResources enables recording of generated resource accessors
	// (e.g. "com.example.R.drawable.icon").
	TrackResources bool
}

// Collector classifies symbols into usage sets.
type Collector struct {
	usage *Usage
	opts  Options
}

// New creates a collector that records into usage.
func New(usage *Usage, opts Options) *Collector {
	return &Collector{
		usage: usage,
		opts:  opts,
	}
}

// OnResolvedCall records the symbols touched by a resolved call or
// reference to sym.
func (c *Collector) OnResolvedCall(sym symbol.Symbol) {
	switch s := sym.(type) {
	case *symbol.ObjectMember:
		if s == nil || s.Object == nil {
			return
		}
		c.expand(s.Object.DefaultType(), true)

	case *symbol.BinaryMember:
		// members of binary classes are leaves.
		if p, ok := Locate(s); ok {
			c.usage.AddExplicit(p)
		}

	case *symbol.Function:
		if s == nil {
			return
		}
		// signature types are recorded without their closure.
		c.addType(s.ReturnType, false)
		for _, t := range s.Params {
			c.addType(t, false)
		}
		if s.Origin.Kind == symbol.OriginModuleMetadata {
			if p, ok := locateOrigin(s.Origin); ok {
				c.usage.AddExplicit(p)
			}
		}

	case *symbol.Parameter:
		if p, ok := Locate(s); ok {
			c.usage.AddExplicit(p)
		}

	case *symbol.ObjectLiteral:
		if s == nil {
			return
		}
		c.expand(s.Type, true)

	case *symbol.Property:
		if s == nil {
			return
		}
		if s.Container != nil {
			c.expand(s.Container.DefaultType(), true)
		} else if p, ok := locateOrigin(s.Origin); ok {
			c.usage.AddExplicit(p)
		}
		c.addType(s.Type, false)
		if s.Java && c.opts.TrackResources {
			if name, ok := resourceName(s); ok {
				c.usage.AddResource(name)
			}
		}
	}
}

// OnDeclaration records the symbols referenced by the declaration of sym.
func (c *Collector) OnDeclaration(sym symbol.Symbol) {
	switch s := sym.(type) {
	case *symbol.Class:
		if s == nil {
			return
		}
		for _, t := range s.Supertypes {
			c.expand(t, false)
		}

	case *symbol.Function:
		if s == nil {
			return
		}
		c.expand(s.ReturnType, true)
		for _, t := range s.Params {
			c.expand(t, true)
		}
		for _, t := range s.Annotations {
			c.expand(t, true)
		}
		c.expand(s.ExtensionReceiver, true)

	case *symbol.Property:
		if s == nil {
			return
		}
		c.expand(s.Type, true)
		for _, t := range s.Annotations {
			c.expand(t, true)
		}
		for _, t := range s.FieldAnnotations {
			c.expand(t, true)
		}

	case *symbol.LocalVariable:
		if s == nil {
			return
		}
		c.expand(s.Type, true)
	}
}

// resourceName returns the resource name accessed by p if p is a field
// of a generated resource class, such as com.example.R.drawable.
func resourceName(p *symbol.Property) (string, bool) {
	if p.Container == nil {
		return "", false
	}
	fqName := p.Container.FQName
	if !strings.Contains(fqName, ".R.") && !strings.HasPrefix(fqName, "R.") {
		return "", false
	}
	return fqName + "." + p.Name, true
}
