// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package collect

import (
	"go.chromium.org/infra/build/jdeps/symbol"
)

// archiveSep separates archive path and entry path in the string form
// of a canonical path.
const archiveSep = "!/"

// CanonicalPath is the provenance of a loaded class: an archive and
// the entry path inside the archive.
type CanonicalPath struct {
	Archive string
	Entry   string
}

// String returns "<archive>!/<entry>".
func (p CanonicalPath) String() string {
	return p.Archive + archiveSep + p.Entry
}

func locateOrigin(o symbol.Origin) (CanonicalPath, bool) {
	if !o.IsBinary() {
		return CanonicalPath{}, false
	}
	return CanonicalPath{Archive: o.Archive, Entry: o.Entry}, true
}

func locateClass(c *symbol.Class) (CanonicalPath, bool) {
	if c == nil {
		return CanonicalPath{}, false
	}
	return locateOrigin(c.Origin)
}

// locateMember locates a member by its own origin, or by its
// containing class.
func locateMember(o symbol.Origin, container *symbol.Class) (CanonicalPath, bool) {
	if p, ok := locateOrigin(o); ok {
		return p, true
	}
	return locateClass(container)
}

// Locate returns the canonical path of the archive entry that provided
// sym. It returns false for symbols of the current compilation unit and
// for unrecognized origins.
func Locate(sym symbol.Symbol) (CanonicalPath, bool) {
	switch s := sym.(type) {
	case *symbol.Class:
		return locateClass(s)
	case *symbol.BinaryMember:
		if s != nil {
			return locateClass(s.Owner)
		}
	case *symbol.ObjectMember:
		if s != nil {
			return locateClass(s.Object)
		}
	case *symbol.Function:
		if s != nil {
			return locateMember(s.Origin, s.Container)
		}
	case *symbol.Property:
		if s != nil {
			return locateMember(s.Origin, s.Container)
		}
	case *symbol.Parameter:
		if s != nil {
			return LocateType(s.Type)
		}
	case *symbol.ObjectLiteral:
		if s != nil {
			return LocateType(s.Type)
		}
	case *symbol.LocalVariable:
		if s != nil {
			return LocateType(s.Type)
		}
	}
	return CanonicalPath{}, false
}

// LocateType returns the canonical path of the class of t.
// Type parameters have no canonical path.
func LocateType(t *symbol.Type) (CanonicalPath, bool) {
	if t == nil {
		return CanonicalPath{}, false
	}
	return locateClass(t.Class)
}
