// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package symbol models resolved symbols and types reported by the
// semantic analyzer of a compilation unit.
//
// The analyzer itself is external. A host either builds these values
// directly while it traverses the unit, or records them in a trace file
// (see DecodeTrace) that is replayed later.
package symbol

import (
	"fmt"
	"strings"
)

// OriginKind is a kind of symbol provenance.
type OriginKind int

const (
	// OriginUnknown is an unrecognized origin.
	OriginUnknown OriginKind = iota
	// OriginSource is a symbol defined in the current compilation unit.
	OriginSource
	// OriginClassFile is a symbol loaded from JVM bytecode in an archive.
	OriginClassFile
	// OriginModuleMetadata is a symbol loaded from compiled Kotlin module
	// metadata in an archive.
	OriginModuleMetadata
)

var originKindNames = map[OriginKind]string{
	OriginUnknown:        "unknown",
	OriginSource:         "source",
	OriginClassFile:      "class_file",
	OriginModuleMetadata: "module_metadata",
}

func (k OriginKind) String() string {
	if s, ok := originKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("OriginKind(%d)", int(k))
}

// ParseOriginKind parses the trace name of an origin kind.
// Empty string is OriginUnknown.
func ParseOriginKind(s string) (OriginKind, error) {
	if s == "" {
		return OriginUnknown, nil
	}
	for k, name := range originKindNames {
		if name == s {
			return k, nil
		}
	}
	return OriginUnknown, fmt.Errorf("unknown origin kind %q", s)
}

// Origin is the provenance of a symbol.
// Archive and Entry are set only for binary origins.
type Origin struct {
	Kind    OriginKind
	Archive string
	Entry   string
}

// IsBinary reports whether the origin is an entry of a packaged archive.
func (o Origin) IsBinary() bool {
	switch o.Kind {
	case OriginClassFile, OriginModuleMetadata:
		return o.Archive != "" && o.Entry != ""
	}
	return false
}

// Symbol is a resolved symbol. It is one of
// *Class, *ObjectMember, *BinaryMember, *Function, *Parameter,
// *ObjectLiteral, *Property or *LocalVariable.
type Symbol interface {
	symbol()
}

// Class is a class, interface or object.
type Class struct {
	FQName     string
	Origin     Origin
	Supertypes []*Type
	// Object is true for objects and companion objects.
	Object bool
}

// DefaultType returns the type of the class without type arguments.
func (c *Class) DefaultType() *Type {
	return &Type{Class: c}
}

func (c *Class) String() string {
	return c.FQName
}

// Type is a class type or a type parameter.
// For type parameters, Class is nil and Bounds are the upper bounds.
// A type may refer to itself through Args or Bounds.
type Type struct {
	Class  *Class
	Param  string
	Bounds []*Type
	Args   []*Type
}

// Supertypes returns direct supertypes of the type.
func (t *Type) Supertypes() []*Type {
	if t == nil {
		return nil
	}
	if t.Class == nil {
		return t.Bounds
	}
	return t.Class.Supertypes
}

// String returns a short description of the type.
// It doesn't expand arguments recursively, so it is safe on recursive types.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	name := t.Param
	if t.Class != nil {
		name = t.Class.FQName
	}
	if len(t.Args) == 0 {
		return name
	}
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		switch {
		case a == nil:
			args = append(args, "*")
		case a.Class != nil:
			args = append(args, a.Class.FQName)
		default:
			args = append(args, a.Param)
		}
	}
	return fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
}

// ObjectMember is a function or property imported from an object or
// a companion object.
type ObjectMember struct {
	Name   string
	Object *Class
}

// BinaryMember is a method or field of a class loaded from bytecode.
type BinaryMember struct {
	Name  string
	Owner *Class
}

// Function is a function or constructor.
type Function struct {
	Name              string
	Origin            Origin
	Container         *Class
	ReturnType        *Type
	Params            []*Type
	ExtensionReceiver *Type
	Annotations       []*Type
}

// Parameter is a value parameter.
type Parameter struct {
	Name string
	Type *Type
}

// ObjectLiteral is the synthetic callable that refers to an object by name.
type ObjectLiteral struct {
	Type *Type
}

// Property is a property or a Java field exposed as a property.
type Property struct {
	Name string
	// Container is nil for top-level properties.
	Container *Class
	Origin    Origin
	Type      *Type
	// Java is true for properties backed by a Java field of a binary class.
	Java             bool
	Annotations      []*Type
	FieldAnnotations []*Type
}

// LocalVariable is a local variable.
type LocalVariable struct {
	Name string
	Type *Type
}

func (*Class) symbol()         {}
func (*ObjectMember) symbol()  {}
func (*BinaryMember) symbol()  {}
func (*Function) symbol()      {}
func (*Parameter) symbol()     {}
func (*ObjectLiteral) symbol() {}
func (*Property) symbol()      {}
func (*LocalVariable) symbol() {}
