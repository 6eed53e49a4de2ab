// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package report builds, reads and writes dependency reports of
// compilation units.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Kind is a kind of dependency.
type Kind int32

const (
	// Explicit is an archive with a class directly used by the unit.
	Explicit Kind = 0
	// Implicit is an archive with classes used only structurally.
	Implicit Kind = 1
	// Unused is a declared direct dependency that is not used.
	Unused Kind = 2
	// Incomplete is a dependency whose usage couldn't be determined.
	Incomplete Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Explicit:
		return "EXPLICIT"
	case Implicit:
		return "IMPLICIT"
	case Unused:
		return "UNUSED"
	case Incomplete:
		return "INCOMPLETE"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// UsedClass is a class used from an archive.
type UsedClass struct {
	FullyQualifiedName string
	InternalPath       string
	// Hash is the SHA-256 digest of the class entry.
	Hash []byte
}

// Dependency is a dependency on an archive.
type Dependency struct {
	Kind Kind
	Path string
	// UsedClasses is set only for Explicit dependencies when class
	// usage tracking is enabled.
	UsedClasses []UsedClass
}

// Dependencies is a dependency report of a compilation unit.
type Dependencies struct {
	Success       bool
	RuleLabel     string
	Dependencies  []Dependency
	UsedResources []string
}

// Paths returns archive paths of dependencies of kind k.
func (d *Dependencies) Paths(k Kind) []string {
	var paths []string
	for _, dep := range d.Dependencies {
		if dep.Kind == k {
			paths = append(paths, dep.Path)
		}
	}
	return paths
}

// Marshal returns the wire format of the report.
func (d *Dependencies) Marshal() ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(d.toMessage())
}

// Unmarshal parses the wire format of a report.
func Unmarshal(b []byte) (*Dependencies, error) {
	m := dynamicpb.NewMessage(dependenciesDesc)
	err := proto.Unmarshal(b, m)
	if err != nil {
		return nil, err
	}
	return fromMessage(m), nil
}

// Format renders the report in "text" (prototext) or "json" (protojson).
func (d *Dependencies) Format(format string) ([]byte, error) {
	switch format {
	case "text":
		return prototext.MarshalOptions{
			Multiline: true,
			Indent:    " ",
		}.Marshal(d.toMessage())
	case "json":
		return protojson.MarshalOptions{
			Multiline: true,
			Indent:    " ",
		}.Marshal(d.toMessage())
	}
	return nil, fmt.Errorf("unknown format %q: want text or json", format)
}

// WriteFile writes the report to path, replacing existing content.
// The file is replaced atomically, so a failed write leaves no partial
// report.
func WriteFile(path string, d *Dependencies) error {
	b, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal report for %s: %w", d.RuleLabel, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	tmpname := f.Name()
	_, err = f.Write(b)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpname, path)
	}
	if err != nil {
		os.Remove(tmpname)
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a report written by WriteFile.
func ReadFile(path string) (*Dependencies, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return d, nil
}
