// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package strictdeps

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mode is an enforcement mode of dependency checks.
type Mode int

const (
	// Off disables the check.
	Off Mode = iota
	// Warn prints violations and continues.
	Warn
	// Error prints violations and fails the compilation.
	Error
)

var modeNames = []string{
	Off:   "off",
	Warn:  "warn",
	Error: "error",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses "off", "warn" or "error".
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return Off, fmt.Errorf("unknown mode %q: want off, warn or error", s)
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if err := m.Set(s); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}
