// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package strictdeps checks used archives against the declared direct
// dependencies of a build target.
package strictdeps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.chromium.org/infra/build/jdeps/o11y/clog"
	"go.chromium.org/infra/build/jdeps/ui"
)

// ErrViolation is returned by Enforce in Error mode when dependencies
// are missing or unused.
var ErrViolation = errors.New("dependency check failed")

// OwnerFunc returns the label of the build target that produced the
// archive. It returns an empty label if unknown.
type OwnerFunc func(archive string) (string, error)

// ViolationKind is a kind of violation.
type ViolationKind int

const (
	// Missing is an archive used explicitly but not declared as a
	// direct dependency.
	Missing ViolationKind = iota
	// Unused is a declared direct dependency that is not used.
	Unused
)

// Dep is an archive in a violation.
type Dep struct {
	Archive string
	// Label is the owning target label, or empty if unknown.
	Label string
}

func (d Dep) String() string {
	if d.Label == "" {
		return d.Archive
	}
	return fmt.Sprintf("%s (%s)", d.Label, d.Archive)
}

// Violation is a result of a failed check.
type Violation struct {
	Kind        ViolationKind
	TargetLabel string
	Deps        []Dep
}

// Check returns a violation for archives in explicit that are not in
// directDeps, or nil if all explicit archives are declared.
func Check(ctx context.Context, explicit, directDeps []string, targetLabel string, owner OwnerFunc) *Violation {
	declared := make(map[string]bool, len(directDeps))
	for _, d := range directDeps {
		declared[d] = true
	}
	var missing []string
	for _, a := range explicit {
		if declared[a] {
			continue
		}
		missing = append(missing, a)
	}
	return newViolation(ctx, Missing, missing, targetLabel, owner)
}

// CheckUnused returns a violation for unused direct dependencies, or nil
// if there is none. Archives produced by the target itself are never
// reported.
func CheckUnused(ctx context.Context, unused []string, targetLabel string, owner OwnerFunc) *Violation {
	v := newViolation(ctx, Unused, unused, targetLabel, owner)
	if v == nil {
		return nil
	}
	deps := v.Deps[:0]
	for _, d := range v.Deps {
		if d.Label == targetLabel {
			continue
		}
		deps = append(deps, d)
	}
	if len(deps) == 0 {
		return nil
	}
	v.Deps = deps
	return v
}

func newViolation(ctx context.Context, kind ViolationKind, archives []string, targetLabel string, owner OwnerFunc) *Violation {
	if len(archives) == 0 {
		return nil
	}
	archives = append([]string(nil), archives...)
	sort.Strings(archives)
	v := &Violation{
		Kind:        kind,
		TargetLabel: targetLabel,
	}
	for _, a := range archives {
		d := Dep{Archive: a}
		if owner != nil {
			label, err := owner(a)
			if err != nil {
				clog.Warningf(ctx, "failed to read owner of %s: %v", a, err)
			}
			d.Label = label
		}
		v.Deps = append(v.Deps, d)
	}
	return v
}

// Message returns the remediation message of the violation.
func (v *Violation) Message() string {
	var sb strings.Builder
	verb, prep, cmd := "add", "to", "add deps"
	if v.Kind == Unused {
		verb, prep, cmd = "remove", "from", "remove deps"
	}
	fmt.Fprintf(&sb, "%s Please %s the following dependencies:\n", ui.SGR(ui.Bold, "**"), verb)
	deps := make([]string, 0, len(v.Deps))
	for _, d := range v.Deps {
		fmt.Fprintf(&sb, "  %s\n", d)
		// without an owner label, the archive path is the best hint.
		if d.Label != "" {
			deps = append(deps, d.Label)
		} else {
			deps = append(deps, d.Archive)
		}
	}
	fmt.Fprintf(&sb, " %s %s\n", prep, v.TargetLabel)
	fmt.Fprintf(&sb, "%s You can use the following buildozer command:\n", ui.SGR(ui.Bold, "**"))
	fmt.Fprintf(&sb, "buildozer '%s %s' %s\n", cmd, strings.Join(deps, " "), v.TargetLabel)
	return sb.String()
}

// Enforce reports v according to mode.
// In Error mode, it returns an error wrapping ErrViolation if v is not nil.
func Enforce(mode Mode, v *Violation, u ui.UI) error {
	if v == nil || mode == Off {
		return nil
	}
	switch mode {
	case Warn:
		u.Warningf("%s", v.Message())
		return nil
	case Error:
		u.Errorf("%s", v.Message())
		return fmt.Errorf("%s: %d %s dependencies: %w", v.TargetLabel, len(v.Deps), v.kindName(), ErrViolation)
	}
	return fmt.Errorf("unknown mode %v", mode)
}

func (v *Violation) kindName() string {
	if v.Kind == Unused {
		return "unused"
	}
	return "missing"
}
