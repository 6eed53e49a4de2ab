// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package merge

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/jdeps/report"
	"go.chromium.org/infra/build/jdeps/strictdeps"
)

func writeReports(t *testing.T, dir string) []string {
	t.Helper()
	java := filepath.Join(dir, "java.jdeps")
	err := report.WriteFile(java, &report.Dependencies{
		Success:   true,
		RuleLabel: "//app:app",
		Dependencies: []report.Dependency{
			{Kind: report.Unused, Path: "a.jar"},
			{Kind: report.Unused, Path: filepath.Join(dir, "b.jar")},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	kotlin := filepath.Join(dir, "kotlin.jdeps")
	err = report.WriteFile(kotlin, &report.Dependencies{
		Success:   true,
		RuleLabel: "//app:app",
		Dependencies: []report.Dependency{
			{Kind: report.Explicit, Path: "a.jar"},
			{Kind: report.Unused, Path: filepath.Join(dir, "b.jar")},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return []string{java, kotlin}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	inputs := writeReports(t, dir)
	output := filepath.Join(dir, "merged.jdeps")

	c := &run{}
	c.init()
	err := c.Flags.Parse(append([]string{"-target_label", "//app:app", "-output", output}, inputs...))
	if err != nil {
		t.Fatal(err)
	}
	err = c.run(ctx, c.Flags.Args())
	if err != nil {
		t.Fatalf("run=%v; want nil error", err)
	}
	got, err := report.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := []report.Dependency{
		{Kind: report.Unused, Path: filepath.Join(dir, "b.jar")},
		{Kind: report.Explicit, Path: "a.jar"},
	}
	if diff := cmp.Diff(want, got.Dependencies); diff != "" {
		t.Errorf("merged (-want +got):\n%s", diff)
	}
}

func TestRun_UnusedDepsError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	inputs := writeReports(t, dir)

	c := &run{}
	c.init()
	err := c.Flags.Parse(append([]string{"-target_label", "//app:app", "-output", filepath.Join(dir, "merged.jdeps"), "-unused_deps", "error"}, inputs...))
	if err != nil {
		t.Fatal(err)
	}
	err = c.run(ctx, c.Flags.Args())
	if !errors.Is(err, strictdeps.ErrViolation) {
		t.Errorf("run=%v; want %v", err, strictdeps.ErrViolation)
	}
}

func TestRun_MissingInput(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := &run{}
	c.init()
	err := c.Flags.Parse([]string{"-target_label", "//app:app", "-output", filepath.Join(dir, "merged.jdeps"), filepath.Join(dir, "nonexistent.jdeps")})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.run(ctx, c.Flags.Args()); err == nil {
		t.Errorf("run=nil; want error")
	}
}
