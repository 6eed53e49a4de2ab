// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package collect

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/jdeps/report"
)

const trace = `{
  "classes": {
    "a": {"fq_name": "com.a.A", "origin": {"kind": "class_file", "archive": "a.jar", "entry": "com/a/A.class"}}
  },
  "events": [
    {"call": {"binary_member": {"name": "run", "owner": "a"}}}
  ]
}`

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	traceFile := filepath.Join(dir, "trace.json")
	err := os.WriteFile(traceFile, []byte(trace), 0644)
	if err != nil {
		t.Fatal(err)
	}
	params := filepath.Join(dir, "params.yaml")
	err = os.WriteFile(params, []byte("target_label: //app:app\ndirect_deps: [a.jar, b.jar]\nstrict_deps: error\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "app.jdeps")

	c := &run{}
	c.init()
	err = c.Flags.Parse([]string{"-trace", traceFile, "-params", params, "-output", output})
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
		{Kind: report.Unused, Path: "b.jar"},
		{Kind: report.Explicit, Path: "a.jar"},
	}
	if diff := cmp.Diff(want, got.Dependencies); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
}

func TestRun_Usage(t *testing.T) {
	ctx := context.Background()
	for _, args := range [][]string{
		{},
		{"-trace", "trace.json"},
		{"-trace", "trace.json", "-target_label", "//a", "-output", "a.jdeps", "extra"},
	} {
		c := &run{}
		c.init()
		err := c.Flags.Parse(args)
		if err != nil {
			t.Fatal(err)
		}
		err = c.run(ctx, c.Flags.Args())
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("run(%q)=%v; want %v", args, err, flag.ErrHelp)
		}
	}
}
