// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package pass

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/jdeps/config"
	"go.chromium.org/infra/build/jdeps/report"
	"go.chromium.org/infra/build/jdeps/strictdeps"
	"go.chromium.org/infra/build/jdeps/symbol"
)

type fakeUI struct {
	warnings, errors []string
}

func (f *fakeUI) Infof(format string, args ...any) {}

func (f *fakeUI) Warningf(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

func (f *fakeUI) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func noOwner(string) (string, error) { return "", nil }

func binaryClass(archive, fqName string) *symbol.Class {
	return &symbol.Class{
		FQName: fqName,
		Origin: symbol.Origin{
			Kind:    symbol.OriginClassFile,
			Archive: archive,
			Entry:   strings.ReplaceAll(fqName, ".", "/") + ".class",
		},
	}
}

func setup(t *testing.T, mode strictdeps.Mode, directDeps ...string) (config.Config, *fakeUI) {
	t.Helper()
	cfg := config.Default()
	cfg.TargetLabel = "//app:app"
	cfg.Output = filepath.Join(t.TempDir(), "app.jdeps")
	cfg.DirectDeps = directDeps
	cfg.StrictDeps = mode
	return cfg, &fakeUI{}
}

func TestFinish_UnusedDirectDep(t *testing.T) {
	ctx := context.Background()
	cfg, u := setup(t, strictdeps.Error, "a.jar", "b.jar")
	p := New(cfg, Options{UI: u, Owner: noOwner})
	p.OnResolvedCall(&symbol.BinaryMember{Name: "run", Owner: binaryClass("a.jar", "com.a.A")})

	got, err := p.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish=_, %v; want nil error", err)
	}
	want := []report.Dependency{
		{Kind: report.Unused, Path: "b.jar"},
		{Kind: report.Explicit, Path: "a.jar"},
	}
	if diff := cmp.Diff(want, got.Dependencies); diff != "" {
		t.Errorf("dependencies (-want +got):\n%s", diff)
	}
	if len(u.warnings)+len(u.errors) > 0 {
		t.Errorf("ui messages: %q %q; want none", u.warnings, u.errors)
	}
	written, err := report.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, written); diff != "" {
		t.Errorf("written report (-returned +written):\n%s", diff)
	}
}

func TestFinish_StrictDeps(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		mode         strictdeps.Mode
		wantErr      error
		wantWarnings int
		wantErrors   int
	}{
		{mode: strictdeps.Off},
		{mode: strictdeps.Warn, wantWarnings: 1},
		{mode: strictdeps.Error, wantErr: strictdeps.ErrViolation, wantErrors: 1},
	} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			cfg, u := setup(t, tc.mode, "a.jar")
			p := New(cfg, Options{UI: u, Owner: noOwner})
			p.OnDeclaration(&symbol.LocalVariable{Name: "a", Type: binaryClass("a.jar", "com.a.A").DefaultType()})
			p.OnDeclaration(&symbol.LocalVariable{Name: "c", Type: binaryClass("c.jar", "com.c.C").DefaultType()})

			got, err := p.Finish(ctx)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Finish=_, %v; want %v", err, tc.wantErr)
			}
			if len(u.warnings) != tc.wantWarnings || len(u.errors) != tc.wantErrors {
				t.Errorf("warnings=%q errors=%q; want %d warnings %d errors", u.warnings, u.errors, tc.wantWarnings, tc.wantErrors)
			}
			for _, msg := range append(u.warnings, u.errors...) {
				if !strings.Contains(msg, "c.jar") {
					t.Errorf("message %q doesn't mention c.jar", msg)
				}
			}
			if tc.wantErr != nil {
				if _, err := os.Stat(cfg.Output); !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("report exists after violation: %v", err)
				}
				return
			}
			want := []report.Dependency{
				{Kind: report.Explicit, Path: "a.jar"},
				{Kind: report.Explicit, Path: "c.jar"},
			}
			if diff := cmp.Diff(want, got.Dependencies); diff != "" {
				t.Errorf("dependencies (-want +got):\n%s", diff)
			}
			written, err := report.ReadFile(cfg.Output)
			if err != nil {
				t.Fatalf("ReadFile(%q)=_, %v; want report written in %s mode", cfg.Output, err, tc.mode)
			}
			if diff := cmp.Diff(got, written); diff != "" {
				t.Errorf("written report (-returned +written):\n%s", diff)
			}
		})
	}
}

func TestFinish_Twice(t *testing.T) {
	ctx := context.Background()
	cfg, u := setup(t, strictdeps.Off)
	p := New(cfg, Options{UI: u, Owner: noOwner})
	_, err := p.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish=_, %v; want nil error", err)
	}
	// events after finish are ignored.
	p.OnResolvedCall(&symbol.BinaryMember{Name: "run", Owner: binaryClass("a.jar", "com.a.A")})
	_, err = p.Finish(ctx)
	if !errors.Is(err, ErrFinished) {
		t.Errorf("Finish=_, %v; want %v", err, ErrFinished)
	}
}

func TestFinish_MissingClassFails(t *testing.T) {
	ctx := context.Background()
	cfg, u := setup(t, strictdeps.Off)
	cfg.TrackClassUsage = true
	p := New(cfg, Options{UI: u, Owner: noOwner})
	p.OnResolvedCall(&symbol.BinaryMember{
		Name:  "run",
		Owner: binaryClass(filepath.Join(t.TempDir(), "nonexistent.jar"), "com.a.A"),
	})
	_, err := p.Finish(ctx)
	if err == nil {
		t.Fatalf("Finish=_, nil; want error")
	}
	if _, err := os.Stat(cfg.Output); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("report exists after failure: %v", err)
	}
}

func TestReplay(t *testing.T) {
	ctx := context.Background()
	trace := `{
  "classes": {
    "list": {"fq_name": "java.util.List", "origin": {"kind": "class_file", "archive": "rt.jar", "entry": "java/util/List.class"}, "supertypes": ["collection"]},
    "coll": {"fq_name": "java.util.Collection", "origin": {"kind": "class_file", "archive": "rt.jar", "entry": "java/util/Collection.class"}},
    "node": {"fq_name": "com.lib.Node", "origin": {"kind": "class_file", "archive": "lib.jar", "entry": "com/lib/Node.class"}},
    "res": {"fq_name": "com.app.R.string", "origin": {"kind": "class_file", "archive": "app_r.jar", "entry": "com/app/R$string.class"}},
    "impl": {"fq_name": "com.app.Impl", "origin": {"kind": "source"}, "supertypes": ["node_t"]}
  },
  "types": {
    "collection": {"class": "coll"},
    "t": {"param": "T", "bounds": ["node_t"]},
    "node_t": {"class": "node", "args": ["t"]},
    "list_node": {"class": "list", "args": ["node_t"]}
  },
  "events": [
    {"declaration": {"class": "impl"}},
    {"declaration": {"function": {"name": "nodes", "return_type": "list_node"}}},
    {"call": {"property": {"name": "title", "container": "res", "java": true}}}
  ]
}`
	tr, err := symbol.DecodeTrace(strings.NewReader(trace))
	if err != nil {
		t.Fatalf("DecodeTrace=_, %v; want nil error", err)
	}
	cfg, u := setup(t, strictdeps.Warn, "rt.jar", "lib.jar", "app_r.jar")
	cfg.TrackResourceUsage = true
	p := New(cfg, Options{UI: u, Owner: noOwner})
	p.Replay(tr)
	got, err := p.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish=_, %v; want nil error", err)
	}
	want := &report.Dependencies{
		Success:   true,
		RuleLabel: "//app:app",
		Dependencies: []report.Dependency{
			{Kind: report.Explicit, Path: "app_r.jar"},
			{Kind: report.Explicit, Path: "lib.jar"},
			{Kind: report.Explicit, Path: "rt.jar"},
		},
		UsedResources: []string{"com.app.R.string.title"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
	if len(u.warnings) > 0 {
		t.Errorf("warnings=%q; want none", u.warnings)
	}
}
