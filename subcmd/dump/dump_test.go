// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package dump

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"go.chromium.org/infra/build/jdeps/report"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "app.jdeps")
	err := report.WriteFile(fname, &report.Dependencies{
		Success:   true,
		RuleLabel: "//app:app",
		Dependencies: []report.Dependency{
			{Kind: report.Unused, Path: "u.jar"},
			{Kind: report.Explicit, Path: "a.jar"},
			{Kind: report.Implicit, Path: "i.jar"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []string{"text", "json"} {
		var buf bytes.Buffer
		c := &run{format: format}
		err := c.run(&buf, []string{fname})
		if err != nil {
			t.Errorf("run(%s)=%v; want nil error", format, err)
			continue
		}
		for _, s := range []string{"u.jar", "a.jar", "i.jar", "IMPLICIT"} {
			if !strings.Contains(buf.String(), s) {
				t.Errorf("run(%s) output doesn't contain %q:\n%s", format, s, buf.String())
			}
		}
	}
}
