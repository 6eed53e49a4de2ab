// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package version

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, "jdeps v1.0.0", &debug.BuildInfo{
		GoVersion: "go1.24.2",
		Settings: []debug.BuildSetting{
			{Key: "-trimpath", Value: "true"},
			{Key: "vcs.revision", Value: "abc123"},
		},
	}, true)
	want := "jdeps v1.0.0\ngo\tgo1.24.2\nbuild\tvcs.revision=abc123\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("printVersion (-want +got):\n%s", diff)
	}

	buf.Reset()
	printVersion(&buf, "jdeps v1.0.0", nil, false)
	if got, want := buf.String(), "jdeps v1.0.0\n"; got != want {
		t.Errorf("printVersion(no buildinfo)=%q; want %q", got, want)
	}
}
