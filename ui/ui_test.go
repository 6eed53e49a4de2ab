// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui_test

import (
	"bytes"
	"testing"

	"go.chromium.org/infra/build/jdeps/ui"
)

func TestStripANSIEscapeCodes(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{
			in:   "foo\033",
			want: "foo",
		},
		{
			in:   "foo\033[",
			want: "foo",
		},
		{
			in:   "\033[31;1mERROR:\033[0m missing \033[1m//lib:c\033[0m",
			want: "ERROR: missing //lib:c",
		},
	} {
		got := ui.StripANSIEscapeCodes(tc.in)
		if got != tc.want {
			t.Errorf("ui.StripANSIEscapeCodes(%q)=%q; want=%q", tc.in, got, tc.want)
		}
	}
}

func TestTermUI(t *testing.T) {
	var out, errOut bytes.Buffer
	u := ui.NewTermUI(&out, &errOut)
	u.Infof("wrote %s", "deps.jdeps")
	u.Warningf("missing %d deps", 1)
	u.Errorf("failed\n")

	if got, want := out.String(), "wrote deps.jdeps\n"; got != want {
		t.Errorf("stdout=%q; want %q", got, want)
	}
	if got, want := ui.StripANSIEscapeCodes(errOut.String()), "WARNING: missing 1 deps\nERROR: failed\n"; got != want {
		t.Errorf("stderr=%q; want %q", got, want)
	}
}
