// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog_test is a test for clog package.
package clog_test

import (
	"context"
	"testing"

	"cloud.google.com/go/logging"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/jdeps/o11y/clog"
)

func TestSpan(t *testing.T) {
	ctx := context.Background()

	var got []string
	l := clog.New()
	l.Formatter = func(e logging.Entry) string {
		s := clog.DefaultFormatter(e)
		got = append(got, s)
		return s
	}
	ctx = clog.NewContext(ctx, l)

	clog.Infof(ctx, "start")
	cctx := clog.NewSpan(ctx, "trace1", "span1", map[string]string{
		"target": "//app:app",
	})
	clog.Warningf(cctx, "missing %d", 1)
	gctx := clog.NewSpan(cctx, "trace1", "span2", map[string]string{
		"phase": "report",
	})
	clog.Errorf(gctx, "failed")

	want := []string{
		"start",
		"[trace1] target=//app:app missing 1",
		"[trace1] phase=report target=//app:app failed",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log lines (-want +got):\n%s", diff)
	}
}

func TestDefaultFormatter(t *testing.T) {
	for _, tc := range []struct {
		e    logging.Entry
		want string
	}{
		{
			e:    logging.Entry{Payload: "hello"},
			want: "hello",
		},
		{
			e: logging.Entry{
				Payload: "hello",
				Trace:   "7d3c",
				Labels:  map[string]string{"target": "//a:a"},
			},
			want: "[7d3c] target=//a:a hello",
		},
	} {
		if got := clog.DefaultFormatter(tc.e); got != tc.want {
			t.Errorf("DefaultFormatter(%v)=%q; want %q", tc.e, got, tc.want)
		}
	}
}

func TestFromContext_Default(t *testing.T) {
	l := clog.FromContext(context.Background())
	if l == nil {
		t.Fatal("FromContext(background)=nil; want default logger")
	}
	// must not panic without a logger in the context.
	clog.Infof(context.Background(), "no logger")
}
