// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package digest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memSource struct {
	b   []byte
	err error
}

func (m memSource) Open(context.Context) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(bytes.NewReader(m.b)), nil
}

func (m memSource) String() string { return "mem" }

func TestFromSource(t *testing.T) {
	ctx := context.Background()
	content := []byte("\xca\xfe\xba\xbe class bytes")

	d, err := FromSource(ctx, memSource{b: content})
	if err != nil {
		t.Fatalf("FromSource(...)=_, %v; want nil error", err)
	}
	want := sha256.Sum256(content)
	if diff := cmp.Diff(want[:], d.Sum()); diff != "" {
		t.Errorf("Sum() (-want +got):\n%s", diff)
	}
	wantString := fmt.Sprintf("%x/%d mem", want, len(content))
	if got := d.String(); got != wantString {
		t.Errorf("String()=%q; want %q", got, wantString)
	}
}

func TestFromSource_OpenError(t *testing.T) {
	errBroken := errors.New("broken")
	_, err := FromSource(context.Background(), memSource{err: errBroken})
	if !errors.Is(err, errBroken) {
		t.Errorf("FromSource(...)=_, %v; want %v", err, errBroken)
	}
}
