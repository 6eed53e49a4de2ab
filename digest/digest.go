// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package digest computes content digests of class entries.
//
// Digests are SHA-256, the same as the Digest proto of the remote
// execution API.
package digest

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/bazelbuild/remote-apis-sdks/go/pkg/digest"
)

// Source is the interface that opens a data source,
// e.g. an entry of an archive.
type Source interface {
	// Open returns io.ReadCloser of the source.
	Open(context.Context) (io.ReadCloser, error)

	// String returns the name of the data source.
	String() string
}

// Data is a digest of a source.
type Data struct {
	digest digest.Digest
	source Source
}

// FromSource reads all content of src and computes its digest.
func FromSource(ctx context.Context, src Source) (Data, error) {
	r, err := src.Open(ctx)
	if err != nil {
		return Data{}, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer r.Close()
	d, err := digest.NewFromReader(r)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return Data{
		digest: d,
		source: src,
	}, nil
}

// Sum returns raw bytes of the hash.
func (d Data) Sum() []byte {
	b, err := hex.DecodeString(d.digest.Hash)
	if err != nil {
		// Hash is always hex encoded by the digest package.
		panic(fmt.Sprintf("bad digest hash %q: %v", d.digest.Hash, err))
	}
	return b
}

// String returns the digest and the source in string format.
func (d Data) String() string {
	return fmt.Sprintf("%s/%d %v", d.digest.Hash, d.digest.Size, d.source)
}
