// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package jarutil provides access to entries and manifests of jar files.
package jarutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	log "github.com/golang/glog"
	"github.com/klauspost/compress/zip"
)

// Archive is an opened jar file.
type Archive struct {
	path    string
	rc      *zip.ReadCloser
	entries map[string]*zip.File
}

// Open opens a jar file.
func Open(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	a := &Archive{
		path:    path,
		rc:      rc,
		entries: make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		a.entries[f.Name] = f
	}
	return a, nil
}

// OpenEntry opens the named entry.
// It returns an error wrapping fs.ErrNotExist if the entry is missing.
func (a *Archive) OpenEntry(name string) (io.ReadCloser, error) {
	f, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s!/%s: %w", a.path, name, fs.ErrNotExist)
	}
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%s!/%s: %w", a.path, name, err)
	}
	return r, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	return a.rc.Close()
}

// Cache keeps archives open while entries of them are read.
// It is not safe for concurrent use.
type Cache struct {
	archives map[string]*Archive
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		archives: make(map[string]*Archive),
	}
}

// OpenEntry opens entry of archive, opening the archive if needed.
func (c *Cache) OpenEntry(ctx context.Context, archive, entry string) (io.ReadCloser, error) {
	a, ok := c.archives[archive]
	if !ok {
		var err error
		a, err = Open(archive)
		if err != nil {
			return nil, err
		}
		if log.V(1) {
			log.Infof("opened %s: %d entries", archive, len(a.entries))
		}
		c.archives[archive] = a
	}
	return a.OpenEntry(entry)
}

// Close closes all opened archives.
func (c *Cache) Close() error {
	var errs []error
	for name, a := range c.archives {
		errs = append(errs, a.Close())
		delete(c.archives, name)
	}
	return errors.Join(errs...)
}

// ManifestName is the entry name of the jar manifest.
const ManifestName = "META-INF/MANIFEST.MF"

// TargetLabelAttr is the manifest attribute that names the build target
// producing the jar.
const TargetLabelAttr = "Target-Label"

// ReadManifest parses the main section of the manifest of the archive.
func (a *Archive) ReadManifest() (map[string]string, error) {
	r, err := a.OpenEntry(ManifestName)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s!/%s: %w", a.path, ManifestName, err)
	}
	return ParseManifest(b), nil
}

// ParseManifest parses the main section of a jar manifest.
// Continuation lines (starting with a space) are joined to the
// previous line.
func ParseManifest(b []byte) map[string]string {
	attrs := make(map[string]string)
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n") {
		if line == "" {
			// end of main section.
			break
		}
		if strings.HasPrefix(line, " ") && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	for _, line := range lines {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		attrs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return attrs
}

// ReadOwner returns the target label recorded in the manifest of the
// archive at path. It returns an empty label if the archive has no
// manifest or the manifest has no label.
func ReadOwner(path string) (string, error) {
	a, err := Open(path)
	if err != nil {
		return "", err
	}
	defer a.Close()
	attrs, err := a.ReadManifest()
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return attrs[TargetLabelAttr], nil
}
