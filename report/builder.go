// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.chromium.org/infra/build/jdeps/collect"
	"go.chromium.org/infra/build/jdeps/digest"
	"go.chromium.org/infra/build/jdeps/o11y/clog"
)

// DefaultArchiveSuffixes are suffixes of archive paths recognized by
// default.
var DefaultArchiveSuffixes = []string{".jar"}

// EntryOpener opens an entry of an archive.
type EntryOpener interface {
	OpenEntry(ctx context.Context, archive, entry string) (io.ReadCloser, error)
}

// Options configures a Builder.
type Options struct {
	// TrackClassUsage records used classes with their digests in
	// explicit dependencies.
	TrackClassUsage bool
	// TrackResourceUsage records used resources.
	TrackResourceUsage bool
	// ArchiveSuffixes are recognized archive path suffixes.
	// If empty, DefaultArchiveSuffixes is used.
	ArchiveSuffixes []string
}

// Input is the usage of a compilation unit.
type Input struct {
	TargetLabel string
	Explicit    []collect.CanonicalPath
	Implicit    []collect.CanonicalPath
	Resources   []string
	DirectDeps  []string
}

// Builder builds a dependency report.
type Builder struct {
	opener EntryOpener
	opts   Options
}

// NewBuilder creates a builder reading class entries with opener.
// opener is used only when class usage tracking is enabled.
func NewBuilder(opener EntryOpener, opts Options) *Builder {
	if len(opts.ArchiveSuffixes) == 0 {
		opts.ArchiveSuffixes = DefaultArchiveSuffixes
	}
	return &Builder{
		opener: opener,
		opts:   opts,
	}
}

// Group groups paths by archive, and returns entries per archive.
// Paths in archives without one of the suffixes are dropped.
func Group(paths []collect.CanonicalPath, suffixes []string) map[string][]string {
	m := make(map[string][]string)
	for _, p := range paths {
		if !hasSuffix(p.Archive, suffixes) {
			continue
		}
		m[p.Archive] = append(m[p.Archive], p.Entry)
	}
	return m
}

// Archives returns sorted archives of paths with one of the suffixes.
func Archives(paths []collect.CanonicalPath, suffixes []string) []string {
	return sortedKeys(Group(paths, suffixes))
}

func hasSuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build builds the report of in.
// Each archive is reported once: Explicit if any class of it is used
// explicitly, Implicit if used only implicitly, Unused if declared in
// DirectDeps and not used. It fails if a used class can't be read for
// its digest.
func (b *Builder) Build(ctx context.Context, in Input) (*Dependencies, error) {
	explicit := Group(in.Explicit, b.opts.ArchiveSuffixes)
	implicit := Group(in.Implicit, b.opts.ArchiveSuffixes)

	d := &Dependencies{
		Success:   true,
		RuleLabel: in.TargetLabel,
	}
	seen := make(map[string]bool)
	directDeps := append([]string(nil), in.DirectDeps...)
	sort.Strings(directDeps)
	for _, path := range directDeps {
		if seen[path] || explicit[path] != nil || implicit[path] != nil {
			continue
		}
		seen[path] = true
		d.Dependencies = append(d.Dependencies, Dependency{
			Kind: Unused,
			Path: path,
		})
	}
	for _, path := range sortedKeys(explicit) {
		dep := Dependency{
			Kind: Explicit,
			Path: path,
		}
		if b.opts.TrackClassUsage {
			var err error
			dep.UsedClasses, err = b.usedClasses(ctx, path, explicit[path])
			if err != nil {
				return nil, err
			}
		}
		d.Dependencies = append(d.Dependencies, dep)
	}
	for _, path := range sortedKeys(implicit) {
		if explicit[path] != nil {
			continue
		}
		d.Dependencies = append(d.Dependencies, Dependency{
			Kind: Implicit,
			Path: path,
		})
	}
	if b.opts.TrackResourceUsage && len(in.Resources) > 0 {
		d.UsedResources = append([]string(nil), in.Resources...)
		sort.Strings(d.UsedResources)
	}
	clog.Infof(ctx, "report %s: explicit=%d implicit=%d deps=%d resources=%d", in.TargetLabel, len(explicit), len(implicit), len(d.Dependencies), len(d.UsedResources))
	return d, nil
}

func (b *Builder) usedClasses(ctx context.Context, archive string, entries []string) ([]UsedClass, error) {
	entries = append([]string(nil), entries...)
	sort.Strings(entries)
	classes := make([]UsedClass, 0, len(entries))
	for i, entry := range entries {
		if i > 0 && entries[i-1] == entry {
			continue
		}
		data, err := digest.FromSource(ctx, entrySource{
			opener:  b.opener,
			archive: archive,
			entry:   entry,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to hash used class: %w", err)
		}
		if clog.FromContext(ctx).V(1) {
			clog.Infof(ctx, "hashed %s", data)
		}
		classes = append(classes, UsedClass{
			FullyQualifiedName: ClassName(entry),
			InternalPath:       entry,
			Hash:               data.Sum(),
		})
	}
	return classes, nil
}

// ClassName returns the fully qualified class name of a class entry,
// e.g. "com.example.Foo$Bar" for "com/example/Foo$Bar.class".
func ClassName(entry string) string {
	return strings.ReplaceAll(strings.TrimSuffix(entry, ".class"), "/", ".")
}

type entrySource struct {
	opener  EntryOpener
	archive string
	entry   string
}

func (s entrySource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.opener.OpenEntry(ctx, s.archive, s.entry)
}

func (s entrySource) String() string {
	return collect.CanonicalPath{Archive: s.archive, Entry: s.entry}.String()
}
