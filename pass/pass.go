// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package pass runs dependency collection for one compilation unit.
//
// A Pass is created when the analyzer starts a compilation unit. The
// analyzer calls OnResolvedCall and OnDeclaration synchronously while it
// traverses the unit, then calls Finish once to check strict deps and
// write the report.
package pass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go.chromium.org/infra/build/jdeps/collect"
	"go.chromium.org/infra/build/jdeps/config"
	"go.chromium.org/infra/build/jdeps/o11y/clog"
	"go.chromium.org/infra/build/jdeps/report"
	"go.chromium.org/infra/build/jdeps/strictdeps"
	"go.chromium.org/infra/build/jdeps/symbol"
	"go.chromium.org/infra/build/jdeps/toolsupport/jarutil"
	"go.chromium.org/infra/build/jdeps/ui"
)

// ErrFinished is returned when Finish is called twice.
var ErrFinished = errors.New("pass already finished")

// Options are collaborators of a pass.
type Options struct {
	// UI reports strict deps violations. Default to ui.Default.
	UI ui.UI
	// Opener reads class entries for digests.
	// Default to a jarutil.Cache closed at the end of Finish.
	Opener report.EntryOpener
	// Owner resolves owner labels of archives.
	// Default to jarutil.ReadOwner.
	Owner strictdeps.OwnerFunc
}

// Pass collects dependencies of one compilation unit.
// It is not safe for concurrent use.
type Pass struct {
	cfg       config.Config
	opts      Options
	usage     *collect.Usage
	collector *collect.Collector
	started   time.Time
	nevents   int
}

// New creates a pass for cfg.
func New(cfg config.Config, opts Options) *Pass {
	if opts.UI == nil {
		opts.UI = ui.Default
	}
	if opts.Owner == nil {
		opts.Owner = jarutil.ReadOwner
	}
	if len(cfg.ArchiveSuffixes) == 0 {
		cfg.ArchiveSuffixes = report.DefaultArchiveSuffixes
	}
	usage := collect.NewUsage()
	return &Pass{
		cfg:   cfg,
		opts:  opts,
		usage: usage,
		collector: collect.New(usage, collect.Options{
			TrackResources: cfg.TrackResourceUsage,
		}),
		started: time.Now(),
	}
}

// OnResolvedCall records a resolved call or reference to sym.
// It is a no-op after Finish.
func (p *Pass) OnResolvedCall(sym symbol.Symbol) {
	if p.collector == nil {
		return
	}
	p.nevents++
	p.collector.OnResolvedCall(sym)
}

// OnDeclaration records the declaration of sym.
// It is a no-op after Finish.
func (p *Pass) OnDeclaration(sym symbol.Symbol) {
	if p.collector == nil {
		return
	}
	p.nevents++
	p.collector.OnDeclaration(sym)
}

// Replay dispatches recorded analyzer events to the pass.
func (p *Pass) Replay(tr *symbol.Trace) {
	for _, ev := range tr.Events {
		switch ev.Kind {
		case symbol.ResolvedCall:
			p.OnResolvedCall(ev.Symbol)
		case symbol.Declaration:
			p.OnDeclaration(ev.Symbol)
		}
	}
}

// Finish checks strict deps and writes the report.
//
// The usage sets are drained and discarded; a second call returns
// ErrFinished. In strict deps error mode, a violation fails Finish
// before the report is written.
func (p *Pass) Finish(ctx context.Context) (*report.Dependencies, error) {
	if p.collector == nil {
		return nil, ErrFinished
	}
	usage := p.usage
	p.usage = nil
	p.collector = nil

	ctx = clog.NewSpan(ctx, uuid.New().String(), "", map[string]string{
		"target": p.cfg.TargetLabel,
	})
	clog.Infof(ctx, "finish: events=%d in %s", p.nevents, ui.FormatDuration(time.Since(p.started)))

	explicit := usage.Explicit()
	if p.cfg.StrictDeps != strictdeps.Off {
		archives := report.Archives(explicit, p.cfg.ArchiveSuffixes)
		v := strictdeps.Check(ctx, archives, p.cfg.DirectDeps, p.cfg.TargetLabel, p.opts.Owner)
		err := strictdeps.Enforce(p.cfg.StrictDeps, v, p.opts.UI)
		if err != nil {
			clog.Errorf(ctx, "strict deps: %v", err)
			return nil, err
		}
	}

	opener := p.opts.Opener
	if opener == nil {
		cache := jarutil.NewCache()
		defer func() {
			err := cache.Close()
			if err != nil {
				clog.Warningf(ctx, "failed to close archives: %v", err)
			}
		}()
		opener = cache
	}
	d, err := report.NewBuilder(opener, p.cfg.ReportOptions()).Build(ctx, report.Input{
		TargetLabel: p.cfg.TargetLabel,
		Explicit:    explicit,
		Implicit:    usage.Implicit(),
		Resources:   usage.Resources(),
		DirectDeps:  p.cfg.DirectDeps,
	})
	if err != nil {
		clog.Errorf(ctx, "failed to build report: %v", err)
		return nil, fmt.Errorf("%s: %w", p.cfg.TargetLabel, err)
	}
	err = report.WriteFile(p.cfg.Output, d)
	if err != nil {
		clog.Errorf(ctx, "failed to write report: %v", err)
		return nil, err
	}
	clog.Infof(ctx, "wrote %s", p.cfg.Output)
	return d, nil
}
