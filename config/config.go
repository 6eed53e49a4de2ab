// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config provides configuration of a dependency collection pass.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"go.chromium.org/infra/build/jdeps/report"
	"go.chromium.org/infra/build/jdeps/strictdeps"
)

// Config is a configuration of one compilation unit.
// It is fixed for the duration of the pass.
type Config struct {
	// TargetLabel is the label of the build target, e.g. "//app:app".
	TargetLabel string `yaml:"target_label"`
	// DirectDeps are archive paths of declared direct dependencies.
	DirectDeps []string `yaml:"direct_deps"`
	// Output is the path of the report.
	Output string `yaml:"output"`
	// TrackClassUsage records used classes with digests.
	TrackClassUsage bool `yaml:"track_class_usage"`
	// TrackResourceUsage records used resources.
	TrackResourceUsage bool `yaml:"track_resource_usage"`
	// StrictDeps is the enforcement mode of strict deps.
	StrictDeps strictdeps.Mode `yaml:"strict_deps"`
	// ArchiveSuffixes are recognized archive path suffixes.
	ArchiveSuffixes []string `yaml:"archive_suffixes"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ArchiveSuffixes: append([]string(nil), report.DefaultArchiveSuffixes...),
	}
}

// Load reads a YAML params file into c.
// Fields not in the file are kept.
func (c *Config) Load(fname string) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err = dec.Decode(c)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", fname, err)
	}
	return nil
}

// RegisterFlags registers flags that override fields of c.
// Flags are applied in command line order, so -params loads a params
// file over flags given before it, and flags after it override the file.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(paramsFlag{c}, "params", "YAML params file of the compilation unit")
	fs.StringVar(&c.TargetLabel, "target_label", c.TargetLabel, "label of the build target")
	fs.Var(newListFlag(&c.DirectDeps), "direct_dep", "archive path of a declared direct dependency. can be repeated")
	fs.StringVar(&c.Output, "output", c.Output, "path of the dependency report")
	fs.BoolVar(&c.TrackClassUsage, "track_class_usage", c.TrackClassUsage, "record used classes with digests")
	fs.BoolVar(&c.TrackResourceUsage, "track_resource_usage", c.TrackResourceUsage, "record used resources")
	fs.Var(&c.StrictDeps, "strict_deps", "strict deps mode: off, warn or error")
	fs.Var(newListFlag(&c.ArchiveSuffixes), "archive_suffix", "recognized archive path suffix. can be repeated. replaces the default")
}

// Validate checks c is usable for a pass.
func (c Config) Validate() error {
	var errs []error
	if c.TargetLabel == "" {
		errs = append(errs, errors.New("target label is not set"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is not set"))
	}
	for _, s := range c.ArchiveSuffixes {
		if s == "" {
			errs = append(errs, errors.New("empty archive suffix"))
		}
	}
	return errors.Join(errs...)
}

// ReportOptions returns options for the report builder.
func (c Config) ReportOptions() report.Options {
	return report.Options{
		TrackClassUsage:    c.TrackClassUsage,
		TrackResourceUsage: c.TrackResourceUsage,
		ArchiveSuffixes:    c.ArchiveSuffixes,
	}
}

type paramsFlag struct {
	c *Config
}

func (p paramsFlag) String() string { return "" }

func (p paramsFlag) Set(fname string) error {
	return p.c.Load(fname)
}

// listFlag is a repeated string flag.
// The first flag on the command line replaces the current values.
type listFlag struct {
	values *[]string
	set    bool
}

func newListFlag(values *[]string) *listFlag {
	return &listFlag{values: values}
}

func (l *listFlag) String() string {
	if l == nil || l.values == nil {
		return ""
	}
	return strings.Join(*l.values, ",")
}

func (l *listFlag) Set(s string) error {
	if !l.set {
		*l.values = nil
		l.set = true
	}
	*l.values = append(*l.values, s)
	return nil
}
