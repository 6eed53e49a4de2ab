// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package merge is merge subcommand to merge dependency reports of a
// build target.
package merge

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/maruel/subcommands"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/jdeps/o11y/clog"
	"go.chromium.org/infra/build/jdeps/report"
	"go.chromium.org/infra/build/jdeps/strictdeps"
	"go.chromium.org/infra/build/jdeps/toolsupport/jarutil"
	"go.chromium.org/infra/build/jdeps/ui"
)

const usage = `merge dependency reports

 $ jdeps merge -target_label <label> -output <file> <reports>...

merges reports of the same target, e.g. reports of Java and Kotlin
compilation of one rule. For each archive, the strongest kind wins
(EXPLICIT > IMPLICIT > UNUSED > INCOMPLETE).

With -unused_deps=warn or error, declared direct dependencies unused by
all reports are reported with a buildozer command to remove them.
`

// Cmd returns the Command for the `merge` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "merge -target_label <label> -output <file> <reports>...",
		ShortDesc: "merge dependency reports",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	targetLabel string
	output      string
	unusedDeps  strictdeps.Mode
}

func (c *run) init() {
	c.Flags.StringVar(&c.targetLabel, "target_label", "", "label of the build target")
	c.Flags.StringVar(&c.output, "output", "", "path of the merged report")
	c.Flags.Var(&c.unusedDeps, "unused_deps", "unused deps mode: off, warn or error")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	if c.targetLabel == "" || c.output == "" {
		return fmt.Errorf("-target_label and -output must be set: %w", flag.ErrHelp)
	}
	if len(args) == 0 {
		return fmt.Errorf("no reports to merge: %w", flag.ErrHelp)
	}
	inputs, err := readReports(ctx, args)
	if err != nil {
		return err
	}
	merged := report.Merge(c.targetLabel, inputs...)
	if c.unusedDeps != strictdeps.Off {
		v := strictdeps.CheckUnused(ctx, merged.Paths(report.Unused), c.targetLabel, jarutil.ReadOwner)
		err = strictdeps.Enforce(c.unusedDeps, v, ui.Default)
		if err != nil {
			return err
		}
	}
	err = report.WriteFile(c.output, merged)
	if err != nil {
		return err
	}
	clog.Infof(ctx, "merged %d reports into %s", len(inputs), c.output)
	return nil
}

func readReports(ctx context.Context, fnames []string) ([]*report.Dependencies, error) {
	reports := make([]*report.Dependencies, len(fnames))
	eg, _ := errgroup.WithContext(ctx)
	for i, fname := range fnames {
		eg.Go(func() error {
			d, err := report.ReadFile(fname)
			if err != nil {
				return err
			}
			reports[i] = d
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	return reports, nil
}
