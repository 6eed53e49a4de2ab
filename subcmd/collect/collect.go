// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package collect is collect subcommand to replay an analyzer trace and
// write the dependency report of the compilation unit.
package collect

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/jdeps/config"
	"go.chromium.org/infra/build/jdeps/pass"
	"go.chromium.org/infra/build/jdeps/symbol"
	"go.chromium.org/infra/build/jdeps/ui"
)

const usage = `collect dependencies of a compilation unit

 $ jdeps collect -trace <trace.json> -params <params.yaml> [flags]

replays analyzer events recorded in <trace.json> ("-" for stdin),
checks strict deps and writes the dependency report to -output.
`

// Cmd returns the Command for the `collect` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "collect -trace <file> [flags]",
		ShortDesc: "collect dependencies of a compilation unit",
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

	trace string
	cfg   config.Config
}

func (c *run) init() {
	c.cfg = config.Default()
	c.Flags.StringVar(&c.trace, "trace", "", `analyzer trace file. "-" for stdin`)
	c.cfg.RegisterFlags(&c.Flags)
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
	if len(args) != 0 {
		return fmt.Errorf("position arguments not expected: %w", flag.ErrHelp)
	}
	if c.trace == "" {
		return fmt.Errorf("-trace is not set: %w", flag.ErrHelp)
	}
	err := c.cfg.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", err, flag.ErrHelp)
	}
	tr, err := readTrace(c.trace)
	if err != nil {
		return err
	}
	p := pass.New(c.cfg, pass.Options{UI: ui.Default})
	p.Replay(tr)
	_, err = p.Finish(ctx)
	return err
}

func readTrace(fname string) (*symbol.Trace, error) {
	var r io.Reader = os.Stdin
	if fname != "-" {
		f, err := os.Open(fname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	tr, err := symbol.DecodeTrace(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return tr, nil
}
