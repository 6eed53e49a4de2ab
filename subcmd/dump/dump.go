// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package dump is dump subcommand to print dependency reports.
package dump

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/jdeps/report"
)

const usage = `print dependency reports

 $ jdeps dump [-format text|json] <reports>...
`

// Cmd returns the Command for the `dump` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "dump [-format text|json] <reports>...",
		ShortDesc: "print dependency reports",
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

	format string
}

func (c *run) init() {
	c.Flags.StringVar(&c.format, "format", "text", `output format. "text" or "json"`)
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	err := c.run(a.GetOut(), args)
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

func (c *run) run(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no reports: %w", flag.ErrHelp)
	}
	for _, fname := range args {
		d, err := report.ReadFile(fname)
		if err != nil {
			return err
		}
		b, err := d.Format(c.format)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			fmt.Fprintf(w, "# %s\n", fname)
		}
		_, err = w.Write(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
