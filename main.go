// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// jdeps collects class-level dependency usage of a compilation unit
// for compilation avoidance and strict deps enforcement.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/jdeps/o11y/clog"
	"go.chromium.org/infra/build/jdeps/subcmd/collect"
	"go.chromium.org/infra/build/jdeps/subcmd/dump"
	"go.chromium.org/infra/build/jdeps/subcmd/help"
	"go.chromium.org/infra/build/jdeps/subcmd/merge"
	"go.chromium.org/infra/build/jdeps/subcmd/version"
)

const jdepsVersion = "jdeps v1.0.0"

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "jdeps",
		Title: "class-level dependency collector",
		Context: func(context.Context) context.Context {
			return clog.NewContext(ctx, clog.New())
		},
		Commands: []*subcommands.Command{
			collect.Cmd(),
			merge.Cmd(),
			dump.Cmd(),

			help.Cmd(),
			version.Cmd(jdepsVersion),
		},
	}
}

func main() {
	os.Exit(jdepsMain())
}

func jdepsMain() int {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Flush the log on exit to not lose any messages.
	defer log.Flush()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		if log.V(1) {
			for _, m := range buildinfo.Deps {
				log.Infof("deps module: %s", moduleInfo(m))
			}
		}
	}

	return subcommands.Run(getApplication(ctx), flag.Args())
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
