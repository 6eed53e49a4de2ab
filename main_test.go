// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"strings"
	"testing"
)

func TestApplication(t *testing.T) {
	app := getApplication(context.Background())
	seen := make(map[string]bool)
	for _, cmd := range app.GetCommands() {
		name := strings.Fields(cmd.UsageLine)[0]
		if seen[name] {
			t.Errorf("duplicate command %q", name)
		}
		seen[name] = true
	}
	for _, name := range []string{"collect", "merge", "dump", "help", "version"} {
		if !seen[name] {
			t.Errorf("command %q is not registered", name)
		}
	}
}
