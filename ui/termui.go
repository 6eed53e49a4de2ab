// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"
	"io"
	"strings"
)

// TermUI is a terminal-based UI.
// Warnings and errors are prefixed with a colored severity.
type TermUI struct {
	out io.Writer
	err io.Writer
}

// NewTermUI creates a terminal UI writing informational messages to out
// and warnings and errors to err.
func NewTermUI(out, err io.Writer) *TermUI {
	return &TermUI{out: out, err: err}
}

// Infof implements the ui.UI interface.
func (t *TermUI) Infof(format string, args ...any) {
	printMsg(t.out, "", fmt.Sprintf(format, args...))
}

// Warningf implements the ui.UI interface.
func (t *TermUI) Warningf(format string, args ...any) {
	printMsg(t.err, SGR(Yellow, "WARNING:")+" ", fmt.Sprintf(format, args...))
}

// Errorf implements the ui.UI interface.
func (t *TermUI) Errorf(format string, args ...any) {
	printMsg(t.err, SGR(Red, "ERROR:")+" ", fmt.Sprintf(format, args...))
}

func printMsg(w io.Writer, prefix, msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, prefix+msg)
}
