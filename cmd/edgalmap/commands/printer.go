// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// printer writes command output, styled when w is a terminal. The
// renderer detects the color profile of w, so output to a pipe or file
// carries no escape sequences.
type printer struct {
	w io.Writer

	name  lipgloss.Style
	label lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	renderer := lipgloss.NewRenderer(w)
	return &printer{
		w:     w,
		name:  renderer.NewStyle().Bold(true),
		label: renderer.NewStyle().Faint(true),
	}
}

func (p *printer) linef(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) field(label string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", p.label.Render(label+":"), value)
}
