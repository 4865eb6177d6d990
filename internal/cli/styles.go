// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - terminal styling for fsidx output.
package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styles holds the lipgloss styles used by the command handlers. When
// stdout is not a terminal (or the terminal cannot do color) every style
// renders as plain text, so piped output stays clean.
type Styles struct {
	Ordinal lipgloss.Style
	Size    lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
	Command lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds the style set for the current terminal.
func NewStyles() *Styles {
	if !colorEnabled() {
		plain := lipgloss.NewStyle()
		return &Styles{
			Ordinal: plain, Size: plain, Error: plain,
			Header: plain, Command: plain, Muted: plain,
		}
	}
	return &Styles{
		Ordinal: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Size:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
