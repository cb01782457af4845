/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	errorColor  = lipgloss.Color("#CC3333")
	mutedColor  = lipgloss.Color("#888888")
	headerColor = lipgloss.Color("#4682B4")
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
)

// isTerminal reports whether stdout is an interactive terminal, used to
// decide between a lipgloss-styled diagnostic and a plain one.
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// renderError formats a fatal diagnostic line, styled when attached to a
// terminal and plain otherwise.
func renderError(msg string) string {
	if !isTerminal() {
		return "mjvm: " + msg
	}
	return errorStyle.Render("mjvm: ") + msg
}
