package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Common styles used across commands
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))           // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	faintStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // Blue
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

var stdoutIsTerminal = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// render applies style only when stdout is a terminal, so piped output
// stays free of escape sequences.
func render(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal {
		return s
	}
	return style.Render(s)
}
