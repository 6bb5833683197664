package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles for captionfix TUI components
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Label style for form field labels
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// Success style for positive feedback
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error style for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Muted style for secondary text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Subtle style for hints and descriptions
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)
)

var logoLines = []string{
	`                     _    _                 __  _       `,
	`  ___   __ _  _ __  | |_ (_)  ___   _ __   / _|(_)__  __`,
	" / __| / _` || '_ \\ | __|| | / _ \\ | '_ \\ | |_ | |\\ \\/ /",
	`| (__ | (_| || |_) || |_ | || (_) || | | ||  _|| | >  < `,
	` \___| \__,_|| .__/  \__||_| \___/ |_| |_||_|  |_|/_/\_\`,
	`             |_|                                        `,
}

// Logo returns the captionfix ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Join(logoLines, "\n"))
}
