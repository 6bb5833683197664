package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the captionfix TUI
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#E11D48") // Rose - main accent
	ColorSecondary = lipgloss.Color("#0EA5E9") // Sky blue - secondary accent

	// Status colors
	ColorSuccess = lipgloss.Color("#22C55E") // Green
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber

	// Text colors
	ColorText   = lipgloss.Color("#F8FAFC") // Bright white
	ColorMuted  = lipgloss.Color("#94A3B8") // Slate gray
	ColorSubtle = lipgloss.Color("#64748B") // Darker gray
)
