package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green (synced)
	colorDanger  = lipgloss.Color("#EF4444") // Red (errors)
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Amber (pending changes)
)

// Shared styles used by the watch dashboard.
var (
	// Header bar: "agentdeck watch  <dir>"
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	headerPathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F3F4F6")).
			Padding(0, 1)

	// Muted text (hashes, timestamps, secondary info).
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Synced indicator.
	syncedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Pending-change indicator.
	pendingStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Error text.
	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)
)
