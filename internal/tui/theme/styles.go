package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	HeaderInfo  lipgloss.Style

	// Tool status line
	Spinner     lipgloss.Style // pending indicator
	StatusDone  lipgloss.Style // completed dot
	StatusLabel lipgloss.Style

	Hint    lipgloss.Style
	Warning lipgloss.Style
}
