package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/toolstatus/internal/toolcall"
	"github.com/mark3labs/toolstatus/internal/tui/theme"
)

// IndicatorCompleted is the glyph shown in front of a finished invocation.
const IndicatorCompleted = "●"

// RenderStatus renders one invocation as an indicator followed by its label.
// Pending invocations show frame, or the first spinner frame when frame is
// empty. Completed invocations show a success-coloured dot. The label text is
// the same in both states.
func RenderStatus(inv toolcall.Invocation, frame string) string {
	s := theme.Current().S()

	var indicator string
	switch inv.Status.(type) {
	case toolcall.Completed:
		indicator = s.StatusDone.Render(IndicatorCompleted)
	default:
		if frame == "" {
			frame = s.Spinner.Render(pendingFrames.Frames[0])
		}
		indicator = frame
	}

	return indicator + " " + s.StatusLabel.Render(inv.Label())
}

// StatusLine is a single animated status row. It holds only the spinner;
// the invocation is passed in on every render.
type StatusLine struct {
	spinner pendingSpinner
	width   int
}

// NewStatusLine creates a status line with the default spinner.
func NewStatusLine() *StatusLine {
	return &StatusLine{spinner: newPendingSpinner()}
}

// Init starts the spinner.
func (l *StatusLine) Init() tea.Cmd {
	return l.spinner.start()
}

// Update advances the spinner on tick messages.
func (l *StatusLine) Update(msg tea.Msg) tea.Cmd {
	return l.spinner.advance(msg)
}

// SetWidth limits rendered lines to width cells. Zero disables truncation.
func (l *StatusLine) SetWidth(width int) {
	l.width = width
}

// Render renders inv with the current spinner frame.
func (l *StatusLine) Render(inv toolcall.Invocation) string {
	return truncate(RenderStatus(inv, l.spinner.frame()), l.width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
