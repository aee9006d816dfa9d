package tui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/toolstatus/internal/tui/theme"
)

// pendingFrames is the animation shown for invocations that have not
// completed. Static renders use its first frame.
var pendingFrames = spinner.MiniDot

// pendingSpinner animates the pending indicator. Its colour always comes
// from the current theme's Spinner style.
type pendingSpinner struct {
	model spinner.Model
}

func newPendingSpinner() pendingSpinner {
	return pendingSpinner{model: spinner.New(
		spinner.WithSpinner(pendingFrames),
		spinner.WithStyle(theme.Current().S().Spinner),
	)}
}

// start schedules the first frame advance.
func (p *pendingSpinner) start() tea.Cmd {
	return p.model.Tick
}

// advance steps to the next frame when msg is this spinner's tick and
// schedules the one after. Other messages are ignored.
func (p *pendingSpinner) advance(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.model, cmd = p.model.Update(msg)
	return cmd
}

func (p *pendingSpinner) frame() string {
	return p.model.View()
}
