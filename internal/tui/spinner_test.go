package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/toolstatus/internal/tui/theme"
	"github.com/stretchr/testify/require"
)

func TestPendingSpinner_ThemeStyle(t *testing.T) {
	p := newPendingSpinner()

	want := theme.Current().S().Spinner.Render(pendingFrames.Frames[0])
	require.Equal(t, want, p.frame())
	require.Equal(t, pendingFrames.Frames[0], ansi.Strip(p.frame()))
}

func TestPendingSpinner_IgnoresOtherMessages(t *testing.T) {
	p := newPendingSpinner()
	before := p.frame()

	require.Nil(t, p.advance(struct{}{}))
	require.Equal(t, before, p.frame())
}

func TestPendingSpinner_WrapsAround(t *testing.T) {
	p := newPendingSpinner()
	cmd := p.start()
	for range pendingFrames.Frames {
		cmd = p.advance(cmd())
		require.NotNil(t, cmd)
	}
	require.Equal(t, pendingFrames.Frames[0], ansi.Strip(p.frame()))
}
