package theme

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // hex, e.g. "#cba6f7"
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
	currentMu   sync.RWMutex
)

// Current returns the active theme, Catppuccin Mocha unless replaced with
// SetCurrent.
func Current() *Theme {
	currentOnce.Do(func() {
		currentMu.Lock()
		if current == nil {
			current = NewCatppuccinMocha()
		}
		currentMu.Unlock()
	})
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	Current() // settle the default first
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// HexToColor converts a hex string from the palette to a color.
func HexToColor(hex string) color.Color {
	return lipgloss.Color(hex)
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		HeaderInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)),
		StatusDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		StatusLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
	}
}
