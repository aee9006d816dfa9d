package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/mark3labs/toolstatus/internal/toolcall"
	"github.com/mark3labs/toolstatus/internal/tui/theme"
)

// InvocationMsg carries a new or updated invocation into the watch view.
type InvocationMsg struct {
	Invocation toolcall.Invocation
}

// FeedClosedMsg is sent once the invocation channel is closed.
type FeedClosedMsg struct{}

type watchKeyMap struct {
	Quit key.Binding
}

var watchKeys = watchKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// WatchModel lists invocations in arrival order, keyed by ID. A later
// record with the same ID replaces the earlier one in place.
type WatchModel struct {
	title   string
	feed    <-chan toolcall.Invocation
	order   []string
	entries map[string]toolcall.Invocation
	anon    int

	line   *StatusLine
	closed bool
	width  int
	height int
}

// NewWatchModel creates a watch view that reads invocations from feed.
// A nil feed is allowed; records can still be delivered as InvocationMsg.
func NewWatchModel(title string, feed <-chan toolcall.Invocation) *WatchModel {
	return &WatchModel{
		title:   title,
		feed:    feed,
		entries: make(map[string]toolcall.Invocation),
		line:    NewStatusLine(),
	}
}

// Init starts the spinner and begins reading the feed.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.line.Init(), m.waitForInvocation())
}

// waitForInvocation blocks on the feed and converts the next record to a
// message. It is re-issued after every InvocationMsg.
func (m *WatchModel) waitForInvocation() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return func() tea.Msg {
		inv, ok := <-m.feed
		if !ok {
			return FeedClosedMsg{}
		}
		return InvocationMsg{Invocation: inv}
	}
}

// Update handles keys, resizes, spinner ticks and feed messages.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if key.Matches(msg, watchKeys.Quit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.line.SetWidth(msg.Width)
	case InvocationMsg:
		m.Upsert(msg.Invocation)
		return m, m.waitForInvocation()
	case FeedClosedMsg:
		m.closed = true
		logger.Debug("watch feed closed with %d invocations", len(m.order))
	default:
		return m, m.line.Update(msg)
	}
	return m, nil
}

// Upsert inserts inv or replaces the record with the same ID. Records
// without an ID are always appended.
func (m *WatchModel) Upsert(inv toolcall.Invocation) {
	id := inv.ID
	if id == "" {
		m.anon++
		id = fmt.Sprintf("\x00anon-%d", m.anon)
	}
	if _, ok := m.entries[id]; !ok {
		m.order = append(m.order, id)
	}
	m.entries[id] = inv
}

// Invocations returns the current records in display order.
func (m *WatchModel) Invocations() []toolcall.Invocation {
	out := make([]toolcall.Invocation, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id])
	}
	return out
}

// Counts returns the number of pending and completed invocations.
func (m *WatchModel) Counts() (pending, completed int) {
	for _, inv := range m.entries {
		if inv.IsCompleted() {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

// Render returns the watch view as text. Status is re-evaluated for every
// record on each call.
func (m *WatchModel) Render() string {
	s := theme.Current().S()
	pending, completed := m.Counts()

	var b strings.Builder
	b.WriteString(s.HeaderTitle.Render(m.title))
	b.WriteString(s.HeaderInfo.Render(fmt.Sprintf("  %d pending · %d done", pending, completed)))
	b.WriteString("\n\n")

	if len(m.order) == 0 {
		b.WriteString(s.Hint.Render("Waiting for tool calls..."))
		b.WriteString("\n")
	}
	for _, inv := range m.Invocations() {
		b.WriteString(m.line.Render(inv))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(s.Warning.Render("feed closed"))
		b.WriteString(s.Hint.Render(" · "))
	}
	b.WriteString(s.Hint.Render(watchKeys.Quit.Help().Key + " " + watchKeys.Quit.Help().Desc))
	return b.String()
}

// View draws the rendered list onto a screen buffer.
func (m *WatchModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.Render()
	if m.width <= 0 || m.height <= 0 {
		view.Content = lipgloss.NewLayer(content)
		return view
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}
