package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/msgboard/msgboard/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// It only reads state, so tests can call it as often as they like.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.body(),
		m.footer.View(),
	)
}

func (m *Model) body() string {
	switch m.state.Mode() {
	case ModeUnauthenticated:
		return m.authForm.View()
	case ModeAuthenticated:
		return m.board.View()
	default:
		layout := ui.GetViewContext().Layout()
		return lipgloss.Place(
			layout.Width, layout.ContentHeight,
			lipgloss.Center, lipgloss.Center,
			ui.StatusLoadingStyle.Render("Connecting..."),
		)
	}
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	layout := ui.GetViewContext().Update(m.width, m.height)

	m.header.SetWidth(layout.Width)
	m.footer.SetWidth(layout.Width)
	m.authForm.SetSize(layout.Width, layout.ContentHeight)
	m.board.SetSize(layout.Width, layout.ContentHeight)
}
