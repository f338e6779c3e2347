package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/msgboard/msgboard/internal/ui"
)

// flash shows a transient footer message. The returned tick keeps firing
// until the message expires.
func (m *Model) flash(kind ui.FlashType, text string) tea.Cmd {
	m.footer.SetFlash(text, kind)
	return ui.FlashTick()
}

func (m *Model) handleFlashTick() tea.Cmd {
	if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
		return nil
	}
	return ui.FlashTick()
}
