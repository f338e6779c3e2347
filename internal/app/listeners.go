package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/msgboard/msgboard/internal/backend"
)

// listenForAuthEvents waits for the next session change on the model's
// subscription. The handler re-arms it after every event.
func (m *Model) listenForAuthEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	return listenOn(m.sub.Events())
}

func listenOn(ch <-chan backend.AuthEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			// Subscription closed on shutdown
			return nil
		}
		return AuthEventMsg{Event: ev}
	}
}
