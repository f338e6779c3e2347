package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/ui"
)

func (m *Model) handleSessionLoadedMsg(msg SessionLoadedMsg) tea.Cmd {
	log := logger.WithComponent("app")
	if msg.Err != nil {
		log.Error("failed to load session", "error", msg.Err)
	}
	signedIn := m.state.applySession(msg.Session)
	m.syncComponents()
	if signedIn {
		logger.WithUser(msg.Session.User.ID).Info("restored session")
		// The initial fetch started before the session was known and may
		// fail or come back without the user's rows. Fetch again unless a
		// result already landed; the older one is dropped by sequence.
		if m.state.MessagesLoaded() {
			return nil
		}
		m.board.SetLoading(true)
		return m.fetchMessages(FetchSignedIn)
	}
	return nil
}

func (m *Model) handleAuthEventMsg(msg AuthEventMsg) tea.Cmd {
	ev := msg.Event
	logger.WithComponent("app").Debug("auth event", "type", string(ev.Type))

	var cmds []tea.Cmd
	switch ev.Type {
	case backend.EventSignedOut:
		m.state.applySession(nil)
		m.authForm.ClearPassword()
		m.authForm.SetStatus("")
	default:
		if ev.Session != nil {
			if m.state.applySession(ev.Session) {
				m.board.SetLoading(true)
				cmds = append(cmds, m.fetchMessages(FetchSignedIn))
			}
		}
	}
	m.syncComponents()

	// Keep listening for the lifetime of the subscription
	cmds = append(cmds, m.listenForAuthEvents())
	return tea.Batch(cmds...)
}

func (m *Model) handleMessagesFetchedMsg(msg MessagesFetchedMsg) tea.Cmd {
	log := logger.WithComponent("app")
	m.state.endFetch()
	if msg.Reason == FetchManual {
		m.state.endAction(ActionRefresh)
	}

	if msg.Err != nil {
		// Fetch failures are logged only; the previous list stays
		log.Error("failed to fetch messages", "reason", msg.Reason.String(), "error", msg.Err)
		m.board.SetLoading(false)
		return nil
	}

	prev := m.state.Messages()
	if !m.state.applyMessages(msg.Seq, msg.Messages) {
		return nil
	}
	log.Debug("messages fetched", "reason", msg.Reason.String(), "count", len(msg.Messages))
	m.board.SetLoading(false)
	m.board.SetMessages(m.state.Messages())

	if msg.Reason == FetchManual && m.config.GetNotificationsEnabled() {
		if n := countNew(prev, m.state.Messages()); n > 0 {
			return notifyNewMessages(n)
		}
	}
	return nil
}

// countNew counts messages in next whose ID is not in prev
func countNew(prev, next []backend.Message) int {
	seen := make(map[backend.MessageID]struct{}, len(prev))
	for _, msg := range prev {
		seen[msg.ID] = struct{}{}
	}
	n := 0
	for _, msg := range next {
		if _, ok := seen[msg.ID]; !ok {
			n++
		}
	}
	return n
}

func (m *Model) handleLoginResultMsg(msg LoginResultMsg) tea.Cmd {
	m.state.endAction(ActionLogin)
	m.authForm.SetStatus("")

	if msg.Err != nil {
		logger.WithComponent("app").Warn("login failed", "email", msg.Email, "error", msg.Err)
		m.state.setFormError(backend.UserMessage(msg.Err))
		m.syncComponents()
		return nil
	}

	m.state.clearFormError()
	m.authForm.ClearPassword()
	cmds := []tea.Cmd{m.rememberEmail(msg.Email)}
	if msg.Session != nil && m.state.applySession(msg.Session) {
		m.board.SetLoading(true)
		cmds = append(cmds, m.fetchMessages(FetchSignedIn))
	}
	m.syncComponents()
	return tea.Batch(cmds...)
}

func (m *Model) handleSignupResultMsg(msg SignupResultMsg) tea.Cmd {
	m.state.endAction(ActionSignup)
	m.authForm.SetStatus("")

	if msg.Err != nil {
		logger.WithComponent("app").Warn("signup failed", "email", msg.Email, "error", msg.Err)
		m.state.setFormError(SignupErrorText(msg.Err))
		m.syncComponents()
		return nil
	}

	m.state.clearFormError()
	m.authForm.ClearPassword()
	cmds := []tea.Cmd{m.rememberEmail(msg.Email)}
	if msg.Session == nil {
		m.authForm.SetStatus(confirmEmailMessage)
		cmds = append(cmds, m.flash(ui.FlashInfo, "Account created"))
	} else if m.state.applySession(msg.Session) {
		m.board.SetLoading(true)
		cmds = append(cmds, m.fetchMessages(FetchSignedIn))
	}
	m.syncComponents()
	return tea.Batch(cmds...)
}

// SignupErrorText is the text shown for a failed sign-up. The rate-limit
// message gets friendlier wording; anything else is shown as-is.
func SignupErrorText(err error) string {
	text := backend.UserMessage(err)
	if text == rateLimitMessage {
		return friendlyRateLimit
	}
	return text
}

func (m *Model) handleSignOutResultMsg(msg SignOutResultMsg) tea.Cmd {
	m.state.endAction(ActionSignOut)
	if msg.Err != nil {
		logger.WithComponent("app").Error("sign out failed", "error", msg.Err)
		return m.flash(ui.FlashError, "Sign out failed: " + backend.UserMessage(msg.Err))
	}
	// The session is cleared by the SIGNED_OUT event, not here
	return nil
}

func (m *Model) handleMessageAddedMsg(msg MessageAddedMsg) tea.Cmd {
	m.state.endAction(ActionAddMessage)
	if msg.Err != nil {
		logger.WithComponent("app").Error("failed to add message", "error", msg.Err)
		return nil
	}
	return m.fetchMessages(FetchAfterInsert)
}

func (m *Model) handleCopyResultMsg(msg CopyResultMsg) tea.Cmd {
	if msg.Err != nil {
		return m.flash(ui.FlashError, "Could not copy to clipboard")
	}
	return m.flash(ui.FlashSuccess, "Copied newest message")
}

// rememberEmail saves the email used for the last successful sign-in
func (m *Model) rememberEmail(email string) tea.Cmd {
	if email == "" || !m.config.SetLastEmail(email) {
		return nil
	}
	return m.saveConfigOrFlash()
}
