package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/msgboard/msgboard/internal/keys"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKeyPress(msg)

	case ui.FlashTickMsg:
		return m, m.handleFlashTick()

	case SessionLoadedMsg:
		return m, m.handleSessionLoadedMsg(msg)
	case AuthEventMsg:
		return m, m.handleAuthEventMsg(msg)
	case MessagesFetchedMsg:
		return m, m.handleMessagesFetchedMsg(msg)
	case LoginResultMsg:
		return m, m.handleLoginResultMsg(msg)
	case SignupResultMsg:
		return m, m.handleSignupResultMsg(msg)
	case SignOutResultMsg:
		return m, m.handleSignOutResultMsg(msg)
	case MessageAddedMsg:
		return m, m.handleMessageAddedMsg(msg)
	case CopyResultMsg:
		return m, m.handleCopyResultMsg(msg)
	}

	// Everything else (cursor blink, mouse wheel) goes to the visible component
	return m, m.forward(msg)
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.state.Mode() {
	case ModeUnauthenticated:
		m.authForm, cmd = m.authForm.Update(msg)
	case ModeAuthenticated:
		m.board, cmd = m.board.Update(msg)
	}
	return cmd
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == keys.Quit {
		logger.WithComponent("app").Info("quit requested")
		return tea.Quit
	}

	switch m.state.Mode() {
	case ModeUnauthenticated:
		return m.handleAuthKey(msg)
	case ModeAuthenticated:
		return m.handleBoardKey(msg)
	}
	return nil
}

func (m *Model) handleAuthKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Tab, keys.ShiftTab, keys.Up, keys.Down:
		// Two fields, so forward and back are the same move
		m.authForm.FocusNext()
		return nil
	case keys.LogIn:
		return m.submitLogin()
	case keys.SignUp:
		return m.submitSignup()
	}
	return m.forward(msg)
}

// credentials returns the form's email and password, or sets the form error
// and returns ok=false if either is empty.
func (m *Model) credentials() (email, password string, ok bool) {
	email = strings.TrimSpace(m.authForm.Email())
	password = m.authForm.Password()
	if email == "" || password == "" {
		m.state.setFormError(requiredFieldsMessage)
		m.syncComponents()
		return "", "", false
	}
	return email, password, true
}

func (m *Model) submitLogin() tea.Cmd {
	email, password, ok := m.credentials()
	if !ok {
		return nil
	}
	if !m.state.beginAction(ActionLogin) {
		return nil
	}
	m.authForm.SetStatus("Signing in...")
	m.syncComponents()
	return m.login(email, password)
}

func (m *Model) submitSignup() tea.Cmd {
	email, password, ok := m.credentials()
	if !ok {
		return nil
	}
	if !m.state.beginAction(ActionSignup) {
		return nil
	}
	m.authForm.SetStatus("Creating account...")
	m.syncComponents()
	return m.signup(email, password)
}

func (m *Model) handleBoardKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Post:
		return m.submitMessage()
	case keys.Refresh:
		if !m.state.beginAction(ActionRefresh) {
			return nil
		}
		return m.fetchMessages(FetchManual)
	case keys.SignOut:
		if !m.state.beginAction(ActionSignOut) {
			return nil
		}
		return m.signOut()
	case keys.CopyNewest:
		return m.copyNewest()
	}
	return m.forward(msg)
}

// submitMessage posts the input's content. The input is cleared whether or
// not the insert later succeeds; blank content is never sent.
func (m *Model) submitMessage() tea.Cmd {
	if m.state.InFlight(ActionAddMessage) {
		logger.WithComponent("app").Debug("post already in flight")
		return nil
	}
	content := m.board.InputValue()
	m.board.ResetInput()
	if strings.TrimSpace(content) == "" {
		return nil
	}
	m.state.beginAction(ActionAddMessage)
	return m.addMessage(content)
}

func (m *Model) copyNewest() tea.Cmd {
	msgs := m.state.Messages()
	if len(msgs) == 0 {
		return m.flash(ui.FlashInfo, "Nothing to copy")
	}
	return m.copyText(msgs[len(msgs)-1].Content)
}
