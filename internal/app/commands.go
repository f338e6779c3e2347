package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/msgboard/msgboard/internal/notification"
)

// Every service call runs in its own command and reports back as a message.
// Commands never touch the model; the handlers in msg_handlers.go do.

func (m *Model) loadSession() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		sess, err := svc.GetSession(ctx)
		return SessionLoadedMsg{Session: sess, Err: err}
	}
}

// fetchMessages starts a fetch with a fresh sequence number
func (m *Model) fetchMessages(reason FetchReason) tea.Cmd {
	svc := m.service
	seq := m.state.nextFetch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		msgs, err := svc.SelectMessages(ctx)
		return MessagesFetchedMsg{Seq: seq, Reason: reason, Messages: msgs, Err: err}
	}
}

func (m *Model) login(email, password string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		sess, err := svc.SignInWithPassword(ctx, email, password)
		return LoginResultMsg{Email: email, Session: sess, Err: err}
	}
}

func (m *Model) signup(email, password string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		sess, err := svc.SignUp(ctx, email, password)
		return SignupResultMsg{Email: email, Session: sess, Err: err}
	}
}

func (m *Model) signOut() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return SignOutResultMsg{Err: svc.SignOut(ctx)}
	}
}

func (m *Model) addMessage(content string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		return MessageAddedMsg{Err: svc.InsertMessage(ctx, content)}
	}
}

func (m *Model) copyText(text string) tea.Cmd {
	write := m.writeClipboard
	return func() tea.Msg {
		return CopyResultMsg{Err: write(text)}
	}
}

// notifyNewMessages sends a desktop notification. Failures are logged by
// the notification package and otherwise ignored.
func notifyNewMessages(count int) tea.Cmd {
	return func() tea.Msg {
		_ = notification.NewMessages(count)
		return nil
	}
}
