package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/config"
	"github.com/msgboard/msgboard/internal/keys"
)

const (
	testWidth  = 120
	testHeight = 30

	// settleQuiet is how long the harness waits for another message before
	// deciding the program is idle.
	settleQuiet = 100 * time.Millisecond
)

// testConfig creates a config that saves to a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.SetFilePath(filepath.Join(t.TempDir(), "config.json"))
	return cfg
}

// testSession returns a signed-in session for email.
func testSession(email string) *backend.Session {
	return &backend.Session{
		AccessToken:  "access-" + email,
		RefreshToken: "refresh-" + email,
		TokenType:    "bearer",
		User:         backend.User{ID: "user-" + email, Email: email},
	}
}

// testModel creates a sized Model over svc. Init is not run.
func testModel(t *testing.T, cfg *config.Config, svc backend.Service) *Model {
	t.Helper()
	m := New(cfg, svc, "0.0.0-test")
	m.writeClipboard = func(string) error { return nil }
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	t.Cleanup(m.Close)
	return m
}

// harness runs a Model the way the Bubble Tea runtime does: commands run in
// goroutines and their messages are fed back through Update on the test
// goroutine. Listener commands may block; they deliver whenever an event
// arrives.
type harness struct {
	t    *testing.T
	m    *Model
	msgs chan tea.Msg
	quit bool
}

func newHarness(t *testing.T, m *Model) *harness {
	t.Helper()
	return &harness{t: t, m: m, msgs: make(chan tea.Msg, 64)}
}

// start runs Init and waits for the program to go idle.
func (h *harness) start() *harness {
	h.dispatch(h.m.Init())
	h.settle()
	return h
}

func (h *harness) dispatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	// nil results are delivered too so the test goroutine observes the
	// command's side effects
	go func() { h.msgs <- cmd() }()
}

func (h *harness) handle(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.dispatch(cmd)
		}
		return
	case tea.QuitMsg:
		h.quit = true
		return
	}
	_, cmd := h.m.Update(msg)
	h.dispatch(cmd)
}

// settle processes messages until none arrive for settleQuiet.
func (h *harness) settle() {
	for {
		select {
		case msg := <-h.msgs:
			h.handle(msg)
		case <-time.After(settleQuiet):
			return
		}
	}
}

// send delivers msg and waits for the resulting commands to finish.
func (h *harness) send(msg tea.Msg) {
	h.handle(msg)
	h.settle()
}

// press sends a key.
func (h *harness) press(key string) {
	h.send(keyPress(key))
}

// typeText sends each rune as a key press, then settles once.
func (h *harness) typeText(text string) {
	for _, ch := range text {
		h.handle(keyPress(string(ch)))
	}
	h.settle()
}

// view returns the rendered screen without ANSI codes.
func (h *harness) view() string {
	return ansi.Strip(h.m.RenderToString())
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Quit:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.SignUp:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.SignOut:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.Refresh:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CopyNewest:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case " ":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	default:
		// Regular character - set both Code and Text
		r := []rune(key)
		if len(r) == 1 {
			return tea.KeyPressMsg{Code: r[0], Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// signedInHarness starts a model whose service already has a session and
// the given messages.
func signedInHarness(t *testing.T, contents ...string) (*harness, *backend.MockService) {
	t.Helper()
	svc := backend.NewMockService()
	svc.AddUser("ada@example.com", "hunter2")
	svc.SetSession(testSession("ada@example.com"))
	svc.SeedMessages(contents...)
	h := newHarness(t, testModel(t, testConfig(t), svc)).start()
	if h.m.State().Mode() != ModeAuthenticated {
		t.Fatalf("Mode() = %v, want Authenticated", h.m.State().Mode())
	}
	return h, svc
}

// signedOutHarness starts a model with a registered user and no session.
func signedOutHarness(t *testing.T) (*harness, *backend.MockService) {
	t.Helper()
	svc := backend.NewMockService()
	svc.AddUser("ada@example.com", "hunter2")
	h := newHarness(t, testModel(t, testConfig(t), svc)).start()
	if h.m.State().Mode() != ModeUnauthenticated {
		t.Fatalf("Mode() = %v, want Unauthenticated", h.m.State().Mode())
	}
	return h, svc
}

// fillCredentials types into both auth fields.
func fillCredentials(h *harness, email, password string) {
	h.typeText(email)
	h.press(keys.Tab)
	h.typeText(password)
}

func contentsOf(msgs []backend.Message) string {
	parts := make([]string, len(msgs))
	for i, msg := range msgs {
		parts[i] = msg.Content
	}
	return strings.Join(parts, ",")
}
