package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/clipboard"
	"github.com/msgboard/msgboard/internal/config"
	"github.com/msgboard/msgboard/internal/logger"
	"github.com/msgboard/msgboard/internal/ui"
)

// RequestTimeout bounds every service call the app issues.
const RequestTimeout = 15 * time.Second

const (
	requiredFieldsMessage = "Email and password are required"
	rateLimitMessage      = "Email rate limit exceeded"
	friendlyRateLimit     = "You are trying to sign up too quickly. Please wait a moment and try again."
	confirmEmailMessage   = "Check your email to confirm your account, then log in."
)

// FetchReason says why a message fetch was started.
type FetchReason int

const (
	FetchInitial     FetchReason = iota // Startup
	FetchSignedIn                       // Session appeared
	FetchAfterInsert                    // Follow-up to a successful post
	FetchManual                         // ctrl+r
)

func (r FetchReason) String() string {
	switch r {
	case FetchInitial:
		return "initial"
	case FetchSignedIn:
		return "signed-in"
	case FetchAfterInsert:
		return "after-insert"
	case FetchManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	service backend.Service
	version string

	header   *ui.Header
	footer   *ui.Footer
	authForm *ui.AuthForm
	board    *ui.Board

	width  int
	height int

	state *ViewState
	sub   *backend.Subscription

	writeClipboard func(string) error
}

// SessionLoadedMsg carries the result of the startup session lookup
type SessionLoadedMsg struct {
	Session *backend.Session
	Err     error
}

// AuthEventMsg is sent for every session change the service publishes
type AuthEventMsg struct {
	Event backend.AuthEvent
}

// MessagesFetchedMsg carries the result of a message fetch
type MessagesFetchedMsg struct {
	Seq      uint64
	Reason   FetchReason
	Messages []backend.Message
	Err      error
}

// LoginResultMsg is sent when a sign-in attempt completes
type LoginResultMsg struct {
	Email   string
	Session *backend.Session
	Err     error
}

// SignupResultMsg is sent when a sign-up attempt completes. A nil Session
// with no error means the account awaits email confirmation.
type SignupResultMsg struct {
	Email   string
	Session *backend.Session
	Err     error
}

// SignOutResultMsg is sent when a sign-out request completes
type SignOutResultMsg struct {
	Err error
}

// MessageAddedMsg is sent when an insert completes
type MessageAddedMsg struct {
	Err error
}

// CopyResultMsg is sent after copying a message to the clipboard
type CopyResultMsg struct {
	Err error
}

// New creates a new app model backed by svc
func New(cfg *config.Config, svc backend.Service, version string) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:   cfg,
		service:  svc,
		version:  version,
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		authForm: ui.NewAuthForm(),
		board:    ui.NewBoard(),
		state:    NewViewState(),

		writeClipboard: clipboard.WriteText,
	}

	if email := cfg.GetLastEmail(); email != "" {
		m.authForm.SetEmail(email)
		m.authForm.FocusField(ui.FieldPassword)
	}
	m.board.SetLoading(true)
	m.syncComponents()

	return m
}

// State returns the current view state
func (m *Model) State() *ViewState {
	return m.state
}

// Init looks up the current session, subscribes to session changes for the
// lifetime of the model and starts the first message fetch.
func (m *Model) Init() tea.Cmd {
	if m.sub == nil {
		m.sub = m.service.Subscribe()
	}
	logger.WithComponent("app").Info("starting", "version", m.version)
	return tea.Batch(
		m.loadSession(),
		m.listenForAuthEvents(),
		m.fetchMessages(FetchInitial),
	)
}

// Close releases the session-change subscription. Safe to call twice.
func (m *Model) Close() {
	if m.sub != nil {
		m.sub.Close()
		logger.WithComponent("app").Debug("released auth subscription")
	}
}

// syncComponents pushes the view state into the ui components
func (m *Model) syncComponents() {
	email := m.state.Email()
	m.header.SetEmail(email)
	m.board.SetEmail(email)
	m.authForm.SetError(m.state.FormError())

	switch m.state.Mode() {
	case ModeLoading:
		m.footer.SetBindings(ui.LoadingBindings)
	case ModeUnauthenticated:
		m.footer.SetBindings(ui.AuthBindings)
	case ModeAuthenticated:
		m.footer.SetBindings(ui.BoardBindings)
	}
}

// saveConfigOrFlash saves the preferences and returns a flash command on failure
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Error("failed to save config", "error", err)
		return m.flash(ui.FlashError, "Failed to save preferences")
	}
	return nil
}
