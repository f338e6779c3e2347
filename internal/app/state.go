package app

import (
	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/logger"
)

// Mode is the coarse screen the app is showing. It is derived from session
// presence and nothing else.
type Mode int

const (
	ModeLoading         Mode = iota // Waiting for the initial session lookup
	ModeUnauthenticated             // Login/signup form
	ModeAuthenticated               // Message board
)

// String returns a human-readable name for the mode
func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "Loading"
	case ModeUnauthenticated:
		return "Unauthenticated"
	case ModeAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// Action is a user-triggered service call that may be in flight.
type Action int

const (
	ActionLogin Action = iota
	ActionSignup
	ActionSignOut
	ActionAddMessage
	ActionRefresh
)

// String returns a human-readable name for the action
func (a Action) String() string {
	switch a {
	case ActionLogin:
		return "Login"
	case ActionSignup:
		return "Signup"
	case ActionSignOut:
		return "SignOut"
	case ActionAddMessage:
		return "AddMessage"
	case ActionRefresh:
		return "Refresh"
	default:
		return "Unknown"
	}
}

// ViewState is everything the view renders from. It is only changed through
// the transition methods below.
type ViewState struct {
	mode      Mode
	session   *backend.Session
	messages  []backend.Message
	loaded    bool
	formError string

	inFlight map[Action]bool

	// Fetches carry a sequence number; a response older than the last one
	// applied is dropped.
	fetchSeq       uint64
	appliedSeq     uint64
	pendingFetches int
}

// NewViewState returns the state the app starts in.
func NewViewState() *ViewState {
	return &ViewState{
		mode:     ModeLoading,
		messages: []backend.Message{},
		inFlight: make(map[Action]bool),
	}
}

func (s *ViewState) Mode() Mode                  { return s.mode }
func (s *ViewState) Session() *backend.Session   { return s.session }
func (s *ViewState) Messages() []backend.Message { return s.messages }
func (s *ViewState) FormError() string           { return s.formError }
func (s *ViewState) MessagesLoaded() bool        { return s.loaded }

// Email returns the signed-in user's email, or "".
func (s *ViewState) Email() string {
	if s.session == nil {
		return ""
	}
	return s.session.User.Email
}

// applySession replaces the session and derives the mode from it.
// It reports whether this moved the app into the signed-in mode.
func (s *ViewState) applySession(sess *backend.Session) (signedIn bool) {
	prev := s.mode
	s.session = sess
	if sess != nil {
		s.mode = ModeAuthenticated
	} else {
		s.mode = ModeUnauthenticated
	}
	if prev != s.mode {
		logger.WithComponent("app").Info("mode transition", "from", prev.String(), "to", s.mode.String())
	}
	return prev != ModeAuthenticated && s.mode == ModeAuthenticated
}

// nextFetch reserves a sequence number for a new fetch.
func (s *ViewState) nextFetch() uint64 {
	s.fetchSeq++
	s.pendingFetches++
	return s.fetchSeq
}

// endFetch marks one outstanding fetch as finished.
func (s *ViewState) endFetch() {
	if s.pendingFetches > 0 {
		s.pendingFetches--
	}
}

// Fetching reports whether any fetch is outstanding.
func (s *ViewState) Fetching() bool {
	return s.pendingFetches > 0
}

// applyMessages replaces the list with the result of fetch seq. Results that
// arrive after a newer one has been applied are ignored.
func (s *ViewState) applyMessages(seq uint64, msgs []backend.Message) bool {
	if seq <= s.appliedSeq {
		logger.WithComponent("app").Debug("dropping stale fetch", "seq", seq, "applied", s.appliedSeq)
		return false
	}
	if msgs == nil {
		msgs = []backend.Message{}
	}
	s.appliedSeq = seq
	s.messages = msgs
	s.loaded = true
	return true
}

func (s *ViewState) setFormError(text string) {
	s.formError = text
}

func (s *ViewState) clearFormError() {
	s.formError = ""
}

// beginAction marks a as in flight. It returns false if a is already
// pending, in which case the caller must not issue the request.
func (s *ViewState) beginAction(a Action) bool {
	if s.inFlight[a] {
		logger.WithComponent("app").Debug("ignoring duplicate action", "action", a.String())
		return false
	}
	s.inFlight[a] = true
	return true
}

func (s *ViewState) endAction(a Action) {
	delete(s.inFlight, a)
}

// InFlight reports whether a is pending.
func (s *ViewState) InFlight(a Action) bool {
	return s.inFlight[a]
}
