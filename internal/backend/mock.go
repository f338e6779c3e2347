package backend

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/msgboard/msgboard/internal/errors"
)

// Operation names used by MockService for call counting and error injection.
const (
	OpGetSession     = "GetSession"
	OpSignIn         = "SignInWithPassword"
	OpSignUp         = "SignUp"
	OpSignOut        = "SignOut"
	OpSelectMessages = "SelectMessages"
	OpInsertMessage  = "InsertMessage"
)

// MockService is an in-memory Service. It backs the app tests and the
// --demo flag, so it lives outside _test files.
type MockService struct {
	mu sync.RWMutex

	users    map[string]string
	session  *Session
	messages []Message
	hub      *hub

	errs  map[string]error
	calls map[string]int

	// RequireConfirmation makes SignUp succeed without a session.
	RequireConfirmation bool
	// OnInsert is called after a successful insert.
	OnInsert func(content string)
}

// NewMockService creates an empty mock with no users and no session.
func NewMockService() *MockService {
	return &MockService{
		users:    make(map[string]string),
		messages: []Message{},
		hub:      newHub(),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

// NewDemoService returns a mock with a demo account and a few messages.
func NewDemoService() *MockService {
	m := NewMockService()
	m.AddUser("demo@example.com", "demo")
	m.SeedMessages(
		"Welcome to msgboard!",
		"Messages are stored by the hosted service and fetched after every post.",
		"Code fences are highlighted:\n```go\nfmt.Println(\"hello\")\n```",
	)
	return m
}

// AddUser registers credentials SignInWithPassword will accept.
func (m *MockService) AddUser(email, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[strings.ToLower(email)] = password
}

// SetSession replaces the current session without emitting an event.
func (m *MockService) SetSession(sess *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = sess.clone()
}

// SeedMessages appends messages with generated IDs.
func (m *MockService) SeedMessages(contents ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, content := range contents {
		m.messages = append(m.messages, Message{ID: MessageID(uuid.NewString()), Content: content})
	}
}

// Messages returns a copy of the stored messages.
func (m *MockService) Messages() []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Message(nil), m.messages...)
}

// SetError makes every later call to op fail with err. A nil err clears it.
func (m *MockService) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// Calls returns how many times op has been called.
func (m *MockService) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// Emit publishes ev to subscribers and applies it to the mock session.
func (m *MockService) Emit(ev AuthEvent) {
	m.mu.Lock()
	if ev.Type == EventSignedOut {
		m.session = nil
	} else if ev.Session != nil {
		m.session = ev.Session.clone()
	}
	m.mu.Unlock()
	m.hub.publish(ev)
}

// Subscribers returns the number of open subscriptions.
func (m *MockService) Subscribers() int {
	return m.hub.count()
}

// begin records a call and returns the injected error for op, if any.
func (m *MockService) begin(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	return m.errs[op]
}

func (m *MockService) GetSession(ctx context.Context) (*Session, error) {
	if err := m.begin(OpGetSession); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.clone(), nil
}

func (m *MockService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	const op = "backend.SignInWithPassword"
	if err := m.begin(OpSignIn); err != nil {
		return nil, err
	}

	m.mu.RLock()
	want, ok := m.users[strings.ToLower(strings.TrimSpace(email))]
	m.mu.RUnlock()
	if !ok || want != password {
		return nil, apperrors.AuthFailed(op, NewAPIError(http.StatusBadRequest, "invalid_credentials", "Invalid login credentials"))
	}

	sess := mockSession(email)
	m.Emit(AuthEvent{Type: EventSignedIn, Session: sess})
	return sess.clone(), nil
}

func (m *MockService) SignUp(ctx context.Context, email, password string) (*Session, error) {
	const op = "backend.SignUp"
	if err := m.begin(OpSignUp); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(email))
	m.mu.Lock()
	if _, exists := m.users[key]; exists {
		m.mu.Unlock()
		return nil, apperrors.AuthFailed(op, NewAPIError(http.StatusUnprocessableEntity, "user_already_exists", "User already registered"))
	}
	m.users[key] = password
	confirm := m.RequireConfirmation
	m.mu.Unlock()

	if confirm {
		return nil, nil
	}
	sess := mockSession(email)
	m.Emit(AuthEvent{Type: EventSignedIn, Session: sess})
	return sess.clone(), nil
}

func (m *MockService) SignOut(ctx context.Context) error {
	if err := m.begin(OpSignOut); err != nil {
		return err
	}
	m.mu.RLock()
	signedIn := m.session != nil
	m.mu.RUnlock()
	if signedIn {
		m.Emit(AuthEvent{Type: EventSignedOut})
	}
	return nil
}

func (m *MockService) Subscribe() *Subscription {
	return m.hub.subscribe()
}

func (m *MockService) SelectMessages(ctx context.Context) ([]Message, error) {
	if err := m.begin(OpSelectMessages); err != nil {
		return nil, err
	}
	return m.Messages(), nil
}

func (m *MockService) InsertMessage(ctx context.Context, content string) error {
	if err := m.begin(OpInsertMessage); err != nil {
		return err
	}
	m.mu.Lock()
	m.messages = append(m.messages, Message{ID: MessageID(uuid.NewString()), Content: content})
	onInsert := m.OnInsert
	m.mu.Unlock()

	if onInsert != nil {
		onInsert(content)
	}
	return nil
}

// Close closes every subscription.
func (m *MockService) Close() {
	m.hub.closeAll()
}

func mockSession(email string) *Session {
	email = strings.TrimSpace(email)
	return &Session{
		AccessToken:  "mock-access-" + uuid.NewString(),
		RefreshToken: "mock-refresh-" + uuid.NewString(),
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
		User:         User{ID: uuid.NewString(), Email: email},
	}
}
