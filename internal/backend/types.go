package backend

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/msgboard/msgboard/internal/session"
)

// User is the authenticated user as reported by the auth service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the token pair plus user returned by sign-in, sign-up and refresh.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	User         User   `json:"user"`
}

// Expiry returns when the access token stops being valid, or the zero time
// if unknown.
func (s *Session) Expiry() time.Time {
	if s == nil || s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.ExpiresAt, 0)
}

// ExpiresWithin reports whether the token expires before now+margin.
// A session with unknown expiry never expires.
func (s *Session) ExpiresWithin(now time.Time, margin time.Duration) bool {
	exp := s.Expiry()
	if exp.IsZero() {
		return false
	}
	return !now.Add(margin).Before(exp)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// normalize fills fields the service may omit: expires_at from expires_in,
// then from the JWT claims, and the user from the claims.
func (s *Session) normalize(now time.Time) {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = now.Unix() + s.ExpiresIn
	}
	if s.ExpiresAt != 0 && s.User.ID != "" && s.User.Email != "" {
		return
	}
	claims, err := parseAccessToken(s.AccessToken)
	if err != nil {
		return
	}
	if s.ExpiresAt == 0 && claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if s.User.ID == "" {
		s.User.ID = claims.Subject
	}
	if s.User.Email == "" {
		s.User.Email = claims.Email
	}
}

func (s *Session) toRecord() *session.Record {
	return &session.Record{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresAt:    s.ExpiresAt,
		UserID:       s.User.ID,
		Email:        s.User.Email,
	}
}

func sessionFromRecord(rec *session.Record) *Session {
	if rec == nil {
		return nil
	}
	return &Session{
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		TokenType:    rec.TokenType,
		ExpiresAt:    rec.ExpiresAt,
		User:         User{ID: rec.UserID, Email: rec.Email},
	}
}

// MessageID is a row identifier. Tables created with a bigint key send
// numbers, uuid keys send strings; both decode to the same type.
type MessageID string

// UnmarshalJSON accepts a JSON number or string.
func (id *MessageID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MessageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = MessageID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs as numbers and everything else as strings.
func (id MessageID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Message is a row of the messages table.
type Message struct {
	ID      MessageID `json:"id"`
	Content string    `json:"content"`
}

// AuthEventType names a session change.
type AuthEventType string

const (
	EventSignedIn       AuthEventType = "SIGNED_IN"
	EventSignedOut      AuthEventType = "SIGNED_OUT"
	EventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEventType = "USER_UPDATED"
)

// AuthEvent is delivered to subscribers whenever the session changes.
// Session is nil for EventSignedOut.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}
