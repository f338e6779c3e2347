package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/msgboard/msgboard/internal/backend"
)

func signedInMock(contents ...string) *backend.MockService {
	svc := backend.NewMockService()
	svc.SetSession(&backend.Session{AccessToken: "a", User: backend.User{ID: "1", Email: "ada@example.com"}})
	svc.SeedMessages(contents...)
	return svc
}

func TestMessages_RequiresSession(t *testing.T) {
	svc := backend.NewMockService()
	useMock(t, svc)

	if _, err := run(runMessages); !errors.Is(err, errNotSignedIn) {
		t.Errorf("error = %v, want errNotSignedIn", err)
	}
	if n := svc.Calls(backend.OpSelectMessages); n != 0 {
		t.Errorf("select called %d times without a session", n)
	}
}

func TestMessages_Plain(t *testing.T) {
	useMock(t, signedInMock("first", "second"))
	plainOutput = true

	out, err := run(runMessages)
	if err != nil {
		t.Fatalf("runMessages() error = %v", err)
	}
	if out != "first\nsecond\n" {
		t.Errorf("output = %q", out)
	}
}

func TestMessages_Rendered(t *testing.T) {
	useMock(t, signedInMock("hello there"))

	out, err := run(runMessages)
	if err != nil {
		t.Fatalf("runMessages() error = %v", err)
	}
	if !strings.Contains(out, "hello there") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output should not contain escape codes: %q", out)
	}
}

func TestMessages_Empty(t *testing.T) {
	useMock(t, signedInMock())

	out, err := run(runMessages)
	if err != nil {
		t.Fatalf("runMessages() error = %v", err)
	}
	if !strings.Contains(out, "No messages yet") {
		t.Errorf("output = %q", out)
	}
}

func TestMessages_FetchError(t *testing.T) {
	svc := signedInMock()
	svc.SetError(backend.OpSelectMessages, errors.New("boom"))
	useMock(t, svc)

	if _, err := run(runMessages); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v", err)
	}
}

func TestAddMessage(t *testing.T) {
	svc := signedInMock()
	useMock(t, svc)

	out, err := run(runAddMessage, "hello", "world")
	if err != nil {
		t.Fatalf("runAddMessage() error = %v", err)
	}
	if !strings.Contains(out, "Posted.") {
		t.Errorf("output = %q", out)
	}
	msgs := svc.Messages()
	if len(msgs) != 1 || msgs[0].Content != "hello world" {
		t.Errorf("messages = %#v", msgs)
	}
}

func TestAddMessage_Blank(t *testing.T) {
	svc := signedInMock()
	useMock(t, svc)

	if _, err := run(runAddMessage, "  "); err == nil {
		t.Error("blank content should be rejected")
	}
	if n := svc.Calls(backend.OpInsertMessage); n != 0 {
		t.Errorf("insert called %d times for blank content", n)
	}
}

func TestAddMessage_NotSignedIn(t *testing.T) {
	useMock(t, backend.NewMockService())

	if _, err := run(runAddMessage, "hi"); !errors.Is(err, errNotSignedIn) {
		t.Errorf("error = %v, want errNotSignedIn", err)
	}
}
