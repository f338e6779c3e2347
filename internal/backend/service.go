// Package backend is the client for the hosted auth + data service
// (a Supabase-compatible GoTrue auth API and PostgREST row API).
package backend

import "context"

// MessagesTable is the table the client reads and writes.
const MessagesTable = "messages"

// Service is everything the view-state controller needs from the hosted service.
type Service interface {
	// GetSession returns the current session, restoring and refreshing a
	// persisted one if needed. (nil, nil) means signed out.
	GetSession(ctx context.Context) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// SignUp returns a nil session when the service requires email confirmation.
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// Subscribe registers for session-change events until the subscription is closed.
	Subscribe() *Subscription

	SelectMessages(ctx context.Context) ([]Message, error)
	InsertMessage(ctx context.Context, content string) error
}

var (
	_ Service = (*Client)(nil)
	_ Service = (*MockService)(nil)
)
