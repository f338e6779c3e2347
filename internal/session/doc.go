// Package session persists the signed-in user's auth session between runs.
//
// # Overview
//
// The hosted auth service issues an access token (a short-lived JWT) and a
// refresh token. The browser client keeps these in local storage; msgboard
// keeps them in a single JSON file so that a restart restores the user
// without another password prompt.
//
// # File Layout
//
// The session lives at <config dir>/session.json (default
// ~/.msgboard/session.json) with mode 0600:
//
//	{
//	  "access_token": "eyJ...",
//	  "refresh_token": "v1.M...",
//	  "token_type": "bearer",
//	  "expires_at": 1735689600,
//	  "user_id": "9f5c...",
//	  "email": "ada@example.com",
//	  "saved_at": "2026-10-19T12:00:00Z"
//	}
//
// # Stores
//
// FileStore is used by the CLI and TUI. MemoryStore backs tests and the
// --demo mode. Both satisfy Store; the backend client only sees the interface.
package session
