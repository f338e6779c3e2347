// Package ui provides the user interface components for the msgboard TUI.
//
// # Overview
//
// The components are plain renderers: the app model owns all state and
// pushes it into them before calling View. They follow the Model-Update-View
// pattern of Bubble Tea where they own an input widget.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                     user@example.com│
//	├─────────────────────────────────────────────────────┤
//	│ Welcome, user@example.com                           │
//	│ • message                                           │
//	│ • message                 (viewport, scrollable)    │
//	│ ╭─────────────────────────────────────────────────╮ │
//	│ │ Write a message...                       0/2000 │ │
//	│ ╰─────────────────────────────────────────────────╯ │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key bindings or a flash message    │
//	└─────────────────────────────────────────────────────┘
//
// While signed out the content area holds the AuthForm, centered.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: Application title and the signed-in email over a gradient
// background derived from the theme.
//
// Footer: Key bindings for the current screen, replaced by a flash message
// (info, success, warning, error) until it expires.
//
// AuthForm: Email and masked password inputs plus the error line.
//
// Board: Message list in a viewport and the message input with a grapheme
// counter. Message content gets inline markdown and highlighted code fences.
//
// # Styles
//
// Styles live in styles.go and are regenerated from the active Theme by
// SetTheme.
package ui
