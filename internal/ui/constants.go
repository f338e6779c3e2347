// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// InputHeight is the height of the bordered message input
	InputHeight = 1 + BorderSize

	// WelcomeHeight is the "Welcome, <email>" line above the message list
	WelcomeHeight = 1

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Auth form dimensions
const (
	AuthFormWidth     = 52
	AuthInputWidth    = 40
	EmailCharLimit    = 254
	PasswordCharLimit = 72
)

// counterReserve is the input width kept free for the grapheme counter.
const counterReserve = len(" 99999 chars")

// Flash timing
const (
	// DefaultFlashDuration is how long a footer flash stays visible
	DefaultFlashDuration = 4 * time.Second

	// FlashTickInterval is how often an active flash is checked for expiry
	FlashTickInterval = time.Second
)
