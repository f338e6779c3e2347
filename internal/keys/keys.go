// Package keys names the key presses msgboard reacts to.
//
// Values come from tea.KeyPressMsg{...}.String() so they always match what
// the runtime reports for the same key.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up       = tea.KeyPressMsg{Code: tea.KeyUp}.String()                       // "up"
	Down     = tea.KeyPressMsg{Code: tea.KeyDown}.String()                     // "down"
	Tab      = tea.KeyPressMsg{Code: tea.KeyTab}.String()                      // "tab"
	ShiftTab = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String() // "shift+tab"
	Enter    = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                    // "enter"
)

// Message list scrolling
var (
	PgUp     = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()                     // "pgup"
	PgDown   = tea.KeyPressMsg{Code: tea.KeyPgDown}.String()                   // "pgdown"
	CtrlUp   = (tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModCtrl}).String()   // "ctrl+up"
	CtrlDown = (tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModCtrl}).String() // "ctrl+down"
	CtrlHome = (tea.KeyPressMsg{Code: tea.KeyHome, Mod: tea.ModCtrl}).String() // "ctrl+home"
	CtrlEnd  = (tea.KeyPressMsg{Code: tea.KeyEnd, Mod: tea.ModCtrl}).String()  // "ctrl+end"
)

// Actions. The footer shows these same strings.
var (
	Quit       = ctrl('c')
	LogIn      = Enter
	SignUp     = ctrl('s')
	Post       = Enter
	Refresh    = ctrl('r')
	SignOut    = ctrl('o')
	CopyNewest = ctrl('y')
)

func ctrl(r rune) string {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}.String()
}

// AuthActions and BoardActions are the action keys live on each screen.
// A key must not appear twice within one screen.
var (
	AuthActions  = []string{Tab, LogIn, SignUp, Quit}
	BoardActions = []string{Post, Refresh, CopyNewest, SignOut, Quit}
)
