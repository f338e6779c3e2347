package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/msgboard/msgboard/internal/keys"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient status line shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has been visible for its full duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg asks the model to check whether the flash has expired
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg after FlashTickInterval
func FlashTick() tea.Cmd {
	return tea.Tick(FlashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Key bindings for each screen
var (
	AuthBindings = []KeyBinding{
		{Key: keys.Tab, Desc: "next field"},
		{Key: keys.LogIn, Desc: "log in"},
		{Key: keys.SignUp, Desc: "sign up"},
		{Key: keys.Quit, Desc: "quit"},
	}

	BoardBindings = []KeyBinding{
		{Key: keys.Post, Desc: "post"},
		{Key: keys.Refresh, Desc: "refresh"},
		{Key: keys.CopyNewest, Desc: "copy newest"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: keys.SignOut, Desc: "sign out"},
		{Key: keys.Quit, Desc: "quit"},
	}

	LoadingBindings = []KeyBinding{
		{Key: keys.Quit, Desc: "quit"},
	}
)

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// NewFooter creates a new footer showing the loading bindings
func NewFooter() *Footer {
	return &Footer{bindings: LoadingBindings}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings replaces the bindings shown when no flash is active
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// Flash returns the current flash message text, or "" if none
func (f *Footer) Flash() string {
	if f.flashMessage == nil {
		return ""
	}
	return f.flashMessage.Text
}

// ClearIfExpired clears an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	if f.width > InputPaddingWidth {
		content = ansi.Truncate(content, f.width-InputPaddingWidth, "…")
	}

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", FlashErrorStyle
	case FlashWarning:
		icon, style = "⚠", FlashWarningStyle
	case FlashSuccess:
		icon, style = "✓", FlashSuccessStyle
	default:
		icon, style = "ℹ", FlashInfoStyle
	}

	text := icon + " " + f.flashMessage.Text
	if f.width > InputPaddingWidth {
		text = ansi.Truncate(text, f.width-InputPaddingWidth, "…")
	}
	return style.Render(text)
}
