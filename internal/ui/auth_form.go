package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// AuthField identifies an input of the auth form
type AuthField int

const (
	FieldEmail AuthField = iota
	FieldPassword
)

// formChrome is the form box's border plus horizontal padding
const formChrome = BorderSize + 4

// AuthForm is the email + password form shown while signed out
type AuthForm struct {
	email    textinput.Model
	password textinput.Model
	focus    AuthField
	errText  string
	status   string
	width    int
	height   int

	formWidth int
}

// NewAuthForm creates the form with the email field focused
func NewAuthForm() *AuthForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = EmailCharLimit
	email.SetWidth(AuthInputWidth)
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = PasswordCharLimit
	password.SetWidth(AuthInputWidth)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &AuthForm{
		email:     email,
		password:  password,
		focus:     FieldEmail,
		formWidth: AuthFormWidth,
	}
}

// SetSize sets the area the form is centered in. The box and its inputs
// narrow to fit small terminals.
func (f *AuthForm) SetSize(width, height int) {
	f.width = width
	f.height = height

	f.formWidth = formWidthFor(max(width, MinTerminalWidth))
	inputWidth := min(AuthInputWidth, f.formWidth-formChrome)
	f.email.SetWidth(inputWidth)
	f.password.SetWidth(inputWidth)
}

// Email returns the email as typed
func (f *AuthForm) Email() string {
	return f.email.Value()
}

// Password returns the password as typed
func (f *AuthForm) Password() string {
	return f.password.Value()
}

// SetEmail prefills the email field
func (f *AuthForm) SetEmail(email string) {
	f.email.SetValue(email)
}

// ClearPassword empties the password field
func (f *AuthForm) ClearPassword() {
	f.password.Reset()
}

// Focused returns the field that receives key presses
func (f *AuthForm) Focused() AuthField {
	return f.focus
}

// FocusField moves focus to the given field
func (f *AuthForm) FocusField(field AuthField) {
	f.focus = field
	if field == FieldEmail {
		f.email.Focus()
		f.password.Blur()
	} else {
		f.password.Focus()
		f.email.Blur()
	}
}

// FocusNext toggles focus between the two fields
func (f *AuthForm) FocusNext() {
	if f.focus == FieldEmail {
		f.FocusField(FieldPassword)
	} else {
		f.FocusField(FieldEmail)
	}
}

// SetError sets the error line; "" clears it
func (f *AuthForm) SetError(text string) {
	f.errText = text
}

// Error returns the error line
func (f *AuthForm) Error() string {
	return f.errText
}

// SetStatus sets a progress line such as "Signing in..."; "" clears it
func (f *AuthForm) SetStatus(text string) {
	f.status = text
}

// Update forwards a message to the focused input
func (f *AuthForm) Update(msg tea.Msg) (*AuthForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == FieldEmail {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

// View renders the form centered in its area
func (f *AuthForm) View() string {
	label := func(text string, field AuthField) string {
		if f.focus == field {
			return FormLabelFocusedStyle.Render(text)
		}
		return FormLabelStyle.Render(text)
	}

	var b strings.Builder
	b.WriteString(FormTitleStyle.Render("Sign in to msgboard"))
	b.WriteString("\n")
	b.WriteString(label("Email", FieldEmail))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n\n")
	b.WriteString(label("Password", FieldPassword))
	b.WriteString("\n")
	b.WriteString(f.password.View())

	if f.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(StatusErrorStyle.Width(f.formWidth - formChrome).Render(f.errText))
	}
	if f.status != "" {
		b.WriteString("\n\n")
		b.WriteString(StatusLoadingStyle.Render(f.status))
	}

	b.WriteString("\n")
	b.WriteString(FormHelpStyle.Render("enter: log in  ctrl+s: sign up"))

	form := FormStyle.Width(f.formWidth).Render(b.String())
	if f.width <= 0 || f.height <= 0 {
		return form
	}
	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, form)
}
