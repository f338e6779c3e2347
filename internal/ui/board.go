package ui

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/msgboard/msgboard/internal/backend"
	"github.com/msgboard/msgboard/internal/keys"
)

// Board is the signed-in screen: welcome line, message list and input
type Board struct {
	viewport viewport.Model
	input    textinput.Model
	messages []backend.Message
	email    string
	loading  bool
	width    int
	height   int
}

// NewBoard creates an empty board with the input focused
func NewBoard() *Board {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	input := textinput.New()
	input.Placeholder = "Write a message..."
	// Unbounded; only blank messages are refused, and that happens on submit
	input.CharLimit = 0
	input.Focus()

	b := &Board{
		viewport: vp,
		input:    input,
	}
	b.refresh()
	return b
}

// SetSize sets the board's area and recomputes the list height
func (b *Board) SetSize(width, height int) {
	b.width = width
	b.height = height

	listHeight := height - WelcomeHeight - InputHeight
	if listHeight < 1 {
		listHeight = 1
	}
	b.viewport.SetWidth(width)
	b.viewport.SetHeight(listHeight)
	b.input.SetWidth(max(width-BorderSize-InputPaddingWidth-counterReserve, 10))
	b.refresh()
}

// SetEmail sets the email shown in the welcome line
func (b *Board) SetEmail(email string) {
	b.email = email
}

// SetMessages replaces the list and scrolls to the newest message
func (b *Board) SetMessages(msgs []backend.Message) {
	b.messages = msgs
	b.refresh()
	b.viewport.GotoBottom()
}

// Messages returns the rendered list
func (b *Board) Messages() []backend.Message {
	return b.messages
}

// SetLoading shows or hides the loading line in place of an empty list
func (b *Board) SetLoading(loading bool) {
	b.loading = loading
	b.refresh()
}

// InputValue returns the message input's text
func (b *Board) InputValue() string {
	return b.input.Value()
}

// SetInputValue replaces the message input's text
func (b *Board) SetInputValue(s string) {
	b.input.SetValue(s)
}

// ResetInput clears the message input
func (b *Board) ResetInput() {
	b.input.Reset()
}

func (b *Board) refresh() {
	width := b.width
	if width <= 0 {
		width = DefaultWrapWidth
	}
	if b.loading && len(b.messages) == 0 {
		b.viewport.SetContent(StatusLoadingStyle.Render("Loading messages..."))
		return
	}
	b.viewport.SetContent(RenderMessages(b.messages, width))
}

// Update routes scroll keys to the list and everything else to the input
func (b *Board) Update(msg tea.Msg) (*Board, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.PgUp, keys.PgDown:
			var cmd tea.Cmd
			b.viewport, cmd = b.viewport.Update(msg)
			return b, cmd
		case keys.CtrlUp:
			b.viewport.ScrollUp(1)
			return b, nil
		case keys.CtrlDown:
			b.viewport.ScrollDown(1)
			return b, nil
		case keys.CtrlHome:
			b.viewport.GotoTop()
			return b, nil
		case keys.CtrlEnd:
			b.viewport.GotoBottom()
			return b, nil
		}
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return b, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	cmds = append(cmds, cmd)
	b.viewport, cmd = b.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return b, tea.Batch(cmds...)
}

// View renders the board
func (b *Board) View() string {
	welcome := WelcomeStyle.Render("Welcome, " + b.email)

	counter := InputCounterStyle.Render(fmt.Sprintf(" %d chars", GraphemeCount(b.input.Value())))
	inputLine := lipgloss.JoinHorizontal(lipgloss.Top, b.input.View(), counter)
	input := InputStyle.Width(max(b.width, MinTerminalWidth)).Render(inputLine)

	return lipgloss.JoinVertical(lipgloss.Left, welcome, b.viewport.View(), input)
}
