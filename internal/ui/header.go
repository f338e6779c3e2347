package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " msgboard"

// Header is the top bar: the app name on the left and, when signed in, the
// user's email on the right, over a gradient background.
type Header struct {
	width int
	email string
}

func NewHeader() *Header {
	return &Header{}
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetEmail sets the signed-in user's email; empty when signed out
func (h *Header) SetEmail(email string) {
	h.email = email
}

func (h *Header) View() string {
	titleWidth := runewidth.StringWidth(headerTitle)

	right := ""
	if h.email != "" {
		right = h.email + " "
		if room := h.width - titleWidth - 1; room > 0 && runewidth.StringWidth(right) > room {
			right = ansi.Truncate(right, room, "…")
		}
	}

	gap := max(h.width-titleWidth-runewidth.StringWidth(right), 0)
	line := headerTitle + strings.Repeat(" ", gap) + right

	theme := CurrentTheme()
	return gradient(line, len([]rune(headerTitle)),
		lipgloss.Color(theme.Primary), lipgloss.Color(theme.Bg), lipgloss.Color(theme.Text))
}

// gradient renders each rune of s over a background blended from "from" to
// "to". The first bold runes are bold.
func gradient(s string, bold int, from, to, fg color.Color) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		bg := blend(from, to, float64(i)/float64(len(runes)))
		b.WriteString(lipgloss.NewStyle().
			Background(bg).
			Foreground(fg).
			Bold(i < bold).
			Render(string(r)))
	}
	return b.String()
}

// blend mixes a and b linearly; t=0 is a, t=1 is b.
func blend(a, b color.Color, t float64) color.Color {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8((float64(x>>8)*(1-t) + float64(y>>8)*t) + 0.5)
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: 0xff}
}
