package ui

import (
	"sync"

	"github.com/msgboard/msgboard/internal/logger"
)

// Layout is how one terminal size is split between the header, the screen
// content and the footer.
type Layout struct {
	Width  int
	Height int

	// ContentHeight is everything between header and footer
	ContentHeight int
	// ListHeight is what the welcome line and input leave for messages
	ListHeight int
	// FormWidth is the auth form box, narrowed on small terminals
	FormWidth int
}

// NewLayout computes the layout for a terminal, clamping tiny sizes
func NewLayout(width, height int) Layout {
	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)
	content := height - HeaderHeight - FooterHeight

	return Layout{
		Width:         width,
		Height:        height,
		ContentHeight: content,
		ListHeight:    max(content-WelcomeHeight-InputHeight, 1),
		FormWidth:     formWidthFor(width),
	}
}

func formWidthFor(width int) int {
	return min(AuthFormWidth, width-BorderSize)
}

// ViewContext holds the current Layout so every size calculation comes
// from one place.
type ViewContext struct {
	mu     sync.RWMutex
	layout Layout
}

var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{layout: NewLayout(0, 0)}
	})
	return ctx
}

// Update recomputes the layout after a resize and returns it
func (v *ViewContext) Update(width, height int) Layout {
	l := NewLayout(width, height)

	v.mu.Lock()
	changed := l != v.layout
	v.layout = l
	v.mu.Unlock()

	if changed {
		logger.WithComponent("ui").Debug("layout updated",
			"width", l.Width,
			"height", l.Height,
			"listHeight", l.ListHeight,
			"formWidth", l.FormWidth,
		)
	}
	return l
}

// Layout returns the most recent layout
func (v *ViewContext) Layout() Layout {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.layout
}
