// Package clipboard writes and reads text on the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/msgboard/msgboard/internal/logger"
)

// backend is the system clipboard; tests swap it out.
type backend interface {
	Init() error
	Write(data []byte)
	Read() []byte
}

type systemClipboard struct{}

func (systemClipboard) Init() error       { return clipboard.Init() }
func (systemClipboard) Write(data []byte) { clipboard.Write(clipboard.FmtText, data) }
func (systemClipboard) Read() []byte      { return clipboard.Read(clipboard.FmtText) }

var (
	mu          sync.Mutex
	impl        backend = systemClipboard{}
	initialized bool
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := impl.Init(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// WriteText puts text on the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}
	impl.Write([]byte(text))
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return "", err
	}
	return string(impl.Read()), nil
}

// setBackend replaces the clipboard implementation and resets initialization.
func setBackend(b backend) {
	mu.Lock()
	defer mu.Unlock()
	impl = b
	initialized = false
}
