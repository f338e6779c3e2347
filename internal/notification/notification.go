// Package notification sends desktop notifications through beeep.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/msgboard/msgboard/internal/logger"
)

// AppName is the title of every notification.
const AppName = "msgboard"

func init() {
	beeep.AppName = AppName
}

// Func matches beeep.Notify.
type Func func(title, message string, icon any) error

var (
	mu     sync.Mutex
	notify Func = beeep.Notify
)

// SetNotifier replaces the sender and returns a func that restores the
// previous one.
func SetNotifier(fn Func) (restore func()) {
	mu.Lock()
	prev := notify
	notify = fn
	mu.Unlock()

	return func() {
		mu.Lock()
		notify = prev
		mu.Unlock()
	}
}

// Send shows one notification. The platform picks the icon.
func Send(title, message string) error {
	mu.Lock()
	fn := notify
	mu.Unlock()

	log := logger.WithComponent("notification")
	if err := fn(title, message, ""); err != nil {
		log.Warn("notification failed", "title", title, "error", err)
		return err
	}
	log.Debug("notification sent", "title", title, "message", message)
	return nil
}

// NewMessages announces that a refresh brought in count new messages.
// Nothing is sent for count <= 0.
func NewMessages(count int) error {
	switch {
	case count <= 0:
		return nil
	case count == 1:
		return Send(AppName, "1 new message")
	default:
		return Send(AppName, fmt.Sprintf("%d new messages", count))
	}
}
