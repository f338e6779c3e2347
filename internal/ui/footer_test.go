package ui

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/msgboard/msgboard/internal/keys"
)

func TestNewFooter_ShowsLoadingBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)

	if f.HasFlash() {
		t.Error("a new footer has no flash")
	}
	if view := ansi.Strip(f.View()); !strings.Contains(view, "quit") {
		t.Errorf("loading footer should offer quit, got %q", view)
	}
}

// Every key a screen reacts to should be advertised in its footer.
func TestBindings_CoverScreenActions(t *testing.T) {
	tests := []struct {
		name     string
		bindings []KeyBinding
		actions  []string
	}{
		{"auth", AuthBindings, keys.AuthActions},
		{"board", BoardBindings, keys.BoardActions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown := make([]string, 0, len(tt.bindings))
			for _, b := range tt.bindings {
				shown = append(shown, b.Key)
			}
			for _, k := range tt.actions {
				if !slices.Contains(shown, k) {
					t.Errorf("%s footer does not show %q", tt.name, k)
				}
			}
		})
	}
}

func TestFooter_Bindings(t *testing.T) {
	tests := []struct {
		name     string
		bindings []KeyBinding
		want     []string
		notWant  []string
	}{
		{"auth", AuthBindings, []string{"log in", "sign up", "next field"}, []string{"sign out"}},
		{"board", BoardBindings, []string{"post", "refresh", "sign out", "copy newest"}, []string{"log in"}},
		{"loading", LoadingBindings, []string{"quit"}, []string{"post", "log in"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetWidth(200)
			f.SetBindings(tt.bindings)

			view := ansi.Strip(f.View())
			for _, s := range tt.want {
				if !strings.Contains(view, s) {
					t.Errorf("footer should contain %q, got %q", s, view)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(view, s) {
					t.Errorf("footer should not contain %q, got %q", s, view)
				}
			}
		})
	}
}

func TestFooter_FlashLifecycle(t *testing.T) {
	f := NewFooter()

	f.SetFlash("Message posted", FlashSuccess)
	if got := f.Flash(); got != "Message posted" {
		t.Fatalf("Flash() = %q", got)
	}
	if f.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("duration = %v, want default %v", f.flashMessage.Duration, DefaultFlashDuration)
	}

	f.SetFlashWithDuration("Copied", FlashInfo, time.Minute)
	if f.Flash() != "Copied" || f.flashMessage.Duration != time.Minute {
		t.Errorf("a second flash should replace the first, got %+v", f.flashMessage)
	}

	f.ClearFlash()
	if f.HasFlash() || f.Flash() != "" {
		t.Error("ClearFlash should remove the flash")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	tests := []struct {
		name      string
		age       time.Duration
		wantClear bool
	}{
		{"fresh", 0, false},
		{"just under", 4 * time.Second, false},
		{"stale", 10 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.flashMessage = &FlashMessage{
				Text:      "Sign out failed",
				Type:      FlashError,
				CreatedAt: time.Now().Add(-tt.age),
				Duration:  5 * time.Second,
			}

			if got := f.ClearIfExpired(); got != tt.wantClear {
				t.Errorf("ClearIfExpired() = %v, want %v", got, tt.wantClear)
			}
			if f.HasFlash() == tt.wantClear {
				t.Errorf("HasFlash() = %v after ClearIfExpired", f.HasFlash())
			}
		})
	}
}

func TestFooter_FlashReplacesBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	f.SetBindings(BoardBindings)

	if !strings.Contains(ansi.Strip(f.View()), "refresh") {
		t.Fatal("bindings should show without a flash")
	}

	f.SetFlash("Could not load messages", FlashError)
	view := ansi.Strip(f.View())

	if !strings.Contains(view, "Could not load messages") {
		t.Error("flash should be visible")
	}
	if strings.Contains(view, "refresh") {
		t.Error("flash should replace the key bindings")
	}
}

func TestFooter_FlashIcons(t *testing.T) {
	icons := map[FlashType]string{
		FlashError:   "✕",
		FlashWarning: "⚠",
		FlashInfo:    "ℹ",
		FlashSuccess: "✓",
	}

	for typ, icon := range icons {
		f := NewFooter()
		f.SetWidth(80)
		f.SetFlash("x", typ)

		if !strings.Contains(f.View(), icon) {
			t.Errorf("flash type %d should render icon %q", typ, icon)
		}
	}
}

func TestFooter_LongFlashTruncated(t *testing.T) {
	f := NewFooter()
	f.SetWidth(40)
	f.SetFlash(strings.Repeat("x", 100), FlashInfo)

	if view := ansi.Strip(f.View()); !strings.Contains(view, "…") {
		t.Errorf("long flash should be truncated, got %q", view)
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}
