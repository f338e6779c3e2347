package notification

import (
	"errors"
	"testing"
)

type sent struct{ title, message string }

// record installs a notifier that appends to the returned slice.
func record(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	t.Cleanup(SetNotifier(func(title, message string, _ any) error {
		got = append(got, sent{title, message})
		return err
	}))
	return &got
}

func TestSend(t *testing.T) {
	got := record(t, nil)

	if err := Send("msgboard", "hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(*got) != 1 || (*got)[0] != (sent{"msgboard", "hello"}) {
		t.Errorf("sent %v", *got)
	}
}

func TestSend_ReturnsNotifierError(t *testing.T) {
	boom := errors.New("no notification daemon")
	record(t, boom)

	if err := Send("msgboard", "hello"); !errors.Is(err, boom) {
		t.Errorf("Send() error = %v, want %v", err, boom)
	}
}

func TestNewMessages(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, ""},
		{-2, ""},
		{1, "1 new message"},
		{4, "4 new messages"},
	}

	for _, tt := range tests {
		got := record(t, nil)

		if err := NewMessages(tt.count); err != nil {
			t.Fatalf("NewMessages(%d) error = %v", tt.count, err)
		}
		if tt.want == "" {
			if len(*got) != 0 {
				t.Errorf("NewMessages(%d) sent %v, want nothing", tt.count, *got)
			}
			continue
		}
		if len(*got) != 1 || (*got)[0] != (sent{AppName, tt.want}) {
			t.Errorf("NewMessages(%d) sent %v, want %q", tt.count, *got, tt.want)
		}
	}
}

func TestSetNotifier_Restore(t *testing.T) {
	outer := record(t, nil)

	restore := SetNotifier(func(string, string, any) error { return nil })
	_ = Send("msgboard", "swallowed")
	restore()
	_ = Send("msgboard", "recorded")

	if len(*outer) != 1 || (*outer)[0].message != "recorded" {
		t.Errorf("after restore, sent %v", *outer)
	}
}
