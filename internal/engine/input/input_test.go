package input

import "testing"

func TestQueue(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: EventKeyDown, Key: KeyLeft})
	q.Push(Event{Type: EventKeyUp, Key: KeyRight})

	if !q.IsKeyPressed(KeyLeft) {
		t.Error("expected Left to be pressed")
	}
	if q.IsKeyPressed(KeyRight) {
		t.Error("key up must not count as pressed")
	}

	q.Reset()
	if len(q.Events()) != 0 {
		t.Errorf("expected empty queue after Reset, got %d events", len(q.Events()))
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyLeft, "Left"},
		{KeyEscape, "Escape"},
		{Key(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}
