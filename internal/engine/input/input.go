// Package input defines the platform-neutral events consumed by the gallery.
// Backends (see sdlinput) translate native events into these.
package input

import "time"

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerLeave // pointer left the window; cancels drags
	EventWheel
	EventFocusLost
)

// Key is a logical key. Only keys the gallery binds are distinguished.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeySpace
	KeyFullscreen
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	case KeyFullscreen:
		return "Fullscreen"
	default:
		return "Unknown"
	}
}

// Button identifies a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	X      float32
	Y      float32
	Wheel  float32 // vertical scroll, positive away from the user
	Button Button
	Time   time.Duration // monotonic timestamp, used for drag velocity
}

// Queue accumulates events for one frame.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Reset clears events from the previous frame.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Events returns the events queued since the last Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// IsKeyPressed checks if a key went down this frame.
func (q *Queue) IsKeyPressed(k Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}
