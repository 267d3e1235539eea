// Package sdlinput translates SDL2 events into input.Event values.
package sdlinput

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gear-carousel/internal/engine/input"
)

// Input polls SDL and fills an input queue.
type Input struct {
	queue *input.Queue
}

// New creates a new SDL input handler.
func New() *Input {
	return &Input{queue: input.NewQueue()}
}

// Update polls SDL events and converts them to gallery events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.queue.Reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.queue.Push(input.Event{Type: input.EventQuit})
			return true

		case *sdl.WindowEvent:
			ts := stamp(e.Timestamp)
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				i.queue.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
					Time:   ts,
				})
			case sdl.WINDOWEVENT_LEAVE:
				i.queue.Push(input.Event{Type: input.EventPointerLeave, Time: ts})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.queue.Push(input.Event{Type: input.EventFocusLost, Time: ts})
			}

		case *sdl.KeyboardEvent:
			key := translateKey(e.Keysym.Scancode)
			if key == input.KeyUnknown {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.queue.Push(input.Event{Type: input.EventKeyDown, Key: key, Time: stamp(e.Timestamp)})
			} else if e.Type == sdl.KEYUP {
				i.queue.Push(input.Event{Type: input.EventKeyUp, Key: key, Time: stamp(e.Timestamp)})
			}

		case *sdl.MouseMotionEvent:
			i.queue.Push(input.Event{
				Type: input.EventPointerMove,
				X:    float32(e.X),
				Y:    float32(e.Y),
				Time: stamp(e.Timestamp),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				X:      float32(e.X),
				Y:      float32(e.Y),
				Button: translateButton(e.Button),
				Time:   stamp(e.Timestamp),
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventPointerDown
			} else {
				ev.Type = input.EventPointerUp
			}
			i.queue.Push(ev)

		case *sdl.MouseWheelEvent:
			y := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			mx, my, _ := sdl.GetMouseState()
			i.queue.Push(input.Event{
				Type:  input.EventWheel,
				X:     float32(mx),
				Y:     float32(my),
				Wheel: y,
				Time:  stamp(e.Timestamp),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []input.Event {
	return i.queue.Events()
}

func stamp(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func translateKey(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_LEFT:
		return input.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return input.KeyRight
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
		return input.KeyEnter
	case sdl.SCANCODE_SPACE:
		return input.KeySpace
	case sdl.SCANCODE_F11:
		return input.KeyFullscreen
	default:
		return input.KeyUnknown
	}
}

func translateButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	default:
		return input.ButtonNone
	}
}
