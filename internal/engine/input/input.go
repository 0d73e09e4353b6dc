// Package input handles SDL2 input events and keyboard state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/brawl/internal/engine/keys"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    keys.Key
	Repeat bool
	Width  int
	Height int
}

// Input pumps SDL events and keeps a snapshot of held keys.
type Input struct {
	events   []Event
	keyboard keys.State
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and refreshes the keyboard snapshot.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{
				Key:    keys.Key(e.Keysym.Scancode),
				Repeat: e.Repeat != 0,
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)
		}
	}

	// Held state comes from SDL's own table, which stays correct even when
	// key events were coalesced within a frame.
	i.keyboard.Load(sdl.GetKeyboardState())
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyDown reports whether a key was held at the last Update.
func (i *Input) IsKeyDown(k keys.Key) bool {
	return i.keyboard.IsKeyDown(k)
}

// Held returns the keys held at the last Update.
func (i *Input) Held() []keys.Key {
	return i.keyboard.Held()
}

// KeyPressed reports whether a key went down during the last Update.
func (i *Input) KeyPressed(k keys.Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && !e.Repeat && e.Key == k {
			return true
		}
	}
	return false
}
