// Package input translates SDL2 events into host-neutral input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for window-level handling by the host loop.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX float32
	MouseY float32
	Button Button
	Wheel  float32
}

// Input polls SDL and dispatches translated events to its listeners.
type Input struct {
	*Dispatcher

	events  []Event
	buttons ButtonMask
	mods    Modifiers
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		Dispatcher: NewDispatcher(),
		events:     make([]Event, 0, 16),
	}
}

// Update polls SDL events, dispatches them and records them for Events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

// handle translates one SDL event. Returns true on quit.
func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		i.mods = translateMods(sdl.Keymod(e.Keysym.Mod))
		key := translateKey(e.Keysym.Scancode)
		if e.Type == sdl.KEYDOWN {
			if e.Repeat != 0 {
				return false
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: key})
			i.KeyDown(key)
		} else if e.Type == sdl.KEYUP {
			i.events = append(i.events, Event{Type: EventKeyUp, Key: key})
			i.KeyUp(key)
		}

	case *sdl.MouseMotionEvent:
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: float32(e.X),
			MouseY: float32(e.Y),
		})
		i.PointerMove(PointerEvent{
			X:       float32(e.X),
			Y:       float32(e.Y),
			Buttons: i.buttons,
			Mods:    i.mods,
		})

	case *sdl.MouseButtonEvent:
		button, mask, ok := translateButton(e.Button)
		if !ok {
			return false
		}
		ev := Event{MouseX: float32(e.X), MouseY: float32(e.Y), Button: button}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.buttons |= mask
			ev.Type = EventMouseDown
		} else {
			i.buttons &^= mask
			ev.Type = EventMouseUp
		}
		i.events = append(i.events, ev)

		pe := PointerEvent{
			X:       ev.MouseX,
			Y:       ev.MouseY,
			Button:  button,
			Buttons: i.buttons,
			Mods:    i.mods,
		}
		if ev.Type == EventMouseDown {
			i.PointerDown(pe)
		} else {
			i.PointerUp(pe)
		}

	case *sdl.MouseWheelEvent:
		if e.Y == 0 {
			return false
		}
		// SDL reports positive Y away from the user.
		delta := float32(-e.Y)
		i.events = append(i.events, Event{Type: EventWheel, Wheel: delta})
		i.Wheel(WheelEvent{DeltaY: delta})
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Buttons returns the pointer buttons currently held.
func (i *Input) Buttons() ButtonMask {
	return i.buttons
}

// Mods returns the modifier keys held at the last keyboard event.
func (i *Input) Mods() Modifiers {
	return i.mods
}

var scancodeKeys = map[sdl.Scancode]Key{
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
	sdl.SCANCODE_Q:      KeyQ,
	sdl.SCANCODE_E:      KeyE,
	sdl.SCANCODE_Z:      KeyZ,
	sdl.SCANCODE_X:      KeyX,
	sdl.SCANCODE_R:      KeyR,
	sdl.SCANCODE_N:      KeyN,
	sdl.SCANCODE_H:      KeyH,
	sdl.SCANCODE_F:      KeyF,
	sdl.SCANCODE_RETURN: KeyEnter,
	sdl.SCANCODE_SPACE:  KeySpace,
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_HOME:   KeyHome,
	sdl.SCANCODE_F2:     KeyF2,
	sdl.SCANCODE_LSHIFT: KeyShift,
	sdl.SCANCODE_RSHIFT: KeyShift,
}

func translateKey(sc sdl.Scancode) Key {
	if k, ok := scancodeKeys[sc]; ok {
		return k
	}
	return KeyUnknown
}

func translateButton(b uint8) (Button, ButtonMask, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return ButtonPrimary, MaskPrimary, true
	case sdl.BUTTON_MIDDLE:
		return ButtonMiddle, MaskMiddle, true
	case sdl.BUTTON_RIGHT:
		return ButtonSecondary, MaskSecondary, true
	}
	return 0, 0, false
}

func translateMods(mod sdl.Keymod) Modifiers {
	var m Modifiers
	if mod&sdl.KMOD_SHIFT != 0 {
		m |= ModShift
	}
	if mod&sdl.KMOD_CTRL != 0 {
		m |= ModCtrl
	}
	if mod&sdl.KMOD_ALT != 0 {
		m |= ModAlt
	}
	if mod&sdl.KMOD_GUI != 0 {
		m |= ModMeta
	}
	return m
}
