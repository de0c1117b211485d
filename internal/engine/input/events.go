package input

// Key identifies a keyboard key independent of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyZ
	KeyX
	KeyR
	KeyN
	KeyH
	KeyF
	KeyEnter
	KeySpace
	KeyEscape
	KeyHome
	KeyF2
	KeyShift
)

var keyNames = map[Key]string{
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyE:      "E",
	KeyZ:      "Z",
	KeyX:      "X",
	KeyR:      "R",
	KeyN:      "N",
	KeyH:      "H",
	KeyF:      "F",
	KeyEnter:  "Enter",
	KeySpace:  "Space",
	KeyEscape: "Escape",
	KeyHome:   "Home",
	KeyF2:     "F2",
	KeyShift:  "Shift",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Button is the pointer button that changed state.
// Values follow the DOM MouseEvent.button numbering.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// ButtonMask is the set of pointer buttons currently held.
// Bits follow the DOM MouseEvent.buttons layout.
type ButtonMask uint8

const (
	MaskPrimary   ButtonMask = 1 << 0
	MaskSecondary ButtonMask = 1 << 1
	MaskMiddle    ButtonMask = 1 << 2
)

// Has reports whether every button in m is held.
func (b ButtonMask) Has(m ButtonMask) bool {
	return b&m == m
}

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m is held.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// PointerEvent is a pointer press, release or move in window pixels.
type PointerEvent struct {
	X, Y    float32
	Button  Button     // Button that changed (press/release only)
	Buttons ButtonMask // Buttons held after the event
	Mods    Modifiers
}

// WheelEvent is one wheel step. Positive DeltaY scrolls toward the user.
type WheelEvent struct {
	DeltaY float32
}
