package input

// Listener receives host-neutral input events.
type Listener interface {
	OnKeyDown(key Key)
	OnKeyUp(key Key)
	OnPointerDown(e PointerEvent)
	OnPointerMove(e PointerEvent)
	OnPointerUp(e PointerEvent)
	OnWheel(e WheelEvent)
}

// Source delivers input events to registered listeners.
type Source interface {
	AddListener(l Listener)
	RemoveListener(l Listener)
}

// Dispatcher is a Source that fans events out to its listeners in
// registration order. Listeners are matched by identity, so they must be
// comparable values such as pointers.
type Dispatcher struct {
	listeners []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddListener registers l. Adding the same listener twice has no effect.
func (d *Dispatcher) AddListener(l Listener) {
	if l == nil || d.index(l) >= 0 {
		return
	}
	d.listeners = append(d.listeners, l)
}

// RemoveListener detaches exactly the listener passed to AddListener.
func (d *Dispatcher) RemoveListener(l Listener) {
	i := d.index(l)
	if i < 0 {
		return
	}
	d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}

func (d *Dispatcher) index(l Listener) int {
	for i, existing := range d.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}

// snapshot lets listeners detach themselves during dispatch.
func (d *Dispatcher) snapshot() []Listener {
	return append([]Listener(nil), d.listeners...)
}

// KeyDown sends a key press to every listener.
func (d *Dispatcher) KeyDown(key Key) {
	for _, l := range d.snapshot() {
		l.OnKeyDown(key)
	}
}

// KeyUp sends a key release to every listener.
func (d *Dispatcher) KeyUp(key Key) {
	for _, l := range d.snapshot() {
		l.OnKeyUp(key)
	}
}

// PointerDown sends a button press to every listener.
func (d *Dispatcher) PointerDown(e PointerEvent) {
	for _, l := range d.snapshot() {
		l.OnPointerDown(e)
	}
}

// PointerMove sends pointer motion to every listener.
func (d *Dispatcher) PointerMove(e PointerEvent) {
	for _, l := range d.snapshot() {
		l.OnPointerMove(e)
	}
}

// PointerUp sends a button release to every listener.
func (d *Dispatcher) PointerUp(e PointerEvent) {
	for _, l := range d.snapshot() {
		l.OnPointerUp(e)
	}
}

// Wheel sends a scroll to every listener.
func (d *Dispatcher) Wheel(e WheelEvent) {
	for _, l := range d.snapshot() {
		l.OnWheel(e)
	}
}
