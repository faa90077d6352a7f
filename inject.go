package galleria

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticKey
)

// syntheticEvent represents a single injected input event. Screen
// coordinates are used, matching what a script author sees in screenshots.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	deltaX, deltaY   float64
	key              KeyEvent
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next frame's input pass.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticPointer, screenX: x, screenY: y,
		pressed: true, button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticPointer, screenX: x, screenY: y,
		pressed: false, button: MouseButtonLeft,
	})
}

// InjectMove queues a hover move (no button held) to the given screen
// coordinates.
func (s *Scene) InjectMove(x, y float64) {
	s.InjectRelease(x, y)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectWheel queues a wheel event at the given screen coordinates. dy uses
// the page convention: positive means wheel down.
func (s *Scene) InjectWheel(x, y, dx, dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticWheel, screenX: x, screenY: y,
		deltaX: dx, deltaY: dy,
	})
}

// InjectKey queues a key press with the given key name.
func (s *Scene) InjectKey(key string) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticKey, key: KeyEvent{Key: key},
	})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same dispatch path as live input. Returns true if an event was
// consumed (live pointer input is skipped for the frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button, 0)
	case syntheticWheel:
		// A wheel turn is preceded by the pointer arriving at its position.
		s.processPointer(evt.screenX, evt.screenY, s.pointer.down, s.pointer.button, 0)
		s.processWheel(evt.screenX, evt.screenY, evt.deltaX, evt.deltaY, 0)
	case syntheticKey:
		s.dispatchKey(evt.key)
	}
	return true
}
