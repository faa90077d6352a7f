package galleria

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyEvent is a key press. Key holds the produced character for printable
// keys ("+", "f", "F", "0") and a name for the rest ("ArrowLeft", "Escape").
type KeyEvent struct {
	Key       string
	Modifiers KeyModifiers
}

// Key names for non-printable keys.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyEscape     = "Escape"
	KeyEnter      = "Enter"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
)

// namedKeys maps Ebitengine keys that produce no character to key names.
var namedKeys = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  KeyArrowLeft,
	ebiten.KeyArrowRight: KeyArrowRight,
	ebiten.KeyArrowUp:    KeyArrowUp,
	ebiten.KeyArrowDown:  KeyArrowDown,
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeyBackspace:  KeyBackspace,
	ebiten.KeyDelete:     KeyDelete,
	ebiten.KeyHome:       KeyHome,
	ebiten.KeyEnd:        KeyEnd,
	ebiten.KeyPageUp:     KeyPageUp,
	ebiten.KeyPageDown:   KeyPageDown,
}

// OnKey registers a scene-level callback for key presses.
func (s *Scene) OnKey(fn func(KeyEvent)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.key = append(s.handlers.key, keyHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventKeyDown}
}

// processKeys reads this frame's live key presses and dispatches them.
func (s *Scene) processKeys() {
	if s.input == nil {
		return
	}
	s.keyBuf = s.input.AppendKeys(s.keyBuf[:0])
	for _, ev := range s.keyBuf {
		s.dispatchKey(ev)
	}
}

func (s *Scene) dispatchKey(ev KeyEvent) {
	for _, h := range s.handlers.key {
		h.fn(ev)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: EventKeyDown, Key: ev.Key, Modifiers: ev.Modifiers,
	}, nil)
}

// --- Ebitengine input ---

// EbitenInput reads live input from Ebitengine. It must only be used from
// the game loop.
type EbitenInput struct {
	keys  []ebiten.Key
	chars []rune
}

// CursorPosition returns the mouse position in screen pixels.
func (in *EbitenInput) CursorPosition() (x, y float64) {
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my)
}

// PointerPressed reports whether a mouse button is held, preferring left,
// then right, then middle.
func (in *EbitenInput) PointerPressed() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

// Wheel returns this frame's wheel movement. Ebitengine reports wheel-up as
// positive Y, so the sign is flipped to the page convention.
func (in *EbitenInput) Wheel() (dx, dy float64) {
	xoff, yoff := ebiten.Wheel()
	return -xoff, -yoff
}

// AppendKeys appends this frame's key presses: named keys first, then the
// characters typed, which already reflect Shift and the keyboard layout.
func (in *EbitenInput) AppendKeys(keys []KeyEvent) []KeyEvent {
	mods := in.Modifiers()
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if name, ok := namedKeys[k]; ok {
			keys = append(keys, KeyEvent{Key: name, Modifiers: mods})
		}
	}
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		keys = append(keys, KeyEvent{Key: string(r), Modifiers: mods})
	}
	return keys
}

// Modifiers reads the current keyboard modifier state.
func (in *EbitenInput) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
