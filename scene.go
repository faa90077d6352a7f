package galleria

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	NodeID    uint32
	NodeName  string
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Wheel fields (valid for EventWheel)
	DeltaX float64
	DeltaY float64
	// Key is the key name (valid for EventKeyDown)
	Key string
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, input state, the
// update-loop queues (timers, tweens, loaders) and render buffers.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// ScreenshotDir is the directory Screenshot writes PNG files into.
	ScreenshotDir string

	width, height int
	resize        []func(w, h int)
	updateFunc    func() error
	pollHooks     []func()
	loaders       []*Loader

	timers []*Timer
	tweens []*TweenGroup

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand

	// Input state
	input       InputSource
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticEvent
	keyBuf      []KeyEvent

	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container. The scene
// has no live input until SetInputSource is called (Run installs Ebitengine
// input); injected input works without one.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update runs one frame of the update loop with a fixed step of 1/TPS.
func (s *Scene) Update() {
	s.step(1.0 / float64(ebiten.TPS()))
}

// step drains every per-frame queue in order: scripted test steps, pointer
// and wheel input, key input, poll hooks, load completions, timers, tweens
// and finally per-node OnUpdate callbacks.
func (s *Scene) step(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// Refresh world transforms first so hit testing has accurate positions.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	s.processInput()
	s.processKeys()

	for _, fn := range s.pollHooks {
		fn()
	}
	for _, l := range s.loaders {
		l.Poll()
	}

	s.updateTimers(float32(dt))
	s.updateTweens(float32(dt))
	updateNodes(s.root, dt)
}

// updateNodes calls OnUpdate depth-first on visible nodes.
func updateNodes(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		updateNodes(child, dt)
	}
}

// Draw traverses the scene tree, emits render commands, sorts them, and
// submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	treeOrder := 0
	b := screen.Bounds()
	s.traverse(s.root, identityTransform, 1.0, false, 0, Rect{
		X: float64(b.Min.X), Y: float64(b.Min.Y),
		Width: float64(b.Dx()), Height: float64(b.Dy()),
	}, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	calls := s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = calls
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetSize records the logical screen size. Resize handlers run only when
// the size actually changes.
func (s *Scene) SetSize(w, h int) {
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.root.SetSize(float64(w), float64(h))
	for _, fn := range s.resize {
		fn(w, h)
	}
}

// Size returns the logical screen size last passed to SetSize.
func (s *Scene) Size() (w, h int) {
	return s.width, s.height
}

// OnResize registers fn to run whenever the screen size changes. Handlers
// run in registration order.
func (s *Scene) OnResize(fn func(w, h int)) {
	s.resize = append(s.resize, fn)
}

// AddPollHook registers fn to run once per frame after input dispatch. Hooks
// are how external state (such as the platform's fullscreen status) is
// observed from the update loop.
func (s *Scene) AddPollHook(fn func()) {
	s.pollHooks = append(s.pollHooks, fn)
}

// AddLoader attaches a Loader whose completions are delivered on this
// scene's update loop.
func (s *Scene) AddLoader(l *Loader) {
	s.loaders = append(s.loaders, l)
}

// SetUpdateFunc sets a callback Run invokes after every Update. A non-nil
// error ends the game loop; return ebiten.Termination for a clean exit.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetInputSource installs the live input source. Nil disables live input.
func (s *Scene) SetInputSource(src InputSource) {
	s.input = src
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and per-frame
// timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Debug reports whether debug mode is on.
func (s *Scene) Debug() bool {
	return s.debug
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
