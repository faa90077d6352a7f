package galleria

// wheelLineHeight is the scroll distance in pixels of one wheel notch when
// the default scroll action runs.
const wheelLineHeight = 40.0

// InputSource supplies live pointer, wheel and keyboard state once per frame.
// Wheel deltas follow the page convention: positive DeltaY means the wheel
// turned down.
type InputSource interface {
	CursorPosition() (x, y float64)
	PointerPressed() (pressed bool, button MouseButton)
	Wheel() (dx, dy float64)
	AppendKeys(keys []KeyEvent) []KeyEvent
	Modifiers() KeyModifiers
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node       // last node the pointer was hovering over (for enter/leave)
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type wheelHandler struct {
	id uint32
	fn func(*WheelContext)
}

type keyHandler struct {
	id uint32
	fn func(KeyEvent)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	wheel        []wheelHandler
	key          []keyHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, func(p pointerHandler) bool { return p.id == h.id })
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, func(p pointerHandler) bool { return p.id == h.id })
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, func(p pointerHandler) bool { return p.id == h.id })
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, func(p pointerHandler) bool { return p.id == h.id })
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, func(p pointerHandler) bool { return p.id == h.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, func(c clickHandler) bool { return c.id == h.id })
	case EventWheel:
		h.reg.wheel = removeHandler(h.reg.wheel, func(w wheelHandler) bool { return w.id == h.id })
	case EventKeyDown:
		h.reg.key = removeHandler(h.reg.key, func(k keyHandler) bool { return k.id == h.id })
	}
}

// removeHandler deletes the first entry matching and returns the shortened
// slice. The vacated tail slot is zeroed so the closure can be collected.
func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

func (r *handlerRegistry) id() uint32 {
	r.nextID++
	return r.nextID
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.pointerEnter = append(s.handlers.pointerEnter, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerEnter}
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired when the pointer leaves a node (moves to a different node or to empty space).
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.pointerLeave = append(s.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerLeave}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnWheel registers a scene-level callback for wheel events. Scene-level
// handlers run before node handlers and may also call PreventDefault.
func (s *Scene) OnWheel(fn func(*WheelContext)) CallbackHandle {
	id := s.handlers.id()
	s.handlers.wheel = append(s.handlers.wheel, wheelHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventWheel}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the box from node dimensions.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}

	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}

	if len(n.children) == 0 {
		return buf
	}

	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// clippedOut reports whether (wx, wy) falls outside the box of any ancestor
// that clips its children.
func clippedOut(n *Node, wx, wy float64) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if !p.ClipChildren {
			continue
		}
		lx, ly := transformPoint(invertAffine(p.worldTransform), wx, wy)
		if lx < 0 || ly < 0 || lx > p.Width || ly > p.Height {
			return true
		}
	}
	return false
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := transformPoint(invertAffine(n.worldTransform), worldX, worldY)
		if nodeContainsLocal(n, lx, ly) && !clippedOut(n, worldX, worldY) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from the update loop to handle pointer and wheel
// input. A queued synthetic event replaces live input for the frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.input == nil {
		return
	}
	mods := s.input.Modifiers()
	x, y := s.input.CursorPosition()
	pressed, button := s.input.PointerPressed()
	s.processPointer(x, y, pressed, button, mods)

	if dx, dy := s.input.Wheel(); dx != 0 || dy != 0 {
		s.processWheel(x, y, dx, dy, mods)
	}
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	target := s.hitTest(wx, wy)
	moved := wx != ps.lastX || wy != ps.lastY

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, wx, wy, button, mods)
		}
		ps.hoverNode = target
		if target != nil {
			s.firePointer(EventPointerEnter, target, wx, wy, button, mods)
		}
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointer(EventPointerDown, target, wx, wy, button, mods)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, wx, wy, ps.button, mods)
		}
		s.firePointer(EventPointerUp, target, wx, wy, ps.button, mods)
		ps.down = false
		ps.hitNode = nil
	case moved:
		s.firePointer(EventPointerMove, target, wx, wy, button, mods)
	}
	ps.lastX = wx
	ps.lastY = wy
}

// processWheel dispatches a wheel event to scene handlers, then to the node
// under the pointer and its ancestors. Unless a handler prevents it, the
// nearest scrollable ancestor is scrolled.
func (s *Scene) processWheel(wx, wy, dx, dy float64, mods KeyModifiers) {
	target := s.hitTest(wx, wy)
	ctx := &WheelContext{
		Node: target, GlobalX: wx, GlobalY: wy,
		DeltaX: dx, DeltaY: dy, Modifiers: mods,
	}
	if target != nil {
		ctx.LocalX, ctx.LocalY = target.WorldToLocal(wx, wy)
	}
	for _, h := range s.handlers.wheel {
		h.fn(ctx)
	}
	for n := target; n != nil; n = n.Parent {
		if n.OnWheel != nil {
			n.OnWheel(ctx)
		}
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: EventWheel, GlobalX: wx, GlobalY: wy,
		LocalX: ctx.LocalX, LocalY: ctx.LocalY,
		DeltaX: dx, DeltaY: dy, Modifiers: mods,
	}, target)

	if ctx.prevented {
		return
	}
	for n := target; n != nil; n = n.Parent {
		if n.Scrollable {
			scrollBy(n, dx, dy)
			return
		}
	}
}

// scrollBy applies the default wheel action to a scrollable node, clamping
// the offset to its content extent. A vertical wheel drives horizontal-only
// scrollers.
func scrollBy(n *Node, dx, dy float64) {
	cw, ch := contentExtent(n)
	maxX := max(0, cw-n.Width)
	maxY := max(0, ch-n.Height)
	if maxY == 0 && dx == 0 {
		dx, dy = dy, 0
	}
	n.SetScroll(
		clamp(n.ScrollX+dx*wheelLineHeight, 0, maxX),
		clamp(n.ScrollY+dy*wheelLineHeight, 0, maxY),
	)
}

// contentExtent returns the far edges of n's direct children in n's local space.
func contentExtent(n *Node) (w, h float64) {
	for _, c := range n.children {
		cw, ch := nodeDimensions(c)
		w = max(w, c.X+cw*c.ScaleX)
		h = max(h, c.Y+ch*c.ScaleY)
	}
	return w, h
}

// ScrollIntoView adjusts the nearest scrollable ancestor of n so that n's
// box is fully visible along that ancestor's scroll axes.
func ScrollIntoView(n *Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		if !p.Scrollable {
			continue
		}
		// Position of n relative to p's content origin.
		x, y := 0.0, 0.0
		for c := n; c != p; c = c.Parent {
			x += c.X
			y += c.Y
		}
		w, h := nodeDimensions(n)
		w *= n.ScaleX
		h *= n.ScaleY
		sx, sy := p.ScrollX, p.ScrollY
		if x < sx {
			sx = x
		} else if x+w > sx+p.Width {
			sx = x + w - p.Width
		}
		if y < sy {
			sy = y
		} else if y+h > sy+p.Height {
			sy = y + h - p.Height
		}
		if sx != p.ScrollX || sy != p.ScrollY {
			p.SetScroll(max(0, sx), max(0, sy))
		}
		return
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(typ EventType, node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	var lx, ly float64
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		userData = node.UserData
	}
	ctx := PointerContext{
		Node: node, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	}

	var scene []pointerHandler
	var nodeFn func(PointerContext)
	switch typ {
	case EventPointerDown:
		scene = s.handlers.pointerDown
		if node != nil {
			nodeFn = node.OnPointerDown
		}
	case EventPointerUp:
		scene = s.handlers.pointerUp
		if node != nil {
			nodeFn = node.OnPointerUp
		}
	case EventPointerMove:
		scene = s.handlers.pointerMove
		if node != nil {
			nodeFn = node.OnPointerMove
		}
	case EventPointerEnter:
		scene = s.handlers.pointerEnter
		if node != nil {
			nodeFn = node.OnPointerEnter
		}
	case EventPointerLeave:
		scene = s.handlers.pointerLeave
		if node != nil {
			nodeFn = node.OnPointerLeave
		}
	}

	// Scene-level handlers first.
	for _, h := range scene {
		h.fn(ctx)
	}
	if nodeFn != nil {
		nodeFn(ctx)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: typ, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	}, node)
}

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	var lx, ly float64
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		userData = node.UserData
	}
	ctx := ClickContext{
		Node: node, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: EventClick, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	}, node)
}

// --- ECS bridge ---

// emitInteractionEvent forwards ev to the entity store. Pointer events with
// no target node are not forwarded; key events never have one.
func (s *Scene) emitInteractionEvent(ev InteractionEvent, node *Node) {
	if s.store == nil {
		return
	}
	if node == nil && ev.Type != EventKeyDown {
		return
	}
	if node != nil {
		ev.NodeID = node.ID
		ev.NodeName = node.Name
	}
	s.store.EmitEvent(ev)
}
