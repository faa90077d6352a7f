package galleria

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// WheelContext carries wheel event data. DeltaY follows the page convention:
// positive values mean the wheel turned down (content scrolls away from the
// reader). Handlers call PreventDefault to stop the scene from scrolling the
// nearest scrollable ancestor.
type WheelContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	DeltaX    float64
	DeltaY    float64
	Modifiers KeyModifiers

	prevented bool
}

// PreventDefault suppresses the default scroll action for this wheel event.
func (c *WheelContext) PreventDefault() {
	c.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (c *WheelContext) DefaultPrevented() bool {
	return c.prevented
}

// nodeIDCounter is a plain counter (no atomic, the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y   float64
	ScaleX float64
	ScaleY float64
	PivotX float64
	PivotY float64

	// Layout box in local units. Solid sprites fill it, containers use it
	// for clipping and scrolling, text nodes use it for their background.
	Width, Height float64

	// Computed
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	// ClipChildren restricts descendants' drawing and hit testing to the
	// node's layout box.
	ClipChildren bool

	// Scrollable nodes offset their children by (-ScrollX, -ScrollY) and
	// receive the default action of unhandled wheel events.
	Scrollable bool
	ScrollX    float64
	ScrollY    float64

	// Ordering. RenderLayer is inherited: a subtree draws at least at its
	// root's layer.
	ZIndex      int
	RenderLayer uint8

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite)
	Color   Color
	image   *ebiten.Image
	Source  string
	AltText string
	// complete mirrors an <img> element: false while a source is pending.
	complete bool
	naturalW int
	naturalH int

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default; zero cost when unused)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnWheel        func(*WheelContext)
	OnUpdate       func(dt float64)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = Color{1, 1, 1, 1}
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders img at its natural size.
// A nil image produces an empty surface that draws nothing until SetImage.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	nodeDefaults(n)
	if img != nil {
		n.SetImage(img)
	}
	return n
}

// NewRect creates a sprite node that fills a w x h box with a solid color.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       Color{1, 1, 1, 1},
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	return n
}

// --- Image surface ---

// SetSource assigns a new source and alt text to an image surface and marks
// it incomplete. The current bitmap keeps drawing until the load resolves.
func (n *Node) SetSource(src, alt string) {
	n.Source = src
	n.AltText = alt
	n.complete = false
}

// SetImage installs a decoded bitmap, marking the surface complete with the
// bitmap's natural size.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
	n.complete = true
	if img == nil {
		n.naturalW, n.naturalH = 0, 0
		return
	}
	b := img.Bounds()
	n.naturalW, n.naturalH = b.Dx(), b.Dy()
}

// MarkBroken records a failed load: the surface is complete but has no
// natural size and no bitmap.
func (n *Node) MarkBroken() {
	n.image = nil
	n.complete = true
	n.naturalW, n.naturalH = 0, 0
}

// Image returns the installed bitmap, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// Complete reports whether the surface's current source has resolved,
// successfully or not.
func (n *Node) Complete() bool {
	return n.complete
}

// NaturalSize returns the intrinsic pixel size of the installed bitmap.
// SetSource leaves it unchanged until the new load resolves; both values
// are zero before any bitmap is installed and after a failed load.
func (n *Node) NaturalSize() (w, h int) {
	return n.naturalW, n.naturalH
}

// SetText replaces a text node's content. No-op on other node types.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil || n.TextBlock.Content == content {
		return
	}
	n.TextBlock.Content = content
	n.TextBlock.layoutDirty = true
}

// Text returns a text node's content, or "" for other node types.
func (n *Node) Text() string {
	if n.TextBlock == nil {
		return ""
	}
	return n.TextBlock.Content
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("galleria: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("galleria: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("galleria: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// IsDescendantOf reports whether n is ancestor or lies in ancestor's subtree.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	return isAncestor(ancestor, n)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.image = nil
	n.TextBlock = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnWheel = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// nodeDimensions returns the node's local content size used for hit testing
// and clipping. Sprites with a bitmap report its natural size; everything
// else reports its layout box, text falling back to the measured size.
func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.image != nil {
			return float64(n.naturalW), float64(n.naturalH)
		}
		return n.Width, n.Height
	case NodeTypeText:
		if n.Width > 0 || n.Height > 0 {
			return n.Width, n.Height
		}
		if n.TextBlock != nil {
			n.TextBlock.layout()
			return n.TextBlock.measuredW + 2*n.TextBlock.Padding, n.TextBlock.measuredH + 2*n.TextBlock.Padding
		}
		return 0, 0
	default:
		return n.Width, n.Height
	}
}
