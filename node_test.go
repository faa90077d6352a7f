package galleria

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	img := ebiten.NewImage(32, 16)
	n := NewSprite("spr", img)
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if n.Image() != img {
		t.Error("Image() should return the constructor image")
	}
	if w, h := n.NaturalSize(); w != 32 || h != 16 {
		t.Errorf("NaturalSize = (%d, %d), want (32, 16)", w, h)
	}
	if !n.Complete() {
		t.Error("sprite with an image should be complete")
	}
}

func TestNewSpriteNilImage(t *testing.T) {
	n := NewSprite("empty", nil)
	if n.Complete() {
		t.Error("sprite without an image should not be complete")
	}
	if w, h := n.NaturalSize(); w != 0 || h != 0 {
		t.Errorf("NaturalSize = (%d, %d), want zero", w, h)
	}
}

func TestNewRectDefaults(t *testing.T) {
	c := Color{0.2, 0.4, 0.6, 1}
	n := NewRect("box", 80, 40, c)
	if n.Type != NodeTypeSprite {
		t.Errorf("Type = %d, want NodeTypeSprite", n.Type)
	}
	if n.Color != c {
		t.Errorf("Color = %v, want %v", n.Color, c)
	}
	if w, h := nodeDimensions(n); w != 80 || h != 40 {
		t.Errorf("dimensions = (%v, %v), want (80, 40)", w, h)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hello", nil)
	if n.Type != NodeTypeText {
		t.Errorf("Type = %d, want NodeTypeText", n.Type)
	}
	if n.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", n.Text(), "hello")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.Renderable {
		t.Error("Renderable should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewSprite("c", nil)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Image surface ---

func TestImageSurfaceLifecycle(t *testing.T) {
	n := NewSprite("main", nil)

	n.SetSource("a.jpg", "first")
	if n.Complete() {
		t.Error("surface should be incomplete after SetSource")
	}
	if n.Source != "a.jpg" || n.AltText != "first" {
		t.Errorf("Source/AltText = %q/%q", n.Source, n.AltText)
	}

	n.SetImage(ebiten.NewImage(40, 30))
	if !n.Complete() {
		t.Error("surface should be complete after SetImage")
	}
	if w, h := n.NaturalSize(); w != 40 || h != 30 {
		t.Errorf("NaturalSize = (%d, %d), want (40, 30)", w, h)
	}

	n.SetSource("b.jpg", "second")
	if n.Image() == nil {
		t.Error("previous bitmap should keep drawing while the next source loads")
	}
	if w, h := n.NaturalSize(); w != 40 || h != 30 {
		t.Errorf("NaturalSize while loading = (%d, %d), want the previous (40, 30)", w, h)
	}

	n.MarkBroken()
	if !n.Complete() {
		t.Error("broken surface should report complete")
	}
	if w, h := n.NaturalSize(); w != 0 || h != 0 {
		t.Errorf("broken NaturalSize = (%d, %d), want zero", w, h)
	}
	if n.Image() != nil {
		t.Error("broken surface should have no bitmap")
	}
}

func TestSetTextMarksLayoutDirty(t *testing.T) {
	n := NewText("label", "a", nil)
	n.TextBlock.layoutDirty = false
	n.SetText("a")
	if n.TextBlock.layoutDirty {
		t.Error("same content should not dirty layout")
	}
	n.SetText("b")
	if !n.TextBlock.layoutDirty {
		t.Error("new content should dirty layout")
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on cycle")
		}
	}()
	child.AddChild(parent)
}

func TestAddChildNilPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic removing from wrong parent")
		}
	}()
	p2.RemoveChild(child)
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("children should be detached")
	}
}

func TestIsDescendantOf(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !leaf.IsDescendantOf(root) {
		t.Error("leaf should descend from root")
	}
	if !root.IsDescendantOf(root) {
		t.Error("a node is within its own subtree")
	}
	if root.IsDescendantOf(leaf) {
		t.Error("root should not descend from leaf")
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewContainer("child")
	root.AddChild(parent)
	parent.AddChild(child)

	parent.Dispose()

	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if parent.ID != 0 || child.ID != 0 {
		t.Error("disposed nodes should have ID = 0")
	}
	if root.NumChildren() != 0 {
		t.Error("root should have 0 children after dispose")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewContainer("n")
	n.Dispose()
	n.Dispose()
	if !n.IsDisposed() {
		t.Error("should still be disposed")
	}
}

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)

	child.transformDirty = false
	grandchild.transformDirty = false

	parent.AddChild(child)

	if !child.transformDirty || !grandchild.transformDirty {
		t.Error("subtree should be dirty after AddChild")
	}
}
