package galleria

import (
	"testing"
)

// fixedFont is a monospace test font: every rune is 10 wide and lines are
// 20 tall.
type fixedFont struct {
	measures int
}

func (f *fixedFont) MeasureString(s string) (float64, float64) {
	f.measures++
	return float64(len([]rune(s))) * 10, 20
}

func (f *fixedFont) LineHeight() float64 { return 20 }

// --- Fonts ---

func TestLoadTTFFont_InvalidData(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a font"), 16); err == nil {
		t.Fatal("expected error for invalid TTF data")
	}
}

func TestDefaultFont_CachedPerSize(t *testing.T) {
	a := DefaultFont(14)
	b := DefaultFont(14)
	c := DefaultFont(20)
	if a != b {
		t.Error("same size should return the cached font")
	}
	if a == c {
		t.Error("different sizes should return different fonts")
	}
	if a.LineHeight() <= 0 {
		t.Errorf("LineHeight = %f, want > 0", a.LineHeight())
	}
	if c.Size() != 20 {
		t.Errorf("Size = %f, want 20", c.Size())
	}
	w, _ := a.MeasureString("Zoom: 100%")
	if w <= 0 {
		t.Errorf("measured width = %f, want > 0", w)
	}
}

// --- Layout ---

func TestTextBlock_LayoutCaching(t *testing.T) {
	f := &fixedFont{}
	n := NewText("label", "abc", f)

	w, h := n.TextBlock.Measured()
	if w != 30 || h != 20 {
		t.Fatalf("Measured = %f,%f, want 30,20", w, h)
	}
	n.TextBlock.Measured()
	if f.measures != 1 {
		t.Errorf("measures = %d, want 1 (cached)", f.measures)
	}

	n.SetText("abcd")
	w, _ = n.TextBlock.Measured()
	if w != 40 || f.measures != 2 {
		t.Errorf("after SetText: w = %f measures = %d, want 40 and 2", w, f.measures)
	}

	n.SetText("abcd")
	n.TextBlock.Measured()
	if f.measures != 2 {
		t.Error("setting identical content should not invalidate layout")
	}
}

func TestTextBlock_NilFont(t *testing.T) {
	n := NewText("label", "hello", nil)
	w, h := n.TextBlock.Measured()
	if w != 0 || h != 0 {
		t.Errorf("Measured = %f,%f, want 0,0 without a font", w, h)
	}
	if n.TextBlock.lineHeight() != 0 {
		t.Error("lineHeight should be 0 without a font")
	}
}

func TestTextBlock_LineHeightOverride(t *testing.T) {
	tb := &TextBlock{Font: &fixedFont{}, LineHeight: 32}
	if got := tb.lineHeight(); got != 32 {
		t.Errorf("lineHeight = %f, want 32", got)
	}
}

func TestTextBlock_ContentOffset(t *testing.T) {
	tests := []struct {
		name    string
		align   TextAlign
		padding float64
		w, h    float64
		wantX   float64
		wantY   float64
	}{
		{"left no box", TextAlignLeft, 5, 0, 0, 5, 5},
		{"left tall box", TextAlignLeft, 5, 200, 50, 5, 15},
		{"center", TextAlignCenter, 5, 200, 30, 85, 5},
		{"right", TextAlignRight, 5, 200, 30, 165, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &TextBlock{Content: "abc", Font: &fixedFont{}, Align: tt.align, Padding: tt.padding, layoutDirty: true}
			x, y := tb.contentOffset(tt.w, tt.h)
			assertNear(t, "x", x, tt.wantX)
			assertNear(t, "y", y, tt.wantY)
		})
	}
}

func TestTextNode_DimensionsIncludePadding(t *testing.T) {
	n := NewText("label", "abcd", &fixedFont{})
	n.TextBlock.Padding = 8

	w, h := nodeDimensions(n)
	if w != 56 || h != 36 {
		t.Errorf("dimensions = %f,%f, want 56,36", w, h)
	}

	n.SetSize(300, 40)
	w, h = nodeDimensions(n)
	if w != 300 || h != 40 {
		t.Errorf("boxed dimensions = %f,%f, want 300,40", w, h)
	}
}

// --- Scene graph ---

func TestTextNode_EmitsBackgroundAndText(t *testing.T) {
	s := NewScene()
	n := NewText("label", "abc", &fixedFont{})
	n.TextBlock.Background = RGBA(102, 126, 234, 0.9)
	n.TextBlock.Padding = 10
	n.X, n.Y = 50, 60
	s.Root().AddChild(n)

	traverseScene(s)

	if len(s.commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(s.commands))
	}
	bg, txt := s.commands[0], s.commands[1]
	if bg.Type != CommandSprite || txt.Type != CommandText {
		t.Fatalf("types = %d,%d, want sprite then text", bg.Type, txt.Type)
	}
	// Background fills measured text + padding.
	assertNear(t, "bg width", bg.Transform[0], 50)
	assertNear(t, "bg height", bg.Transform[3], 40)
	assertNear(t, "text x", txt.Transform[4], 60)
	assertNear(t, "text y", txt.Transform[5], 70)
	if bg.treeOrder >= txt.treeOrder {
		t.Error("background must draw before the text")
	}
}

func TestTextNode_InheritsAlpha(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	n := NewText("label", "abc", &fixedFont{})
	parent.AddChild(n)
	s.Root().AddChild(parent)

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	assertNear(t, "alpha", s.commands[0].Color.A, 0.5)
}

func TestTextNode_EmptyContentDrawsNothing(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewText("label", "", &fixedFont{}))

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}
