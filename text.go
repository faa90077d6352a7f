package galleria

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state. When
// the owning node has a layout box (Width/Height), the text is aligned
// inside it and Background fills the whole box; otherwise the box shrinks to
// the measured text plus Padding.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	Color      Color
	Background Color
	Padding    float64
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes the measured size if dirty.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false

	if tb.Font == nil || tb.Content == "" {
		tb.measuredW = 0
		tb.measuredH = 0
		return
	}
	tb.measuredW, tb.measuredH = tb.Font.MeasureString(tb.Content)
	if lh := tb.lineHeight(); tb.measuredH < lh {
		tb.measuredH = lh
	}
}

// Measured returns the text's measured size, excluding padding.
func (tb *TextBlock) Measured() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// SetFont replaces the font and invalidates the cached layout.
func (tb *TextBlock) SetFont(f Font) {
	tb.Font = f
	tb.layoutDirty = true
}

// contentOffset returns where the text's top-left corner sits inside a box
// of size w x h, honoring Align and Padding. Text is centered vertically
// when the box is taller than the padded text.
func (tb *TextBlock) contentOffset(w, h float64) (x, y float64) {
	tb.layout()
	x = tb.Padding
	switch tb.Align {
	case TextAlignCenter:
		x = (w - tb.measuredW) / 2
	case TextAlignRight:
		x = w - tb.Padding - tb.measuredW
	}
	y = tb.Padding
	if inner := h - 2*tb.Padding; inner > tb.measuredH {
		y += (inner - tb.measuredH) / 2
	}
	return x, y
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("galleria: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

var defaultFonts struct {
	mu     sync.Mutex
	source *text.GoTextFaceSource
	bySize map[float64]*TTFFont
}

// DefaultFont returns the bundled Go Regular face at the given size. Faces
// share one parsed source and are cached per size.
func DefaultFont(size float64) *TTFFont {
	defaultFonts.mu.Lock()
	defer defaultFonts.mu.Unlock()

	if f, ok := defaultFonts.bySize[size]; ok {
		return f
	}
	if defaultFonts.source == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("galleria: bundled font: %v", err))
		}
		defaultFonts.source = src
		defaultFonts.bySize = make(map[float64]*TTFFont)
	}
	f := newTTFFont(defaultFonts.source, size)
	defaultFonts.bySize[size] = f
	return f
}
