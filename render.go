package galleria

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // DrawImage of a bitmap or solid box
	CommandText                      // text/v2 Draw
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type        CommandType
	Transform   [6]float64
	Color       Color
	RenderLayer uint8
	treeOrder   int // assigned during traversal for stable sort

	image *ebiten.Image // bitmap, or WhitePixel scaled to the box
	text  *TextBlock
	clip  Rect
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible, renderable nodes. clip is the world-space
// rectangle inherited from ClipChildren ancestors.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, layer uint8, clip Rect, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	layer = max(layer, n.RenderLayer)

	if n.Renderable && !clip.Empty() {
		switch n.Type {
		case NodeTypeSprite:
			s.emitSprite(n, layer, clip, treeOrder)
		case NodeTypeText:
			s.emitText(n, layer, clip, treeOrder)
		}
	}

	if len(n.children) == 0 {
		return
	}
	if n.ClipChildren {
		clip = clip.Intersect(boundsOf(n.worldTransform, n.Width, n.Height))
	}
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	space := childSpace(n, n.worldTransform)
	for _, child := range children {
		s.traverse(child, space, n.worldAlpha, recompute, layer, clip, treeOrder)
	}
}

func (s *Scene) emitSprite(n *Node, layer uint8, clip Rect, treeOrder *int) {
	cmd := RenderCommand{
		Type:        CommandSprite,
		Transform:   n.worldTransform,
		Color:       Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
		RenderLayer: layer,
		clip:        clip,
	}
	switch {
	case n.image != nil:
		cmd.image = n.image
	case n.Width > 0 && n.Height > 0 && n.Color.A > 0:
		cmd.image = WhitePixel
		cmd.Transform = multiplyAffine(n.worldTransform, [6]float64{n.Width, 0, 0, n.Height, 0, 0})
	default:
		return
	}
	*treeOrder++
	cmd.treeOrder = *treeOrder
	s.commands = append(s.commands, cmd)
}

func (s *Scene) emitText(n *Node, layer uint8, clip Rect, treeOrder *int) {
	tb := n.TextBlock
	if tb == nil {
		return
	}
	w, h := nodeDimensions(n)
	if tb.Background.A > 0 && w > 0 && h > 0 {
		*treeOrder++
		bg := tb.Background
		s.commands = append(s.commands, RenderCommand{
			Type:        CommandSprite,
			Transform:   multiplyAffine(n.worldTransform, [6]float64{w, 0, 0, h, 0, 0}),
			Color:       Color{bg.R, bg.G, bg.B, bg.A * n.worldAlpha},
			RenderLayer: layer,
			treeOrder:   *treeOrder,
			image:       WhitePixel,
			clip:        clip,
		})
	}
	if tb.Font == nil || tb.Content == "" {
		return
	}
	ox, oy := tb.contentOffset(w, h)
	*treeOrder++
	s.commands = append(s.commands, RenderCommand{
		Type:        CommandText,
		Transform:   multiplyAffine(n.worldTransform, [6]float64{1, 0, 0, 1, ox, oy}),
		Color:       Color{tb.Color.R, tb.Color.G, tb.Color.B, tb.Color.A * n.worldAlpha},
		RenderLayer: layer,
		treeOrder:   *treeOrder,
		text:        tb,
		clip:        clip,
	})
}

// submit draws the sorted commands onto target and returns the number of
// draw calls issued.
func (s *Scene) submit(target *ebiten.Image) int {
	calls := 0
	for i := range s.commands {
		cmd := &s.commands[i]
		dst := target
		r := image.Rect(
			int(math.Floor(cmd.clip.X)), int(math.Floor(cmd.clip.Y)),
			int(math.Ceil(cmd.clip.X+cmd.clip.Width)), int(math.Ceil(cmd.clip.Y+cmd.clip.Height)),
		)
		if r != target.Bounds() {
			dst = target.SubImage(r).(*ebiten.Image)
		}
		var geo ebiten.GeoM
		m := cmd.Transform
		geo.SetElement(0, 0, m[0])
		geo.SetElement(1, 0, m[1])
		geo.SetElement(0, 1, m[2])
		geo.SetElement(1, 1, m[3])
		geo.SetElement(0, 2, m[4])
		geo.SetElement(1, 2, m[5])

		switch cmd.Type {
		case CommandSprite:
			var op ebiten.DrawImageOptions
			op.GeoM = geo
			op.ColorScale.Scale(float32(cmd.Color.R), float32(cmd.Color.G), float32(cmd.Color.B), 1)
			op.ColorScale.ScaleAlpha(float32(cmd.Color.A))
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(cmd.image, &op)
			calls++
		case CommandText:
			f, ok := cmd.text.Font.(*TTFFont)
			if !ok {
				continue
			}
			op := &text.DrawOptions{}
			op.GeoM = geo
			op.ColorScale.Scale(float32(cmd.Color.R), float32(cmd.Color.G), float32(cmd.Color.B), 1)
			op.ColorScale.ScaleAlpha(float32(cmd.Color.A))
			op.LineSpacing = cmd.text.lineHeight()
			text.Draw(dst, cmd.text.Content, f.face, op)
			calls++
		}
	}
	return calls
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
