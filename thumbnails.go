package galleria

import "github.com/hajimehoshi/ebiten/v2"

// Thumbnail frame colors.
var (
	thumbIdleColor   = RGBA(255, 255, 255, 0.15)
	thumbActiveColor = RGBA(102, 126, 234, 1)
)

const thumbBorder = 3

// generateThumbnails replaces the gallery's children with one frame per
// photo, in photo order. Clicking frame i loads photo i. Thumbnail bitmaps
// are decoded in the background; a failed decode leaves an empty frame.
func (v *Viewer) generateThumbnails() {
	g := v.el.ThumbnailGallery
	old := append([]*Node(nil), g.Children()...)
	g.RemoveChildren()
	for _, c := range old {
		c.Dispose()
	}
	g.Interactable = true
	g.Scrollable = true
	g.ClipChildren = true
	v.thumbs = v.thumbs[:0]

	size := v.opts.ThumbnailSize
	inner := size - 2*thumbBorder
	for i, p := range v.photos {
		frame := NewRect("thumbnail", size, size, thumbIdleColor)
		frame.Interactable = true
		frame.UserData = i
		frame.SetPosition(float64(i)*(size+v.opts.ThumbnailGap), 0)
		frame.OnClick = func(ctx ClickContext) { v.LoadPhoto(ctx.UserData.(int)) }

		pic := NewSprite("thumbnail-image", nil)
		pic.SetSource(p.Source, p.AltText)
		frame.AddChild(pic)
		g.AddChild(frame)
		v.thumbs = append(v.thumbs, frame)

		v.loader.RequestThumbnail(p.Source, int(inner), func(img *ebiten.Image, err error) {
			if pic.IsDisposed() {
				return
			}
			if err != nil {
				v.scene.Logf("thumbnail %s: %v", p.Source, err)
				pic.MarkBroken()
				return
			}
			pic.SetImage(img)
			w, h := pic.NaturalSize()
			pic.SetPosition((size-float64(w))/2, (size-float64(h))/2)
		})
	}
}

// updateThumbnailSelection marks exactly the current photo's thumbnail
// active and scrolls it into view.
func (v *Viewer) updateThumbnailSelection() {
	for i, t := range v.thumbs {
		if i == v.currentIndex {
			t.Color = thumbActiveColor
			ScrollIntoView(t)
		} else {
			t.Color = thumbIdleColor
		}
	}
}

// ThumbnailActive reports whether thumbnail i is marked as the current one.
func (v *Viewer) ThumbnailActive(i int) bool {
	if i < 0 || i >= len(v.thumbs) {
		return false
	}
	return v.thumbs[i].Color == thumbActiveColor
}
