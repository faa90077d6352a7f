package galleria

import "time"

// Page colors.
var (
	pageBackground    = RGBA(26, 32, 44, 1)
	viewerBackground  = RGBA(17, 24, 39, 1)
	buttonColor       = RGBA(102, 126, 234, 0.9)
	backButtonColor   = RGBA(118, 75, 162, 0.9)
	galleryBackground = RGBA(255, 255, 255, 0.05)
)

const (
	pageMargin    = 24
	toolbarHeight = 48
	buttonHeight  = 36
	backWidth     = 160
)

// PageConfig configures NewPage.
type PageConfig struct {
	// Font for labels and readouts. Nil means DefaultFont(16).
	Font Font
	// ThumbnailSize matches the viewer's thumbnail edge. Zero means 80.
	ThumbnailSize float64
	// PulseInterval is the time between pulses of the back button. Zero
	// means 10s; negative disables the pulse.
	PulseInterval time.Duration
	// OnBack runs when the back button is clicked.
	OnBack func()
}

// Page is the default viewer layout: a back button above the viewer
// container, which holds the zoom area, readouts and controls, and the
// thumbnail strip below. While fullscreen only the viewer container is
// shown and it fills the screen.
type Page struct {
	scene *Scene
	cfg   PageConfig
	el    Elements

	background *Node
	Back       *Node
	toolbar    *Node
	pulse      *Pulse

	fullscreen bool
}

// NewPage builds the layout under the scene root and keeps it arranged to
// the screen size.
func NewPage(scene *Scene, cfg PageConfig) *Page {
	if cfg.Font == nil {
		cfg.Font = DefaultFont(16)
	}
	if cfg.ThumbnailSize <= 0 {
		cfg.ThumbnailSize = 80
	}
	if cfg.PulseInterval == 0 {
		cfg.PulseInterval = 10 * time.Second
	}

	p := &Page{scene: scene, cfg: cfg}
	root := scene.Root()

	p.background = NewRect("background", 0, 0, pageBackground)
	root.AddChild(p.background)

	p.Back = p.button("back", "Back to index", backWidth, backButtonColor)
	p.Back.OnClick = func(ClickContext) {
		if p.cfg.OnBack != nil {
			p.cfg.OnBack()
		}
	}
	root.AddChild(p.Back)

	viewer := NewRect("viewer-container", 0, 0, viewerBackground)
	viewer.Interactable = true
	root.AddChild(viewer)

	zoom := NewContainer("zoom-container")
	zoom.Interactable = true
	zoom.ClipChildren = true
	viewer.AddChild(zoom)

	main := NewSprite("main-image", nil)
	zoom.AddChild(main)

	info := NewText("zoom-info", "", cfg.Font)
	info.TextBlock.Padding = 8
	info.TextBlock.Background = RGBA(0, 0, 0, 0.6)
	info.SetZIndex(1)
	viewer.AddChild(info)

	indicator := NewText("cursor-indicator", "", cfg.Font)
	indicator.TextBlock.Padding = 8
	indicator.SetZIndex(1)
	viewer.AddChild(indicator)

	p.toolbar = NewContainer("toolbar")
	p.toolbar.Interactable = true
	p.toolbar.SetZIndex(2)
	viewer.AddChild(p.toolbar)

	gallery := NewRect("thumbnail-gallery", 0, 0, galleryBackground)
	root.AddChild(gallery)

	p.el = Elements{
		MainImage:        main,
		ZoomContainer:    zoom,
		ZoomInfo:         info,
		CursorIndicator:  indicator,
		ThumbnailGallery: gallery,
		ViewerContainer:  viewer,
		Prev:             p.button("prev", "<", 48, buttonColor),
		ZoomOut:          p.button("zoom-out", "-", 48, buttonColor),
		Reset:            p.button("reset", "Reset", 80, buttonColor),
		ZoomIn:           p.button("zoom-in", "+", 48, buttonColor),
		Next:             p.button("next", ">", 48, buttonColor),
		FullscreenButton: p.button("fullscreen", "Fullscreen", 120, buttonColor),
	}
	for _, b := range []*Node{p.el.Prev, p.el.ZoomOut, p.el.Reset, p.el.ZoomIn, p.el.Next, p.el.FullscreenButton} {
		p.toolbar.AddChild(b)
	}

	if cfg.PulseInterval > 0 {
		p.pulse = StartPulse(scene, p.Back, cfg.PulseInterval, 200*time.Millisecond, 1.1)
	}

	scene.OnResize(func(w, h int) { p.Arrange(float64(w), float64(h)) })
	if w, h := scene.Size(); w > 0 && h > 0 {
		p.Arrange(float64(w), float64(h))
	}
	return p
}

// button returns an interactable rect with a centered label.
func (p *Page) button(name, label string, w float64, c Color) *Node {
	b := NewRect(name, w, buttonHeight, c)
	b.Interactable = true
	t := NewText(name+"-label", label, p.cfg.Font)
	t.TextBlock.Align = TextAlignCenter
	t.SetSize(w, buttonHeight)
	b.AddChild(t)
	return b
}

// Elements returns the nodes a Viewer binds to.
func (p *Page) Elements() Elements {
	return p.el
}

// Fullscreen reports whether the page is laid out for fullscreen.
func (p *Page) Fullscreen() bool {
	return p.fullscreen
}

// SetFullscreen switches between the windowed and fullscreen layouts. It is
// meant for Options.OnFullscreenChange.
func (p *Page) SetFullscreen(fs bool) {
	p.fullscreen = fs
	w, h := p.scene.Size()
	p.Arrange(float64(w), float64(h))
}

// Arrange lays the page out for a w x h screen.
func (p *Page) Arrange(w, h float64) {
	el := p.el
	p.background.SetSize(w, h)

	thumbH := p.cfg.ThumbnailSize
	var vx, vy, vw, vh float64
	if p.fullscreen {
		vw, vh = w, h
	} else {
		vx, vy = pageMargin, pageMargin+buttonHeight+16
		vw = w - 2*pageMargin
		vh = h - vy - pageMargin - thumbH - 16
	}
	vw, vh = max(vw, 0), max(vh, 0)

	p.Back.Visible = !p.fullscreen
	el.ThumbnailGallery.Visible = !p.fullscreen

	// The back button pulses about its center.
	p.Back.SetPivot(backWidth/2, buttonHeight/2)
	p.Back.SetPosition(pageMargin+backWidth/2, pageMargin+buttonHeight/2)

	el.ViewerContainer.SetPosition(vx, vy)
	el.ViewerContainer.SetSize(vw, vh)

	zh := max(vh-toolbarHeight, 0)
	el.ZoomContainer.SetSize(vw, zh)
	el.ZoomInfo.SetPosition(12, 12)
	_, ih := nodeDimensions(el.ZoomInfo)
	el.CursorIndicator.SetPosition(12, 12+ih+8)

	// Center the toolbar's buttons under the zoom area.
	const gap = 8.0
	total := -gap
	for _, b := range p.toolbar.Children() {
		total += b.Width + gap
	}
	x := (vw - total) / 2
	p.toolbar.SetPosition(0, zh)
	p.toolbar.SetSize(vw, toolbarHeight)
	for _, b := range p.toolbar.Children() {
		b.SetPosition(x, (toolbarHeight-buttonHeight)/2)
		x += b.Width + gap
	}

	el.ThumbnailGallery.SetPosition(pageMargin, h-pageMargin-thumbH)
	el.ThumbnailGallery.SetSize(max(w-2*pageMargin, 0), thumbH)
}

// Close stops the back button pulse.
func (p *Page) Close() {
	if p.pulse != nil {
		p.pulse.Stop()
	}
}
