package galleria

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Status messages shown by the cursor indicator.
const (
	IdleStatus   = "Hover over the image to zoom"
	ActiveStatus = "Zoom active - use the mouse wheel"
)

// Cursor indicator styles.
var (
	idleStatusColor   = RGBA(102, 126, 234, 0.9)
	activeStatusColor = RGBA(34, 197, 94, 0.9)
)

const (
	idleStatusAlpha   = 0.7
	activeStatusAlpha = 1.0
)

// ZoomConfig bounds the zoom level. Zero fields take their defaults.
// Bounds that exclude 1 are allowed; the viewer then starts and resets at
// the bound nearest to 1.
type ZoomConfig struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultZoomConfig returns Min 1, Max 5, Step 0.2.
func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{Min: 1, Max: 5, Step: 0.2}
}

// Options configures a Viewer. The zero value is usable.
type Options struct {
	// Zoom bounds; zero fields take DefaultZoomConfig's values.
	Zoom ZoomConfig
	// SettleDelay is how long ResetZoom waits before remeasuring the image.
	// Zero means 100ms.
	SettleDelay time.Duration
	// Platform provides fullscreen. Nil means the Ebitengine window.
	Platform Platform
	// Loader decodes photos and thumbnails. Nil means a FileDecoder loader
	// with two workers, owned and closed by the viewer.
	Loader *Loader
	// ThumbnailSize is the edge of a square thumbnail. Zero means 80.
	ThumbnailSize float64
	// ThumbnailGap is the space between thumbnails. Zero means 8.
	ThumbnailGap float64
	// OnFullscreenChange runs when the platform's fullscreen state changes,
	// before the image is remeasured. Layouts use it to reflow.
	OnFullscreenChange func(fullscreen bool)
	// Events receives viewer transitions.
	Events ViewerEventSink
}

// home is the zoom level a fresh or reset view shows: 1, clamped to the
// bounds.
func (c ZoomConfig) home() float64 {
	return clamp(1, c.Min, c.Max)
}

func (o *Options) setDefaults() {
	def := DefaultZoomConfig()
	if o.Zoom.Min <= 0 {
		o.Zoom.Min = def.Min
	}
	if o.Zoom.Max <= 0 {
		o.Zoom.Max = def.Max
	}
	if o.Zoom.Max < o.Zoom.Min {
		o.Zoom.Max = o.Zoom.Min
	}
	if o.Zoom.Step <= 0 {
		o.Zoom.Step = def.Step
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = 100 * time.Millisecond
	}
	if o.ThumbnailSize <= 0 {
		o.ThumbnailSize = 80
	}
	if o.ThumbnailGap <= 0 {
		o.ThumbnailGap = 8
	}
}

// Viewer browses a fixed list of photos one at a time with zoom, focal
// point, thumbnails and fullscreen. All state is owned by the scene's update
// loop; every method must be called from it.
type Viewer struct {
	scene  *Scene
	el     Elements
	opts   Options
	loader *Loader
	owned  bool // loader created by New

	photos       []Photo
	currentIndex int
	zoom         float64
	isHovering   bool
	isFullscreen bool
	focalX       float64
	focalY       float64

	// loadSeq identifies the latest LoadPhoto; completions carrying an
	// older value are discarded.
	loadSeq uint64

	// Fitted layout of the main image inside the zoom container.
	fit        float64
	boxX, boxY float64

	thumbs []*Node
	keys   CallbackHandle
}

// New binds a viewer to el and loads the first photo. It fails only when an
// element is missing. An empty photo list yields an inert viewer.
func New(scene *Scene, photos []Photo, el Elements, opts Options) (*Viewer, error) {
	if err := el.validate(); err != nil {
		return nil, err
	}
	opts.setDefaults()

	v := &Viewer{
		scene:        scene,
		el:           el,
		opts:         opts,
		loader:       opts.Loader,
		photos:       append([]Photo(nil), photos...),
		currentIndex: -1,
		zoom:         opts.Zoom.home(),
		focalX:       50,
		focalY:       50,
		fit:          1,
	}
	if v.loader == nil {
		v.loader = NewLoader(FileDecoder{}, 2)
		v.owned = true
	}
	scene.AddLoader(v.loader)
	if v.opts.Platform == nil {
		v.opts.Platform = NewEbitenPlatform(el.ViewerContainer)
	}
	v.isFullscreen = v.opts.Platform.FullscreenElement() != nil

	v.bind()
	v.generateThumbnails()
	v.setZoomText()
	v.setStatus(false, IdleStatus)

	if len(v.photos) > 0 {
		v.LoadPhoto(0)
	}
	return v, nil
}

func (v *Viewer) bind() {
	el := v.el
	for _, n := range []*Node{el.ZoomIn, el.ZoomOut, el.Reset, el.Prev, el.Next, el.FullscreenButton, el.MainImage} {
		n.Interactable = true
	}
	el.ZoomIn.OnClick = func(ClickContext) { v.ZoomIn() }
	el.ZoomOut.OnClick = func(ClickContext) { v.ZoomOut() }
	el.Reset.OnClick = func(ClickContext) { v.ResetZoom() }
	el.Prev.OnClick = func(ClickContext) { v.PreviousPhoto() }
	el.Next.OnClick = func(ClickContext) { v.NextPhoto() }
	el.FullscreenButton.OnClick = func(ClickContext) { v.ToggleFullscreen() }

	el.MainImage.OnPointerEnter = func(PointerContext) { v.startHover() }
	el.MainImage.OnPointerLeave = func(PointerContext) { v.stopHover() }
	el.MainImage.OnPointerMove = v.updateHover
	el.MainImage.OnWheel = v.handleWheel

	v.keys = v.scene.OnKey(v.HandleKey)
	v.scene.AddPollHook(v.syncFullscreen)
	v.scene.OnResize(func(int, int) { v.AdjustImageSize() })
}

// Close releases the viewer's keyboard binding and, if New created the
// loader, stops its workers.
func (v *Viewer) Close() {
	v.keys.Remove()
	if v.owned {
		v.loader.Close()
	}
}

// --- Loading ---

// LoadPhoto makes photos[index] current. Out-of-range indices are ignored.
// The image is decoded asynchronously; when it arrives the image is fitted,
// zoom is reset and the thumbnail selection follows, all in one step. A load
// superseded by a later LoadPhoto is discarded, and a failed load leaves the
// previous layout in place with the surface marked broken.
func (v *Viewer) LoadPhoto(index int) {
	if index < 0 || index >= len(v.photos) {
		return
	}
	v.currentIndex = index
	p := v.photos[index]
	v.el.MainImage.SetSource(p.Source, p.AltText)

	v.loadSeq++
	token := v.loadSeq
	v.loader.Request(p.Source, func(img *ebiten.Image, err error) {
		if token != v.loadSeq {
			v.scene.Logf("discarding stale load of %s", p.Source)
			return
		}
		if err != nil {
			v.scene.Logf("load %s: %v", p.Source, err)
			v.el.MainImage.MarkBroken()
			return
		}
		v.el.MainImage.SetImage(img)
		v.AdjustImageSize()
		v.ResetZoom()
		v.updateThumbnailSelection()
		v.emit(PhotoLoaded)
	})
}

// NextPhoto advances to the next photo, wrapping to the first.
func (v *Viewer) NextPhoto() {
	if len(v.photos) == 0 {
		return
	}
	v.LoadPhoto((v.currentIndex + 1) % len(v.photos))
}

// PreviousPhoto steps back to the previous photo, wrapping to the last.
func (v *Viewer) PreviousPhoto() {
	if len(v.photos) == 0 {
		return
	}
	n := len(v.photos)
	v.LoadPhoto((v.currentIndex - 1 + n) % n)
}

// --- Keyboard ---

// HandleKey runs the action bound to ev.Key. Modifiers are ignored and
// unbound keys do nothing.
func (v *Viewer) HandleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyArrowLeft:
		v.PreviousPhoto()
	case KeyArrowRight:
		v.NextPhoto()
	case "+", "=":
		v.ZoomIn()
	case "-":
		v.ZoomOut()
	case "0":
		v.ResetZoom()
	case "f", "F":
		v.ToggleFullscreen()
	case KeyEscape:
		v.ExitFullscreen()
	}
}

// --- Accessors ---

// Photos returns the photo list. It must not be modified.
func (v *Viewer) Photos() []Photo { return v.photos }

// CurrentIndex returns the index of the current photo, or -1 when there are
// no photos.
func (v *Viewer) CurrentIndex() int { return v.currentIndex }

// Zoom returns the zoom level.
func (v *Viewer) Zoom() float64 { return v.zoom }

// FocalPoint returns the zoom origin as percentages of the displayed image.
func (v *Viewer) FocalPoint() (x, y float64) { return v.focalX, v.focalY }

// Hovering reports whether the pointer is over the main image.
func (v *Viewer) Hovering() bool { return v.isHovering }

// Fullscreen reports the last observed platform fullscreen state.
func (v *Viewer) Fullscreen() bool { return v.isFullscreen }
