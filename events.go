package galleria

// ViewerEventType identifies a viewer state transition.
type ViewerEventType uint8

const (
	PhotoLoaded       ViewerEventType = iota // a photo finished loading and became current
	ZoomChanged                              // the zoom level changed
	FullscreenChanged                        // the platform entered or left fullscreen
)

func (t ViewerEventType) String() string {
	switch t {
	case PhotoLoaded:
		return "photo-loaded"
	case ZoomChanged:
		return "zoom-changed"
	case FullscreenChanged:
		return "fullscreen-changed"
	}
	return "unknown"
}

// ViewerEvent is a snapshot of the viewer taken right after a transition.
type ViewerEvent struct {
	Type       ViewerEventType
	Index      int
	Zoom       float64
	Fullscreen bool
}

// ViewerEventSink receives viewer events on the update loop.
type ViewerEventSink interface {
	HandleViewerEvent(ViewerEvent)
}

// ViewerEventFunc adapts a function to ViewerEventSink.
type ViewerEventFunc func(ViewerEvent)

// HandleViewerEvent calls f(ev).
func (f ViewerEventFunc) HandleViewerEvent(ev ViewerEvent) { f(ev) }

func (v *Viewer) emit(typ ViewerEventType) {
	if v.opts.Events == nil {
		return
	}
	v.opts.Events.HandleViewerEvent(ViewerEvent{
		Type:       typ,
		Index:      v.currentIndex,
		Zoom:       v.zoom,
		Fullscreen: v.isFullscreen,
	})
}
