package galleria

import (
	"errors"
	"fmt"
)

// ErrMissingElement is returned by New when a required element is nil.
var ErrMissingElement = errors.New("galleria: missing required element")

// Elements is the bundle of nodes a Viewer binds to. Every field is
// required. MainImage must be an image surface (a sprite) placed inside
// ZoomContainer, whose Width and Height give the area the photo is fitted
// to. ZoomInfo and CursorIndicator are text nodes.
type Elements struct {
	MainImage        *Node
	ZoomContainer    *Node
	ZoomInfo         *Node
	CursorIndicator  *Node
	ThumbnailGallery *Node
	FullscreenButton *Node
	ViewerContainer  *Node
	ZoomIn           *Node
	ZoomOut          *Node
	Reset            *Node
	Prev             *Node
	Next             *Node
}

// validate returns ErrMissingElement naming the first nil element.
func (el Elements) validate() error {
	required := []struct {
		name string
		node *Node
	}{
		{"MainImage", el.MainImage},
		{"ZoomContainer", el.ZoomContainer},
		{"ZoomInfo", el.ZoomInfo},
		{"CursorIndicator", el.CursorIndicator},
		{"ThumbnailGallery", el.ThumbnailGallery},
		{"FullscreenButton", el.FullscreenButton},
		{"ViewerContainer", el.ViewerContainer},
		{"ZoomIn", el.ZoomIn},
		{"ZoomOut", el.ZoomOut},
		{"Reset", el.Reset},
		{"Prev", el.Prev},
		{"Next", el.Next},
	}
	for _, r := range required {
		if r.node == nil {
			return fmt.Errorf("%w: %s", ErrMissingElement, r.name)
		}
	}
	if el.MainImage.Type != NodeTypeSprite {
		return fmt.Errorf("%w: MainImage must be a sprite", ErrMissingElement)
	}
	if el.ZoomInfo.TextBlock == nil || el.CursorIndicator.TextBlock == nil {
		return fmt.Errorf("%w: ZoomInfo and CursorIndicator must be text nodes", ErrMissingElement)
	}
	return nil
}
