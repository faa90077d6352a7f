package galleria

import (
	"fmt"
	"math"
)

// AdjustImageSize fits the main image inside the zoom container, preserving
// its aspect ratio, and centers it. Wide images fill the container's width,
// the rest fill its height. It does nothing until the image has a natural
// size and the container has a nonzero extent, and it may be called any
// number of times.
func (v *Viewer) AdjustImageSize() {
	img := v.el.MainImage
	nw, nh := img.NaturalSize()
	if !img.Complete() || nw == 0 || nh == 0 {
		return
	}
	cw, ch := v.el.ZoomContainer.Width, v.el.ZoomContainer.Height
	if cw <= 0 || ch <= 0 {
		return
	}

	imgRatio := float64(nw) / float64(nh)
	boxRatio := cw / ch
	if imgRatio > boxRatio {
		v.fit = cw / float64(nw)
	} else {
		v.fit = ch / float64(nh)
	}
	v.boxX = (cw - float64(nw)*v.fit) / 2
	v.boxY = (ch - float64(nh)*v.fit) / 2
	v.applyTransform()
}

// applyTransform places the main image at its fitted box, scaled by the zoom
// level about the focal point. The focal point stays fixed on screen.
func (v *Viewer) applyTransform() {
	img := v.el.MainImage
	nw, nh := img.NaturalSize()
	fx, fy := v.focalX/100, v.focalY/100
	s := v.fit * v.zoom

	img.SetPivot(fx*float64(nw), fy*float64(nh))
	img.SetPosition(v.boxX+fx*float64(nw)*v.fit, v.boxY+fy*float64(nh)*v.fit)
	img.SetScale(s, s)
}

// SetZoom sets the zoom level, clamped to the configured bounds.
func (v *Viewer) SetZoom(z float64) {
	cfg := v.opts.Zoom
	z = clamp(z, cfg.Min, cfg.Max)
	changed := z != v.zoom
	v.zoom = z
	v.applyTransform()
	v.setZoomText()
	if changed {
		v.emit(ZoomChanged)
	}
}

// ZoomIn raises the zoom level by one step.
func (v *Viewer) ZoomIn() { v.SetZoom(v.zoom + v.opts.Zoom.Step) }

// ZoomOut lowers the zoom level by one step.
func (v *Viewer) ZoomOut() { v.SetZoom(v.zoom - v.opts.Zoom.Step) }

// ResetZoom returns to zoom 1, or the bound nearest to it, about the image
// center and idle status, then remeasures the image once the settle delay
// has passed. Pending remeasures from earlier resets are left to run.
func (v *Viewer) ResetZoom() {
	home := v.opts.Zoom.home()
	changed := v.zoom != home
	v.zoom = home
	v.focalX, v.focalY = 50, 50
	v.applyTransform()
	v.setZoomText()
	v.setStatus(false, IdleStatus)
	if changed {
		v.emit(ZoomChanged)
	}
	v.scene.After(v.opts.SettleDelay.Seconds(), v.AdjustImageSize)
}

func (v *Viewer) setZoomText() {
	v.el.ZoomInfo.SetText(fmt.Sprintf("Zoom: %d%%", int(math.Round(v.zoom*100))))
}

func (v *Viewer) setStatus(active bool, text string) {
	n := v.el.CursorIndicator
	if active {
		n.SetAlpha(activeStatusAlpha)
		n.TextBlock.Background = activeStatusColor
	} else {
		n.SetAlpha(idleStatusAlpha)
		n.TextBlock.Background = idleStatusColor
	}
	n.SetText(text)
}

// --- Pointer ---

func (v *Viewer) startHover() {
	v.isHovering = true
	v.setStatus(true, ActiveStatus)
}

func (v *Viewer) stopHover() {
	v.isHovering = false
	v.setStatus(false, IdleStatus)
}

// updateHover moves the focal point under the pointer. Local coordinates are
// in natural pixels, so their ratio to the natural size is the position
// within the displayed image.
func (v *Viewer) updateHover(ctx PointerContext) {
	if !v.isHovering {
		return
	}
	nw, nh := v.el.MainImage.NaturalSize()
	if nw == 0 || nh == 0 {
		return
	}
	v.focalX = clamp(ctx.LocalX/float64(nw)*100, 0, 100)
	v.focalY = clamp(ctx.LocalY/float64(nh)*100, 0, 100)
	v.applyTransform()
	if v.zoom > v.opts.Zoom.home() {
		v.el.CursorIndicator.SetText(fmt.Sprintf("Focal point: %d%%, %d%%",
			int(math.Round(v.focalX)), int(math.Round(v.focalY))))
	}
}

func (v *Viewer) handleWheel(ctx *WheelContext) {
	if !v.isHovering {
		return
	}
	ctx.PreventDefault()
	if ctx.DeltaY > 0 {
		v.ZoomOut()
	} else {
		v.ZoomIn()
	}
}
