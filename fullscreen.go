package galleria

// ToggleFullscreen leaves fullscreen if the platform reports an element
// presented fullscreen, otherwise requests it for the viewer container.
func (v *Viewer) ToggleFullscreen() {
	if v.opts.Platform.FullscreenElement() != nil {
		v.ExitFullscreen()
		return
	}
	v.EnterFullscreen()
}

// EnterFullscreen asks the platform to present the viewer container
// fullscreen. The platform may refuse; state follows what it reports.
func (v *Viewer) EnterFullscreen() {
	v.opts.Platform.RequestFullscreen(v.el.ViewerContainer)
}

// ExitFullscreen asks the platform to leave fullscreen.
func (v *Viewer) ExitFullscreen() {
	v.opts.Platform.ExitFullscreen()
}

// syncFullscreen runs once per frame and mirrors the platform's state.
// Every observed change reflows the layout and refits the image, whatever
// caused it.
func (v *Viewer) syncFullscreen() {
	fs := v.opts.Platform.FullscreenElement() != nil
	if fs == v.isFullscreen {
		return
	}
	v.isFullscreen = fs
	v.scene.Logf("fullscreen: %t", fs)
	if v.opts.OnFullscreenChange != nil {
		v.opts.OnFullscreenChange(fs)
	}
	v.emit(FullscreenChanged)
	v.AdjustImageSize()
}
