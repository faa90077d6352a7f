package galleria

import "github.com/hajimehoshi/ebiten/v2"

// Platform is the host's fullscreen facility. It is the source of truth for
// fullscreen state: requests may be refused or undone by the user at any
// time, so callers observe FullscreenElement rather than remember what they
// asked for.
type Platform interface {
	// FullscreenElement returns the node presented fullscreen, or nil when
	// windowed.
	FullscreenElement() *Node
	RequestFullscreen(target *Node)
	ExitFullscreen()
}

// EbitenPlatform maps fullscreen requests onto the Ebitengine window. The
// whole window goes fullscreen; the requested node is remembered so layouts
// can present only that subtree.
type EbitenPlatform struct {
	target *Node
}

// FullscreenElement returns the last requested node while the window is
// fullscreen. If the window went fullscreen some other way, it returns the
// fallback passed to NewEbitenPlatform.
func (p *EbitenPlatform) FullscreenElement() *Node {
	if !ebiten.IsFullscreen() {
		return nil
	}
	return p.target
}

// RequestFullscreen switches the window to fullscreen presenting target.
func (p *EbitenPlatform) RequestFullscreen(target *Node) {
	if target != nil {
		p.target = target
	}
	ebiten.SetFullscreen(true)
}

// ExitFullscreen returns the window to windowed mode.
func (p *EbitenPlatform) ExitFullscreen() {
	ebiten.SetFullscreen(false)
}

// NewEbitenPlatform returns a platform whose FullscreenElement defaults to
// fallback until a node is requested.
func NewEbitenPlatform(fallback *Node) *EbitenPlatform {
	return &EbitenPlatform{target: fallback}
}
