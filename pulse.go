package galleria

import (
	"time"

	"github.com/tanema/gween/ease"
)

// pulseEase is the duration of each half of a pulse, in seconds.
const pulseEase = 0.1

// Pulse periodically grows a node and shrinks it back to draw attention.
type Pulse struct {
	scene *Scene
	node  *Node
	scale float64
	hold  time.Duration
	timer *Timer
	up    *TweenGroup
	down  *TweenGroup
}

// StartPulse scales n to scale every interval, holding it for hold before
// easing back to 1. The node scales about its pivot.
func StartPulse(scene *Scene, n *Node, interval, hold time.Duration, scale float64) *Pulse {
	p := &Pulse{scene: scene, node: n, scale: scale, hold: hold}
	p.timer = scene.Every(interval.Seconds(), p.beat)
	return p
}

func (p *Pulse) beat() {
	n := p.node
	if n.IsDisposed() {
		p.Stop()
		return
	}
	p.up = TweenScale(n, p.scale, p.scale, pulseEase, ease.OutQuad)
	p.scene.AddTween(p.up)
	p.scene.After(p.hold.Seconds(), func() {
		if n.IsDisposed() {
			return
		}
		p.up.Done = true
		p.down = TweenScale(n, 1, 1, pulseEase, ease.InQuad)
		p.scene.AddTween(p.down)
	})
}

// Stop ends the pulse. A beat in progress still eases back.
func (p *Pulse) Stop() {
	p.timer.Stop()
}

// Active reports whether the pulse is still scheduled.
func (p *Pulse) Active() bool {
	return p.timer.Active()
}
