package galleria

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, TweenAlpha) and either call Update(dt) each frame or hand it
// to Scene.AddTween. The group auto-applies values and marks the node dirty.
// If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// AddTween runs g on the scene's update loop until it is Done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

func (s *Scene) updateTweens(dt float32) {
	if len(s.tweens) == 0 {
		return
	}
	n := len(s.tweens)
	for i := 0; i < n; i++ {
		s.tweens[i].Update(dt)
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}

// --- Timers ---

// Timer is a scheduled callback driven by the scene's update loop. Timers
// measure elapsed frame time with a linear gween tween from 0 to the delay.
type Timer struct {
	clock   *gween.Tween
	fn      func()
	repeat  bool
	stopped bool
}

// Stop cancels the timer. A stopped timer never fires again. Safe to call
// more than once and from inside the timer's own callback.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.stopped = true
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// After schedules fn to run once, seconds from now.
func (s *Scene) After(seconds float64, fn func()) *Timer {
	return s.addTimer(seconds, fn, false)
}

// Every schedules fn to run every interval seconds until stopped.
func (s *Scene) Every(interval float64, fn func()) *Timer {
	return s.addTimer(interval, fn, true)
}

func (s *Scene) addTimer(seconds float64, fn func(), repeat bool) *Timer {
	t := &Timer{
		clock:  gween.New(0, float32(seconds), float32(seconds), ease.Linear),
		fn:     fn,
		repeat: repeat,
	}
	s.timers = append(s.timers, t)
	return t
}

// updateTimers advances every timer scheduled before this frame. Timers
// added by callbacks start counting on the next frame.
func (s *Scene) updateTimers(dt float32) {
	if len(s.timers) == 0 {
		return
	}
	n := len(s.timers)
	for i := 0; i < n; i++ {
		t := s.timers[i]
		if t.stopped {
			continue
		}
		if _, finished := t.clock.Update(dt); !finished {
			continue
		}
		if t.repeat {
			t.clock.Reset()
		} else {
			t.stopped = true
		}
		t.fn()
	}
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	clear(s.timers[len(live):])
	s.timers = live
}
