package thicket

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property is one animatable scalar on some object. Target identifies the
// object (usually a pointer) and Name the attribute on it; together they are
// the key used for last-writer-wins and RemoveAnimationsOf.
type Property struct {
	Target any
	Name   string
	Get    func() float64
	Set    func(float64)
}

type propKey struct {
	target any
	name   string
}

func (p Property) key() propKey { return propKey{p.Target, p.Name} }

// RectProp returns a Property for one attribute of r.
func RectProp(r *Rect, a Attr) Property {
	return Property{
		Target: r,
		Name:   a.String(),
		Get:    func() float64 { return r.Attr(a) },
		Set:    func(v float64) { r.SetAttr(a, v) },
	}
}

// FloatProp returns a Property for a plain float64 field.
func FloatProp(p *float64) Property {
	return Property{
		Target: p,
		Get:    func() float64 { return *p },
		Set:    func(v float64) { *p = v },
	}
}

// AnimState is the lifecycle state shared by animations and tasks.
type AnimState uint8

const (
	StatePending  AnimState = iota // created, not yet advanced
	StateRunning                   // advanced at least once
	StateFinished                  // completed normally; completion callback ran
	StateAborted                   // removed without completion
)

func (s AnimState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// scheduled is anything a Ledger can advance.
type scheduled interface {
	// advance steps the item by dt seconds and reports whether it is done.
	advance(dt float64) bool
	keys() []propKey
	setLedger(l *Ledger)
	Abort()
}

// channel is one Property being driven by an Animation.
type channel struct {
	prop     Property
	end      float64
	start    float64
	hasStart bool
	tween    *gween.Tween
}

// Animation interpolates one or more properties toward end values over a
// duration. Start values are captured on the first update unless given with
// From. Build one with NewAnimation and hand it to a Ledger (usually through
// Widget.Animate).
//
//	ani := thicket.NewAnimation(0.2).
//		To(cursor.BoundsProp(thicket.AttrRight), x).
//		To(cursor.BoundsProp(thicket.AttrCenterY), y)
//	menu.Animate(ani)
type Animation struct {
	channels []channel
	duration float64
	elapsed  float64
	relative bool
	easing   ease.TweenFunc
	state    AnimState
	ledger   *Ledger

	// OnUpdate runs after every interpolation step, including the last.
	OnUpdate func()
	// OnComplete runs exactly once, when the animation finishes normally.
	OnComplete func()
}

// NewAnimation creates an empty, linear animation lasting duration seconds.
func NewAnimation(duration float64) *Animation {
	return &Animation{duration: duration, easing: ease.Linear}
}

// To adds a property that will be driven to end.
func (a *Animation) To(p Property, end float64) *Animation {
	a.channels = append(a.channels, channel{prop: p, end: end})
	return a
}

// FromTo adds a property with an explicit start value.
func (a *Animation) FromTo(p Property, start, end float64) *Animation {
	a.channels = append(a.channels, channel{prop: p, start: start, hasStart: true, end: end})
	return a
}

// Relative makes every end value an offset from the captured start.
func (a *Animation) Relative() *Animation {
	a.relative = true
	return a
}

// Ease replaces the default linear easing.
func (a *Animation) Ease(fn ease.TweenFunc) *Animation {
	if fn != nil {
		a.easing = fn
	}
	return a
}

// State returns the current lifecycle state.
func (a *Animation) State() AnimState { return a.state }

// Elapsed returns the seconds advanced so far, clamped to the duration.
func (a *Animation) Elapsed() float64 { return a.elapsed }

// Duration returns the configured duration in seconds.
func (a *Animation) Duration() float64 { return a.duration }

// Abort stops the animation without running OnComplete and removes it from
// its ledger. Aborting a finished or aborted animation is a no-op.
func (a *Animation) Abort() {
	if a.state == StateFinished || a.state == StateAborted {
		return
	}
	a.state = StateAborted
	if a.ledger != nil {
		a.ledger.remove(a)
	}
}

func (a *Animation) setLedger(l *Ledger) { a.ledger = l }

func (a *Animation) keys() []propKey {
	ks := make([]propKey, len(a.channels))
	for i := range a.channels {
		ks[i] = a.channels[i].prop.key()
	}
	return ks
}

// begin captures start values and builds the tweens.
func (a *Animation) begin() {
	for i := range a.channels {
		ch := &a.channels[i]
		if !ch.hasStart {
			ch.start = ch.prop.Get()
			ch.hasStart = true
		}
		end := ch.end
		if a.relative {
			end += ch.start
		}
		ch.tween = gween.New(float32(ch.start), float32(end), float32(a.duration), a.easing)
	}
	a.state = StateRunning
}

func (a *Animation) advance(dt float64) bool {
	switch a.state {
	case StateFinished, StateAborted:
		return true
	case StatePending:
		a.begin()
	}

	a.elapsed += dt
	done := a.duration <= 0 || a.elapsed >= a.duration
	if done {
		a.elapsed = max(a.duration, 0)
	}
	for i := range a.channels {
		ch := &a.channels[i]
		if done {
			end := ch.end
			if a.relative {
				end += ch.start
			}
			ch.prop.Set(end)
			continue
		}
		val, _ := ch.tween.Update(float32(dt))
		ch.prop.Set(float64(val))
	}

	if a.OnUpdate != nil {
		a.OnUpdate()
	}
	// OnUpdate may have aborted us.
	if a.state == StateAborted {
		return true
	}
	if done {
		a.state = StateFinished
		if a.OnComplete != nil {
			a.OnComplete()
		}
		return true
	}
	return false
}
