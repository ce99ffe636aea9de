// Package anim animates numeric properties of scene objects.
//
// Animations do not own a timer. The host's frame loop calls
// Animator.Advance once per frame, which keeps every animation on the GUI
// goroutine and makes them deterministic under a manual clock.
package anim

import (
	"slices"
	"time"

	"github.com/fogleman/ease"

	"github.com/lingmo/lingmoui/internal/scene"
)

// State is the run state of an animation.
type State uint8

const (
	Stopped State = iota
	Running
)

// String returns the state name.
func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// OutCubic decelerates towards the end value.
var OutCubic Easing = ease.OutCubic

// Linear progresses at constant speed.
var Linear Easing = ease.Linear

// Animator steps the running animations it created.
type Animator struct {
	now     func() time.Time
	running []*PropertyAnimation
}

// NewAnimator creates an animator reading time from now. A nil now uses
// time.Now.
func NewAnimator(now func() time.Time) *Animator {
	if now == nil {
		now = time.Now
	}
	return &Animator{now: now}
}

// NewPropertyAnimation creates a stopped animation of the named property.
func (a *Animator) NewPropertyAnimation(property string) *PropertyAnimation {
	return &PropertyAnimation{
		animator: a,
		property: property,
		easing:   Linear,
	}
}

// Advance moves every running animation to its value at now and reports
// whether any animation is still running afterwards.
func (a *Animator) Advance(now time.Time) bool {
	for _, pa := range slices.Clone(a.running) {
		pa.step(now)
	}
	return len(a.running) > 0
}

// Running returns the number of running animations.
func (a *Animator) Running() int {
	return len(a.running)
}

func (a *Animator) track(pa *PropertyAnimation) {
	if !slices.Contains(a.running, pa) {
		a.running = append(a.running, pa)
	}
}

func (a *Animator) untrack(pa *PropertyAnimation) {
	a.running = slices.DeleteFunc(a.running, func(p *PropertyAnimation) bool { return p == pa })
}

// PropertyAnimation interpolates one numeric property from its value at
// Start to the end value over the duration.
type PropertyAnimation struct {
	animator *Animator
	target   scene.Object
	property string
	duration time.Duration
	easing   Easing

	from    float64
	to      float64
	started time.Time
	state   State
}

// Target returns the animated object.
func (pa *PropertyAnimation) Target() scene.Object {
	return pa.target
}

// SetTarget changes the animated object, stopping a running animation.
func (pa *PropertyAnimation) SetTarget(target scene.Object) {
	pa.Stop()
	pa.target = target
}

// Duration returns the animation duration.
func (pa *PropertyAnimation) Duration() time.Duration {
	return pa.duration
}

// SetDuration sets the duration. A zero duration makes Start jump to the
// end value.
func (pa *PropertyAnimation) SetDuration(d time.Duration) {
	pa.duration = max(d, 0)
}

// SetEasing sets the easing curve. Nil selects Linear.
func (pa *PropertyAnimation) SetEasing(e Easing) {
	if e == nil {
		e = Linear
	}
	pa.easing = e
}

// EndValue returns the value the animation runs to.
func (pa *PropertyAnimation) EndValue() float64 {
	return pa.to
}

// SetEndValue sets the value the animation runs to.
func (pa *PropertyAnimation) SetEndValue(v float64) {
	pa.to = v
}

// State returns the run state.
func (pa *PropertyAnimation) State() State {
	return pa.state
}

// Start runs the animation from the property's current value. The property
// keeps its last animated value when the animation stops.
func (pa *PropertyAnimation) Start() {
	if pa.target == nil {
		return
	}
	pa.from = scene.Float(pa.target, pa.property)
	pa.started = pa.animator.now()
	if pa.duration <= 0 {
		pa.finish()
		return
	}
	pa.state = Running
	pa.animator.track(pa)
}

// Stop halts the animation where it is.
func (pa *PropertyAnimation) Stop() {
	if pa.state == Stopped {
		return
	}
	pa.state = Stopped
	pa.animator.untrack(pa)
}

func (pa *PropertyAnimation) step(now time.Time) {
	if pa.state != Running || pa.target == nil {
		pa.Stop()
		return
	}
	elapsed := now.Sub(pa.started)
	if elapsed >= pa.duration {
		pa.finish()
		return
	}
	t := float64(elapsed) / float64(pa.duration)
	pa.target.SetProperty(pa.property, pa.from+(pa.to-pa.from)*pa.easing(max(t, 0)))
}

func (pa *PropertyAnimation) finish() {
	pa.target.SetProperty(pa.property, pa.to)
	pa.Stop()
}
