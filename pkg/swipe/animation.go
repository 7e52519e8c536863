package swipe

import "time"

// DefaultExitDuration is how long a committed card takes to leave the screen.
const DefaultExitDuration = 400 * time.Millisecond

// Animation is an in-flight offset animation of the top card: either a
// timed exit or a spring back to rest. The controller holds at most one.
type Animation struct {
	generation uint64
	from       Offset
	target     Offset
	duration   time.Duration
	curve      func(float64) float64
	started    time.Time

	springX  *SpringSimulation
	springY  *SpringSimulation
	lastStep time.Time

	offset     Offset
	onComplete func()
	finished   bool
}

func newTimedAnimation(gen uint64, from, to Offset, d time.Duration, curve func(float64) float64, now time.Time, onComplete func()) *Animation {
	if curve == nil {
		curve = LinearCurve
	}
	return &Animation{
		generation: gen,
		from:       from,
		target:     to,
		duration:   d,
		curve:      curve,
		started:    now,
		offset:     from,
		onComplete: onComplete,
	}
}

func newSpringAnimation(gen uint64, from, to Offset, spring SpringDescription, now time.Time, onComplete func()) *Animation {
	return &Animation{
		generation: gen,
		from:       from,
		target:     to,
		started:    now,
		springX:    NewSpringSimulation(spring, from.X, 0, to.X),
		springY:    NewSpringSimulation(spring, from.Y, 0, to.Y),
		lastStep:   now,
		offset:     from,
		onComplete: onComplete,
	}
}

// Generation returns the tag that ties a completion to this animation.
func (a *Animation) Generation() uint64 { return a.generation }

// Target returns the offset the animation moves toward.
func (a *Animation) Target() Offset { return a.target }

// Duration is the fixed length of a timed animation, zero for springs.
func (a *Animation) Duration() time.Duration { return a.duration }

// IsSpring reports whether the animation is spring driven.
func (a *Animation) IsSpring() bool { return a.springX != nil }

// Offset returns the most recently computed offset.
func (a *Animation) Offset() Offset { return a.offset }

// step advances the animation to now and reports whether it has finished.
func (a *Animation) step(now time.Time) (Offset, bool) {
	if a.finished {
		return a.offset, true
	}

	if a.IsSpring() {
		dt := now.Sub(a.lastStep).Seconds()
		if dt > 0 {
			a.lastStep = now
			a.springX.Step(dt)
			a.springY.Step(dt)
		}
		a.offset = Offset{X: a.springX.Position(), Y: a.springY.Position()}
		return a.offset, a.springX.IsDone() && a.springY.IsDone()
	}

	if a.duration <= 0 {
		a.offset = a.target
		return a.offset, true
	}
	progress := float64(now.Sub(a.started)) / float64(a.duration)
	if progress >= 1 {
		a.offset = a.target
		return a.offset, true
	}
	if progress < 0 {
		progress = 0
	}
	a.offset = lerpOffset(a.from, a.target, a.curve(progress))
	return a.offset, false
}
