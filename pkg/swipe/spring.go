package swipe

import "math"

// SpringDescription describes a damped harmonic oscillator.
type SpringDescription struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// DampingRatio returns the damping ratio (1 is critically damped).
func (s SpringDescription) DampingRatio() float64 {
	m := s.mass()
	if s.Stiffness <= 0 {
		return math.Inf(1)
	}
	return s.Damping / (2 * math.Sqrt(s.Stiffness*m))
}

func (s SpringDescription) mass() float64 {
	if s.Mass <= 0 {
		return 1
	}
	return s.Mass
}

// ResetSpring returns a released card to its resting position. It matches an
// origami spring with tension 40 and friction 7.
var ResetSpring = SpringDescription{Mass: 1, Stiffness: 230.2, Damping: 22}

// LayoutSpring re-stacks the remaining cards when the cursor moves. It is
// under-damped (ratio 0.4) so cards settle with a slight bounce.
var LayoutSpring = SpringDescription{Mass: 1, Stiffness: 100, Damping: 8}

const (
	defaultPositionTolerance = 0.5 // px
	defaultVelocityTolerance = 1.0 // px/s
	maxSpringStep            = 1.0 / 240
)

// SpringSimulation integrates a spring toward a target position.
type SpringSimulation struct {
	spring   SpringDescription
	position float64
	velocity float64
	target   float64
	done     bool

	// PositionTolerance and VelocityTolerance decide when the spring is at
	// rest; it then snaps exactly onto the target.
	PositionTolerance float64
	VelocityTolerance float64
}

// NewSpringSimulation starts a spring at position with an initial velocity.
func NewSpringSimulation(spring SpringDescription, position, velocity, target float64) *SpringSimulation {
	s := &SpringSimulation{
		spring:            spring,
		position:          position,
		velocity:          velocity,
		target:            target,
		PositionTolerance: defaultPositionTolerance,
		VelocityTolerance: defaultVelocityTolerance,
	}
	s.settle()
	return s
}

// Step advances the simulation by dt seconds and reports whether it is at rest.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	m := s.spring.mass()
	for dt > 0 {
		h := math.Min(dt, maxSpringStep)
		dt -= h
		accel := (-s.spring.Stiffness*(s.position-s.target) - s.spring.Damping*s.velocity) / m
		s.velocity += accel * h
		s.position += s.velocity * h
	}
	s.settle()
	return s.done
}

func (s *SpringSimulation) settle() {
	if math.Abs(s.position-s.target) < s.PositionTolerance && math.Abs(s.velocity) < s.VelocityTolerance {
		s.position = s.target
		s.velocity = 0
		s.done = true
	}
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// Target returns the rest position.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the spring has come to rest.
func (s *SpringSimulation) IsDone() bool { return s.done }
