package swipe

import "fmt"

const (
	// ThresholdFraction is the share of the screen width a release must
	// exceed, in either direction, to commit a swipe.
	ThresholdFraction = 0.25

	// ExitDistanceFactor places the exit target this many screen widths
	// away from the origin.
	ExitDistanceFactor = 2.0

	// MaxRotationDeg is the tilt reached at RotationRangeFactor screen widths.
	MaxRotationDeg = 120.0

	// RotationRangeFactor is the displacement, in screen widths, at which
	// rotation stops growing.
	RotationRangeFactor = 1.5
)

// Direction is the side a card leaves the screen on.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) sign() float64 {
	if d == Left {
		return -1
	}
	return 1
}

// Decision is the classification of a released drag.
type Decision int

const (
	Cancel Decision = iota
	CommitRight
	CommitLeft
)

func (d Decision) String() string {
	switch d {
	case Cancel:
		return "cancel"
	case CommitRight:
		return "commit-right"
	case CommitLeft:
		return "commit-left"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Direction returns the swipe direction of a commit. ok is false for Cancel.
func (d Decision) Direction() (dir Direction, ok bool) {
	switch d {
	case CommitRight:
		return Right, true
	case CommitLeft:
		return Left, true
	default:
		return Left, false
	}
}

// Offset is a 2D displacement in pixels.
type Offset struct {
	X, Y float64
}

// Add returns o + p.
func (o Offset) Add(p Offset) Offset {
	return Offset{X: o.X + p.X, Y: o.Y + p.Y}
}

// IsZero reports whether both components are zero.
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

func lerpOffset(a, b Offset, t float64) Offset {
	return Offset{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// DragState is the live offset of the top card during one gesture.
type DragState struct {
	Offset Offset
}

// GestureTracker classifies pointer drags. It is a value type: every call
// returns a fresh DragState instead of mutating shared state.
type GestureTracker struct {
	ScreenWidth float64
}

// NewGestureTracker returns a tracker for a screen of the given width.
func NewGestureTracker(screenWidth float64) GestureTracker {
	return GestureTracker{ScreenWidth: screenWidth}
}

// Threshold returns the horizontal distance a release must exceed to commit.
func (g GestureTracker) Threshold() float64 {
	return ThresholdFraction * g.ScreenWidth
}

// Start begins a gesture. A start is always accepted.
func (g GestureTracker) Start() DragState {
	return DragState{}
}

// Move reports the cumulative displacement since Start, unchanged.
func (g GestureTracker) Move(dx, dy float64) DragState {
	return DragState{Offset: Offset{X: dx, Y: dy}}
}

// Release classifies the final displacement. dy never affects the decision.
func (g GestureTracker) Release(dx, _ float64) Decision {
	return Classify(dx, g.ScreenWidth)
}

// Rotation returns the tilt of the top card for its horizontal offset.
func (g GestureTracker) Rotation(dx float64) float64 {
	return Rotation(dx, g.ScreenWidth)
}

// Classify maps a horizontal release displacement to a Decision. The
// threshold is exclusive: a release exactly on it cancels.
func Classify(dx, screenWidth float64) Decision {
	threshold := ThresholdFraction * screenWidth
	switch {
	case dx > threshold:
		return CommitRight
	case dx < -threshold:
		return CommitLeft
	default:
		return Cancel
	}
}

// Rotation interpolates linearly from -120° at dx = -1.5×screenWidth through
// 0° to +120° at dx = +1.5×screenWidth, clamped outside that range.
func Rotation(dx, screenWidth float64) float64 {
	limit := RotationRangeFactor * screenWidth
	if limit <= 0 {
		return 0
	}
	switch {
	case dx >= limit:
		return MaxRotationDeg
	case dx <= -limit:
		return -MaxRotationDeg
	default:
		return dx / limit * MaxRotationDeg
	}
}
