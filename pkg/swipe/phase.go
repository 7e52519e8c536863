package swipe

import "fmt"

// Phase is the interaction state of the top card.
//
//	Idle ──start──► Dragging ──release < threshold──► Resetting ──► Idle
//	                   │
//	                   └──release > threshold──► ExitingLeft/Right ──► Idle (next card)
type Phase int

const (
	Idle Phase = iota
	Dragging
	Resetting
	ExitingRight
	ExitingLeft
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resetting:
		return "resetting"
	case ExitingRight:
		return "exiting-right"
	case ExitingLeft:
		return "exiting-left"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// IsExiting reports whether the top card is animating off-screen.
func (p Phase) IsExiting() bool {
	return p == ExitingRight || p == ExitingLeft
}

func exitPhase(d Direction) Phase {
	if d == Left {
		return ExitingLeft
	}
	return ExitingRight
}
