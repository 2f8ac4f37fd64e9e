package obj

import (
	"math"
	"time"
)

// TickInput is everything the level reads from the controls for one tick.
type TickInput struct {
	// MoveX is the horizontal axis in [-1, 1]; negative is left.
	MoveX float64
	// JumpHeld is true while the jump button is down.
	JumpHeld bool
	// FireHeld is true while the fire button is down.
	FireHeld bool
	// VentHeld is true while the vent button is down.
	VentHeld bool
	// Elapsed is the time since the previous tick.
	Elapsed time.Duration
}

// Normalized returns a copy with MoveX clamped to [-1, 1], NaN treated as
// zero and negative elapsed time dropped.
func (in TickInput) Normalized() TickInput {
	switch {
	case math.IsNaN(in.MoveX):
		in.MoveX = 0
	case in.MoveX > 1:
		in.MoveX = 1
	case in.MoveX < -1:
		in.MoveX = -1
	}
	if in.Elapsed < 0 {
		in.Elapsed = 0
	}
	return in
}

// Seconds is Elapsed in seconds.
func (in TickInput) Seconds() float64 {
	return in.Elapsed.Seconds()
}

// shapeAxis scales an analog reading and drops anything inside the deadzone
// so a resting stick does not creep.
func shapeAxis(v, scale, deadzone float64) float64 {
	v *= scale
	if math.Abs(v) < deadzone {
		return 0
	}
	return v
}
