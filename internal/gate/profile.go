package gate

import "time"

// MotionKind identifies the routine driving a gate.
type MotionKind int32

const (
	// MotionNone - no routine active, joint at steady state
	MotionNone MotionKind = iota
	// MotionSmooth - continuous interpolation toward the goal
	MotionSmooth
	// MotionStutter - randomized advance-and-settle steps
	MotionStutter
	// MotionSlam - short motor burst
	MotionSlam
)

// String returns human-readable motion name
func (k MotionKind) String() string {
	switch k {
	case MotionNone:
		return "NONE"
	case MotionSmooth:
		return "SMOOTH"
	case MotionStutter:
		return "STUTTER"
	case MotionSlam:
		return "SLAM"
	default:
		return "UNKNOWN"
	}
}

// MotionProfile describes one motion request. Implemented by Smooth,
// Stutter and Slam.
type MotionProfile interface {
	Kind() MotionKind
	newRoutine(c *Controller) routine
}

// Smooth interpolates the target angle at a constant speed.
// A non-positive speed reaches the target on the next tick.
type Smooth struct {
	Target float64
	Speed  float64 // deg/s
}

// Stutter advances the target in random steps with pauses and optional
// backward slips. A zero SlipHold uses 20..50ms.
type Stutter struct {
	Target          float64
	Step            Range // degrees
	Pause           Range // seconds
	BackslipDegrees float64
	BackslipChance  float64
	SlipHold        Range // seconds
}

// Slam enables the motor toward Target for Duration. It leaves the spring
// configuration untouched.
type Slam struct {
	Target   float64
	Velocity float64 // deg/s, sign is ignored
	Force    float64
	Duration time.Duration
}

func (Smooth) Kind() MotionKind  { return MotionSmooth }
func (Stutter) Kind() MotionKind { return MotionStutter }
func (Slam) Kind() MotionKind    { return MotionSlam }

func (p Smooth) newRoutine(c *Controller) routine {
	return &smoothRoutine{goal: c.clamp(p.Target), speed: p.Speed}
}

func (p Stutter) newRoutine(c *Controller) routine {
	hold := p.SlipHold
	if hold.IsZero() {
		hold = Range{Min: 0.02, Max: 0.05}
	}
	return &stutterRoutine{
		goal:     c.clamp(p.Target),
		step:     p.Step,
		pause:    p.Pause,
		slip:     p.BackslipDegrees,
		chance:   p.BackslipChance,
		slipHold: hold,
	}
}

func (p Slam) newRoutine(_ *Controller) routine {
	return &slamRoutine{
		target:   p.Target,
		velocity: p.Velocity,
		force:    p.Force,
		duration: p.Duration,
	}
}
