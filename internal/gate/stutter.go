package gate

import (
	"math"
	"time"
)

type stutterPhase uint8

const (
	stutterStep stutterPhase = iota
	stutterSlipHold
	stutterPause
)

// stutterRoutine: Setup -> {StepForward, OptionalBackslip, Pause} -> Settled.
// The committed angle t only ever moves toward the goal; a backslip moves the
// joint target temporarily and restores it after the hold.
type stutterRoutine struct {
	goal     float64
	step     Range
	pause    Range
	slip     float64
	chance   float64
	slipHold Range

	dir    float64
	t      float64
	phase  stutterPhase
	wakeAt time.Duration
	steps  int
}

func (r *stutterRoutine) kind() MotionKind    { return MotionStutter }
func (r *stutterRoutine) goalAngle() float64 { return r.goal }

func (r *stutterRoutine) start(c *Controller) bool {
	c.boost()
	r.t = c.target()
	r.dir = sign(r.goal - r.t)
	r.phase = stutterStep
	return r.run(c)
}

func (r *stutterRoutine) resume(c *Controller, _ time.Duration) bool {
	return r.run(c)
}

func (r *stutterRoutine) cancel(*Controller) {}

// run executes phases until the routine suspends or finishes.
func (r *stutterRoutine) run(c *Controller) bool {
	for {
		switch r.phase {
		case stutterStep:
			if r.dir*(r.goal-r.t) <= c.epsilon() {
				c.settle()
				return true
			}
			r.advance(c)
			if r.trySlip(c) {
				return false
			}
			r.beginPause(c)
			return false

		case stutterSlipHold:
			if c.now < r.wakeAt {
				return false
			}
			c.setTarget(r.t)
			r.beginPause(c)
			return false

		case stutterPause:
			if c.now < r.wakeAt {
				return false
			}
			r.phase = stutterStep
		}
	}
}

// advance moves the committed angle by one random step, never past the goal.
func (r *stutterRoutine) advance(c *Controller) {
	remaining := math.Abs(r.goal - r.t)
	step := r.step.Draw(c.rng)
	if step <= 0 {
		// A zero draw from [0,max] still has to make progress.
		step = r.step.high()
	}
	if step <= 0 || step > remaining {
		// Clamp to the goal; a [0,0] profile finishes in one step.
		step = remaining
	}
	r.t += r.dir * step
	if math.Abs(r.goal-r.t) < 1e-9 {
		r.t = r.goal
	}
	r.steps++
	c.setTarget(r.t)
}

// trySlip applies the optional backward slip. Returns true when the routine
// is now holding the slipped target.
func (r *stutterRoutine) trySlip(c *Controller) bool {
	if r.slip <= 0 || c.rng.Float64() >= r.chance {
		return false
	}

	// Room behind the committed angle, measured to the bound we came from.
	room := r.t - c.lo
	if r.dir < 0 {
		room = c.hi - r.t
	}
	slip := math.Min(r.slip, math.Max(0, room))
	if slip <= 0 {
		return false
	}

	c.setTarget(r.t - r.dir*slip)
	r.wakeAt = c.now + seconds(r.slipHold.Draw(c.rng))
	r.phase = stutterSlipHold
	return true
}

func (r *stutterRoutine) beginPause(c *Controller) {
	r.wakeAt = c.now + seconds(r.pause.Draw(c.rng))
	r.phase = stutterPause
}
