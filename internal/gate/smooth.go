package gate

import (
	"math"
	"time"
)

// smoothRoutine: Setup -> Advancing -> Settled.
type smoothRoutine struct {
	goal    float64
	speed   float64
	current float64
}

func (r *smoothRoutine) kind() MotionKind    { return MotionSmooth }
func (r *smoothRoutine) goalAngle() float64 { return r.goal }

func (r *smoothRoutine) start(c *Controller) bool {
	c.boost()
	r.current = c.target()
	return r.settleIfDone(c)
}

func (r *smoothRoutine) resume(c *Controller, dt time.Duration) bool {
	remaining := r.goal - r.current
	step := r.speed * dt.Seconds() * sign(remaining)
	if r.speed <= 0 || math.Abs(step) > math.Abs(remaining) {
		step = remaining
	}
	r.current += step
	c.setTarget(r.current)
	return r.settleIfDone(c)
}

func (r *smoothRoutine) cancel(*Controller) {}

func (r *smoothRoutine) settleIfDone(c *Controller) bool {
	if math.Abs(r.goal-r.current) > c.epsilon() {
		return false
	}
	c.settle()
	return true
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
