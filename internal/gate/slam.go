package gate

import (
	"math"
	"time"

	"github.com/udisondev/gatekeep/internal/joint"
)

// slamRoutine: BurstOn -> (timed) -> BurstOff. It owns only the motor
// enable lifecycle; spring/damper are whatever the caller configured.
type slamRoutine struct {
	target   float64
	velocity float64
	force    float64
	duration time.Duration
	until    time.Duration
}

func (r *slamRoutine) kind() MotionKind    { return MotionSlam }
func (r *slamRoutine) goalAngle() float64 { return r.target }

func (r *slamRoutine) start(c *Controller) bool {
	// Zero delta drives forward.
	dir := 1.0
	if joint.DeltaAngle(c.joint.Angle(), r.target) < 0 {
		dir = -1
	}

	c.joint.SetMotor(joint.MotorParams{
		TargetVelocity: dir * math.Abs(r.velocity),
		Force:          r.force,
	})
	c.joint.SetMotorEnabled(true)

	r.until = c.now + r.duration
	if r.duration <= 0 {
		c.joint.SetMotorEnabled(false)
		return true
	}
	return false
}

func (r *slamRoutine) resume(c *Controller, _ time.Duration) bool {
	if c.now < r.until {
		return false
	}
	c.joint.SetMotorEnabled(false)
	return true
}

func (r *slamRoutine) cancel(c *Controller) {
	c.joint.SetMotorEnabled(false)
}
