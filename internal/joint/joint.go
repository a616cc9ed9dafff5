// Package joint describes the rotary joint boundary the gate behaviors drive:
// a hinge with a spring/damper rest-position controller and an optional
// velocity motor. The physics integration itself belongs to the host engine.
package joint

import "math"

// SpringParams holds spring stiffness and damping.
type SpringParams struct {
	Stiffness float64
	Damping   float64
}

// MotorParams holds motor target velocity (deg/s) and max force.
type MotorParams struct {
	TargetVelocity float64
	Force          float64
}

// Actuator is a rotary joint consumed by gate controllers.
// All setters take effect before the next read.
type Actuator interface {
	// Angle returns the current physically simulated angle in degrees.
	Angle() float64

	// TargetAngle returns the spring rest position in degrees.
	TargetAngle() float64
	SetTargetAngle(deg float64)

	Spring() SpringParams
	SetSpring(p SpringParams)

	Motor() MotorParams
	SetMotor(p MotorParams)

	SpringEnabled() bool
	SetSpringEnabled(enabled bool)

	MotorEnabled() bool
	SetMotorEnabled(enabled bool)
}

// Limits bounds the hinge angle.
type Limits struct {
	Min float64
	Max float64
}

// Clamp clamps angle into [Min, Max].
func (l Limits) Clamp(angle float64) float64 {
	return math.Max(l.Min, math.Min(l.Max, angle))
}

// DeltaAngle returns the shortest signed difference from one angle to another
// in degrees, in the range (-180, 180].
func DeltaAngle(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
