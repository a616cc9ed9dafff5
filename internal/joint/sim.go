package joint

import (
	"math"
	"time"
)

// Sim is an approximate hinge used by the headless simulator and tests.
// Spring torque is -k*(angle-target) - c*velocity; the motor pushes velocity
// toward its target with torque bounded by Force. Angles are degrees.
type Sim struct {
	limits  Limits
	inertia float64

	angle    float64
	velocity float64

	target    float64
	spring    SpringParams
	motor     MotorParams
	useSpring bool
	useMotor  bool
}

// NewSim creates a simulated hinge resting at angle.
// Non-positive inertia defaults to 1.
func NewSim(angle float64, limits Limits, inertia float64) *Sim {
	if inertia <= 0 {
		inertia = 1
	}
	return &Sim{
		limits:  limits,
		inertia: inertia,
		angle:   limits.Clamp(angle),
		target:  angle,
	}
}

func (s *Sim) Angle() float64       { return s.angle }
func (s *Sim) Velocity() float64    { return s.velocity }
func (s *Sim) TargetAngle() float64 { return s.target }

func (s *Sim) SetTargetAngle(deg float64) { s.target = deg }

func (s *Sim) Spring() SpringParams     { return s.spring }
func (s *Sim) SetSpring(p SpringParams) { s.spring = p }

func (s *Sim) Motor() MotorParams     { return s.motor }
func (s *Sim) SetMotor(p MotorParams) { s.motor = p }

func (s *Sim) SpringEnabled() bool           { return s.useSpring }
func (s *Sim) SetSpringEnabled(enabled bool) { s.useSpring = enabled }

func (s *Sim) MotorEnabled() bool           { return s.useMotor }
func (s *Sim) SetMotorEnabled(enabled bool) { s.useMotor = enabled }

// Advance integrates the hinge over dt (semi-implicit Euler).
func (s *Sim) Advance(dt time.Duration) {
	h := dt.Seconds()
	if h <= 0 {
		return
	}

	var torque float64
	if s.useSpring {
		torque += -s.spring.Stiffness*(s.angle-s.target) - s.spring.Damping*s.velocity
	}
	if s.useMotor && s.motor.Force > 0 {
		// Torque needed to reach target velocity this step, capped by motor force.
		need := (s.motor.TargetVelocity - s.velocity) * s.inertia / h
		torque += math.Max(-s.motor.Force, math.Min(s.motor.Force, need))
	}

	s.velocity += torque / s.inertia * h
	s.angle += s.velocity * h

	if s.angle < s.limits.Min || s.angle > s.limits.Max {
		s.angle = s.limits.Clamp(s.angle)
		s.velocity = 0
	}
}
