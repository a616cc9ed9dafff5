package gate

import (
	"log/slog"
	"time"

	"github.com/udisondev/gatekeep/internal/joint"
)

// Opener is the trigger-facing side of a gate.
type Opener interface {
	Open()
	Close()
}

var (
	_ Opener = (*Controller)(nil)
	_ Opener = (*MotorGate)(nil)
	_ Opener = (*SpringGate)(nil)
)

// MotorGate swings a hinge with its motor only: open drives at +OpenSpeed,
// close at -CloseSpeed. The motor stays enabled afterwards and the hinge
// limits stop the leaf.
type MotorGate struct {
	name       string
	joint      joint.Actuator
	openSpeed  float64
	closeSpeed float64
	force      float64
}

// Motor gate defaults, used when a speed or force is not positive.
const (
	DefaultMotorSpeed = 200.0 // deg/s
	DefaultMotorForce = 1200.0
)

// NewMotorGate creates a motor-driven gate. A nil actuator makes it inert.
// Non-positive speeds and force fall back to DefaultMotorSpeed and
// DefaultMotorForce.
func NewMotorGate(name string, act joint.Actuator, openSpeed, closeSpeed, force float64) *MotorGate {
	if act == nil {
		slog.Warn("gate is inert", "gate", name, "err", ErrMissingActuator)
	}
	if openSpeed <= 0 {
		openSpeed = DefaultMotorSpeed
	}
	if closeSpeed <= 0 {
		closeSpeed = DefaultMotorSpeed
	}
	if force <= 0 {
		force = DefaultMotorForce
	}
	return &MotorGate{
		name:       name,
		joint:      act,
		openSpeed:  openSpeed,
		closeSpeed: closeSpeed,
		force:      force,
	}
}

// Name returns the gate name.
func (g *MotorGate) Name() string { return g.name }

// Open drives the motor toward the open side.
func (g *MotorGate) Open() { g.setMotor(g.openSpeed) }

// Close drives the motor toward the closed side.
func (g *MotorGate) Close() { g.setMotor(-g.closeSpeed) }

// Advance is a no-op; the motor keeps running until the next command.
func (g *MotorGate) Advance(time.Duration) {}

func (g *MotorGate) setMotor(velocity float64) {
	if g.joint == nil {
		return
	}
	g.joint.SetMotorEnabled(true)
	m := g.joint.Motor()
	m.TargetVelocity = velocity
	m.Force = g.force
	g.joint.SetMotor(m)
}

// SpringTuning holds the separate open/close spring settings of a SpringGate.
type SpringTuning struct {
	OpenSpring  float64 // lower = heavier/slower
	OpenDamper  float64
	CloseSpring float64 // higher snaps shut
	CloseDamper float64
	SlamOnClose bool
}

// DefaultSpringTuning returns the stock zone-gate tuning.
func DefaultSpringTuning() SpringTuning {
	return SpringTuning{
		OpenSpring:  90,
		OpenDamper:  50,
		CloseSpring: 160,
		CloseDamper: 60,
		SlamOnClose: true,
	}
}

// SpringGate moves by retuning the joint spring toward the open or closed
// angle, with an optional slam burst on close. The slam does not restore
// spring/damper itself: Close retunes them first and the burst only owns
// the motor.
type SpringGate struct {
	ctl    *Controller
	tuning SpringTuning
}

// NewSpringGate creates a spring-driven gate. Steady state starts at the
// open tuning with the joint's current rest angle.
func NewSpringGate(name string, act joint.Actuator, cfg Config, tuning SpringTuning, opts ...Option) *SpringGate {
	cfg.Spring = tuning.OpenSpring
	cfg.Damper = tuning.OpenDamper
	return &SpringGate{
		ctl:    New(name, act, cfg, opts...),
		tuning: tuning,
	}
}

// Controller exposes the underlying controller.
func (g *SpringGate) Controller() *Controller { return g.ctl }

// Open stops any slam burst and pulls the gate open with the open tuning.
func (g *SpringGate) Open() {
	cfg := g.ctl.Config()
	g.ctl.Retune(g.tuning.OpenSpring, g.tuning.OpenDamper, cfg.OpenAngle)
}

// Close pulls the gate shut with the close tuning and optionally slams it.
func (g *SpringGate) Close() {
	cfg := g.ctl.Config()
	g.ctl.Retune(g.tuning.CloseSpring, g.tuning.CloseDamper, cfg.ClosedAngle)
	if g.tuning.SlamOnClose {
		g.ctl.Slam(cfg.ClosedAngle)
	}
}

// Advance forwards the tick to the controller.
func (g *SpringGate) Advance(dt time.Duration) { g.ctl.Advance(dt) }
