// Package gate drives hinged gates: a Controller owns one rotary joint and
// runs at most one motion routine (smooth, stutter or slam) at a time,
// keeping spring/damper/motor parameters consistent with the motion phase.
//
// The controller is single-threaded: Open, Close, Start and Advance must be
// called from the same goroutine (the scene tick loop).
package gate

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/gatekeep/internal/joint"
)

// ErrMissingActuator is reported when a gate is created without a joint.
var ErrMissingActuator = errors.New("gate has no joint actuator")

// Smooth opening runs at this fraction of CloseSpeed.
const smoothOpenSpeedFactor = 0.6

// routine is one running motion. start runs the routine up to its first
// suspension point; resume continues after a tick. Both return true once the
// routine has finished and performed its own termination cleanup.
type routine interface {
	kind() MotionKind
	goalAngle() float64
	start(c *Controller) bool
	resume(c *Controller, dt time.Duration) bool
	// cancel undoes enable flags the routine set. It never restores
	// steady-state spring/damper.
	cancel(c *Controller)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRandom injects the random source used by stutter motion.
func WithRandom(rng Random) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithObserver registers a receiver for gate events.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// Controller drives one gate joint.
type Controller struct {
	name     string
	joint    joint.Actuator
	cfg      Config
	rng      Random
	observer Observer

	// Steady-state values restored whenever no routine is active.
	baseSpring float64
	baseDamper float64

	lo, hi float64

	now    time.Duration
	active routine

	err error // non-nil means the controller is inert
}

// New creates a gate controller and applies steady-state parameters to the
// joint immediately. A nil actuator or an invalid config is logged and makes
// the controller inert: every call becomes a no-op. Err reports the cause.
func New(name string, act joint.Actuator, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		name: name,
		cfg:  cfg,
	}
	for _, opt := range opts {
		opt(c)
	}

	if act == nil {
		c.err = ErrMissingActuator
		slog.Warn("gate is inert", "gate", name, "err", c.err)
		return c
	}
	if err := cfg.Validate(); err != nil {
		c.err = err
		slog.Warn("gate is inert", "gate", name, "err", err)
		return c
	}

	if c.rng == nil {
		c.rng = NewRandom(uint64(time.Now().UnixNano()))
	}

	c.joint = act
	c.baseSpring = cfg.Spring
	c.baseDamper = cfg.Damper
	c.lo = math.Min(cfg.ClosedAngle, cfg.OpenAngle)
	c.hi = math.Max(cfg.ClosedAngle, cfg.OpenAngle)

	c.joint.SetMotorEnabled(false)
	c.applySpring(c.baseSpring, c.baseDamper, c.joint.TargetAngle())

	slog.Debug("gate initialized",
		"gate", name,
		"target", c.joint.TargetAngle(),
		"spring", c.baseSpring,
		"damper", c.baseDamper)

	return c
}

// Name returns the gate name.
func (c *Controller) Name() string { return c.name }

// Err returns the setup error that made the controller inert, if any.
func (c *Controller) Err() error { return c.err }

// Inert reports whether the controller ignores all calls.
func (c *Controller) Inert() bool { return c.err != nil }

// Config returns the gate configuration.
func (c *Controller) Config() Config { return c.cfg }

// Now returns the controller clock (sum of Advance deltas).
func (c *Controller) Now() time.Duration { return c.now }

// Active returns the kind of the running routine, MotionNone when idle.
func (c *Controller) Active() MotionKind {
	if c.active == nil {
		return MotionNone
	}
	return c.active.kind()
}

// Idle reports whether no routine is running.
func (c *Controller) Idle() bool { return c.active == nil }

// Open starts a stutter or smooth motion toward the open angle.
func (c *Controller) Open() {
	if c.Inert() {
		return
	}
	if c.cfg.StutterOnOpen {
		c.Start(Stutter{
			Target:          c.cfg.OpenAngle,
			Step:            c.cfg.StepDegrees,
			Pause:           c.cfg.Pause,
			BackslipDegrees: c.cfg.BackslipDegrees,
			BackslipChance:  c.cfg.BackslipChance,
			SlipHold:        c.cfg.BackslipHold,
		})
		return
	}
	c.Start(Smooth{Target: c.cfg.OpenAngle, Speed: c.cfg.CloseSpeed * smoothOpenSpeedFactor})
}

// Close starts a smooth motion toward the closed angle.
func (c *Controller) Close() {
	if c.Inert() {
		return
	}
	c.Start(Smooth{Target: c.cfg.ClosedAngle, Speed: c.cfg.CloseSpeed})
}

// Slam starts a motor burst toward target using the configured slam tuning.
func (c *Controller) Slam(target float64) {
	if c.Inert() {
		return
	}
	c.Start(Slam{
		Target:   target,
		Velocity: c.cfg.Slam.Velocity,
		Force:    c.cfg.Slam.Force,
		Duration: c.cfg.Slam.Duration,
	})
}

// Start supersedes the running routine (if any) with a new one built from p.
// Repeating the same request restarts the routine from the current target.
func (c *Controller) Start(p MotionProfile) {
	if c.Inert() || p == nil {
		return
	}

	c.supersede()

	r := p.newRoutine(c)
	c.active = r
	c.emit(EventStarted, r.kind(), r.goalAngle())

	slog.Debug("gate motion started",
		"gate", c.name,
		"motion", r.kind(),
		"from", c.joint.TargetAngle(),
		"goal", r.goalAngle())

	if r.start(c) {
		c.finish(r)
	}
}

// Retune supersedes the running routine and installs new steady-state
// spring/damper values with the given rest angle.
func (c *Controller) Retune(spring, damper, target float64) {
	if c.Inert() {
		return
	}
	c.supersede()
	c.baseSpring = spring
	c.baseDamper = damper
	c.applySpring(spring, damper, target)
	c.emit(EventRetuned, MotionNone, c.joint.TargetAngle())
}

// Advance moves the controller clock by dt and resumes the running routine.
func (c *Controller) Advance(dt time.Duration) {
	if c.Inert() {
		return
	}
	c.now += dt
	if c.active == nil {
		return
	}
	if r := c.active; r.resume(c, dt) {
		c.finish(r)
	}
}

// SteadyState returns the spring/damper values applied while idle.
func (c *Controller) SteadyState() joint.SpringParams {
	return joint.SpringParams{Stiffness: c.baseSpring, Damping: c.baseDamper}
}

// supersede cancels the running routine before any shared state is mutated.
func (c *Controller) supersede() {
	r := c.active
	if r == nil {
		return
	}
	c.active = nil
	r.cancel(c)
	c.emit(EventSuperseded, r.kind(), r.goalAngle())

	slog.Debug("gate motion superseded",
		"gate", c.name,
		"motion", r.kind(),
		"target", c.joint.TargetAngle())
}

func (c *Controller) finish(r routine) {
	if c.active == r {
		c.active = nil
	}
	c.emit(EventSettled, r.kind(), c.joint.TargetAngle())

	slog.Debug("gate motion settled",
		"gate", c.name,
		"motion", r.kind(),
		"target", c.joint.TargetAngle(),
		"at", c.now)
}

// --- joint helpers ---

func (c *Controller) clamp(angle float64) float64 {
	return math.Max(c.lo, math.Min(c.hi, angle))
}

func (c *Controller) target() float64 { return c.joint.TargetAngle() }

func (c *Controller) setTarget(angle float64) {
	c.joint.SetTargetAngle(c.clamp(angle))
}

func (c *Controller) applySpring(spring, damper, target float64) {
	c.joint.SetSpringEnabled(true)
	c.joint.SetSpring(joint.SpringParams{Stiffness: spring, Damping: damper})
	c.setTarget(target)
}

// boost applies the moving damper at the current target.
func (c *Controller) boost() {
	c.applySpring(c.baseSpring, c.baseDamper*c.cfg.MovingDamperMultiplier, c.target())
}

// settle restores steady-state spring/damper at the current target.
func (c *Controller) settle() {
	c.applySpring(c.baseSpring, c.baseDamper, c.target())
}

func (c *Controller) epsilon() float64 { return c.cfg.Epsilon }
