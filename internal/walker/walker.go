// Package walker drives a looping waypoint-walking NPC on top of an external
// navigation agent. The walker only chooses destinations, turns the body and
// feeds animator parameters; path finding belongs to the agent.
package walker

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/gatekeep/internal/model"
)

// Animator parameter names.
const (
	ParamSpeed = "Speed"
	ParamTurn  = "Turn"
)

// Agent is the navigation agent moving the NPC body.
type Agent interface {
	SetDestination(p model.Vec3)
	Position() model.Vec3
	Velocity() model.Vec3
	Speed() float64
	SteeringTarget() model.Vec3
	PathPending() bool
	RemainingDistance() float64
	StoppingDistance() float64
}

// Animator receives locomotion parameters.
type Animator interface {
	SetFloat(name string, value float64)
	SetTrigger(name string)
}

// Config tunes a walker.
type Config struct {
	Waypoints []model.Vec3
	TurnSpeed float64       // deg/s toward the path
	LoopPause time.Duration // pause at the last waypoint
}

// DefaultConfig returns stock walker tuning without waypoints.
func DefaultConfig() Config {
	return Config{
		TurnSpeed: 360,
		LoopPause: 10 * time.Second,
	}
}

// Walker loops through waypoints in order, pausing after the last one.
type Walker struct {
	name  string
	agent Agent
	anim  Animator
	cfg   Config

	yaw       float64
	index     int
	intention model.Intention
	waitUntil time.Duration
	now       time.Duration
	loops     int
}

// New creates a walker facing yaw degrees. Without waypoints, an agent or an
// animator the walker stays idle.
func New(name string, agent Agent, anim Animator, cfg Config, yaw float64) *Walker {
	w := &Walker{
		name:  name,
		agent: agent,
		anim:  anim,
		cfg:   cfg,
		yaw:   yaw,
	}
	if w.inert() {
		slog.Warn("walker is inert",
			"walker", name,
			"waypoints", len(cfg.Waypoints),
			"agent", agent != nil,
			"animator", anim != nil)
	}
	return w
}

// Start sends the agent to the first waypoint.
func (w *Walker) Start() {
	if w.inert() {
		return
	}
	w.index = 0
	w.setIntention(model.IntentionMoveTo)
	w.agent.SetDestination(w.cfg.Waypoints[0])
}

// Inert reports whether the walker is missing its agent, animator or waypoints.
func (w *Walker) Inert() bool { return w.inert() }

// Name returns the walker name.
func (w *Walker) Name() string { return w.name }

// Yaw returns the body heading in degrees.
func (w *Walker) Yaw() float64 { return w.yaw }

// Index returns the current waypoint index.
func (w *Walker) Index() int { return w.index }

// Intention returns the walker state.
func (w *Walker) Intention() model.Intention { return w.intention }

// Loops returns how many full loops were completed.
func (w *Walker) Loops() int { return w.loops }

// Advance runs one frame: animator parameters, turning, and waypoint arrival.
func (w *Walker) Advance(dt time.Duration) {
	if w.inert() {
		return
	}
	w.now += dt

	w.updateSpeed()
	w.updateTurn(dt)

	if w.agent.PathPending() || w.agent.RemainingDistance() > w.agent.StoppingDistance() {
		return
	}

	if w.intention == model.IntentionWait {
		if w.now >= w.waitUntil {
			w.advanceWaypoint()
		}
		return
	}

	if w.index == len(w.cfg.Waypoints)-1 {
		w.setIntention(model.IntentionWait)
		w.waitUntil = w.now + w.cfg.LoopPause
		w.loops++
		return
	}
	w.advanceWaypoint()
}

func (w *Walker) updateSpeed() {
	speedPct := 0.0
	if s := w.agent.Speed(); s > 0 {
		speedPct = w.agent.Velocity().Length() / s
	}
	w.anim.SetFloat(ParamSpeed, speedPct)
}

func (w *Walker) updateTurn(dt time.Duration) {
	desired := w.agent.SteeringTarget().Sub(w.agent.Position())
	desired.Y = 0
	desired = desired.Normalized()

	turnPct := 0.0
	if desired.LengthSquared() > 0.001 {
		angle := model.SignedYaw(model.Forward(w.yaw), desired)
		turnPct = clamp(angle/90, -1, 1)

		step := w.cfg.TurnSpeed * dt.Seconds()
		w.yaw = normalizeYaw(w.yaw + clamp(angle, -step, step))
	}
	w.anim.SetFloat(ParamTurn, turnPct)
}

func (w *Walker) advanceWaypoint() {
	w.index = (w.index + 1) % len(w.cfg.Waypoints)
	w.setIntention(model.IntentionMoveTo)
	w.agent.SetDestination(w.cfg.Waypoints[w.index])
}

func (w *Walker) setIntention(i model.Intention) {
	if w.intention != i {
		slog.Debug("walker intention changed", "walker", w.name, "from", w.intention, "to", i, "waypoint", w.index)
	}
	w.intention = i
}

func (w *Walker) inert() bool {
	return w.agent == nil || w.anim == nil || len(w.cfg.Waypoints) == 0
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func normalizeYaw(y float64) float64 {
	y = math.Mod(y, 360)
	if y < 0 {
		y += 360
	}
	return y
}
