package walker

import (
	"time"

	"github.com/udisondev/gatekeep/internal/model"
)

// LinearAgent is a straight-line stand-in for a navigation agent, used by
// the headless simulator. It has no path planning: it walks directly toward
// the destination at a constant speed.
type LinearAgent struct {
	position    model.Vec3
	destination model.Vec3
	speed       float64
	stopping    float64
	velocity    model.Vec3
}

var _ Agent = (*LinearAgent)(nil)

// NewLinearAgent creates an agent at position.
func NewLinearAgent(position model.Vec3, speed, stoppingDistance float64) *LinearAgent {
	return &LinearAgent{
		position:    position,
		destination: position,
		speed:       speed,
		stopping:    stoppingDistance,
	}
}

func (a *LinearAgent) SetDestination(p model.Vec3) { a.destination = p }
func (a *LinearAgent) Position() model.Vec3        { return a.position }
func (a *LinearAgent) Velocity() model.Vec3        { return a.velocity }
func (a *LinearAgent) Speed() float64              { return a.speed }
func (a *LinearAgent) SteeringTarget() model.Vec3  { return a.destination }
func (a *LinearAgent) PathPending() bool           { return false }
func (a *LinearAgent) StoppingDistance() float64   { return a.stopping }

// RemainingDistance returns the straight-line distance to the destination.
func (a *LinearAgent) RemainingDistance() float64 {
	return a.position.Distance(a.destination)
}

// Advance moves the agent toward its destination.
func (a *LinearAgent) Advance(dt time.Duration) {
	remaining := a.RemainingDistance()
	if remaining <= a.stopping || a.speed <= 0 {
		a.velocity = model.Vec3{}
		return
	}
	dir := a.destination.Sub(a.position).Normalized()
	step := min(a.speed*dt.Seconds(), remaining)
	a.position = a.position.Add(dir.Scale(step))
	a.velocity = dir.Scale(a.speed)
}
