package scene

import (
	"log/slog"
	"time"

	"github.com/udisondev/gatekeep/internal/model"
	"github.com/udisondev/gatekeep/internal/trigger"
)

// Script moves a body along a polyline at constant speed and revalidates
// trigger zones after every move. It stands in for the player.
type Script struct {
	body  trigger.Body
	path  []model.Vec3
	speed float64 // units/s
	zones *trigger.Manager

	next int
	done bool
}

// NewScript creates a script starting at path[0].
// Empty path or non-positive speed leaves the body where it is.
func NewScript(body trigger.Body, path []model.Vec3, speed float64, zones *trigger.Manager) *Script {
	s := &Script{
		body:  body,
		path:  path,
		speed: speed,
		zones: zones,
	}
	if len(path) > 0 {
		s.body.Position = path[0]
		s.next = 1
	}
	if len(path) < 2 || speed <= 0 {
		s.done = true
	}
	return s
}

// Start reports the initial position to the zones.
func (s *Script) Start() {
	if s.zones != nil {
		s.zones.Revalidate(s.body)
	}
}

// Body returns the current body state.
func (s *Script) Body() trigger.Body { return s.body }

// Done reports whether the path end was reached.
func (s *Script) Done() bool { return s.done }

// Advance moves the body by speed*dt along the path.
func (s *Script) Advance(dt time.Duration) {
	if s.done {
		return
	}
	budget := s.speed * dt.Seconds()
	for budget > 0 && s.next < len(s.path) {
		to := s.path[s.next]
		dist := s.body.Position.Distance(to)
		if dist <= budget {
			s.body.Position = to
			budget -= dist
			s.next++
			continue
		}
		dir := to.Sub(s.body.Position).Normalized()
		s.body.Position = s.body.Position.Add(dir.Scale(budget))
		budget = 0
	}
	if s.next >= len(s.path) {
		s.done = true
		slog.Debug("script finished", "body", s.body.ID, "position", s.body.Position)
	}
	if s.zones != nil {
		s.zones.Revalidate(s.body)
	}
}
