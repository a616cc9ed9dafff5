package gate

import "time"

// EventKind classifies gate events.
type EventKind int32

const (
	// EventStarted - a routine took ownership of the joint
	EventStarted EventKind = iota
	// EventSuperseded - a routine was cancelled by a newer request
	EventSuperseded
	// EventSettled - a routine finished and released the joint
	EventSettled
	// EventRetuned - steady-state spring/damper were replaced
	EventRetuned
)

// String returns human-readable event name
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "STARTED"
	case EventSuperseded:
		return "SUPERSEDED"
	case EventSettled:
		return "SETTLED"
	case EventRetuned:
		return "RETUNED"
	default:
		return "UNKNOWN"
	}
}

// Event is emitted on routine lifecycle transitions.
type Event struct {
	Gate   string
	At     time.Duration
	Kind   EventKind
	Motion MotionKind
	Target float64
}

// Observer receives gate events on the tick goroutine.
type Observer interface {
	OnGateEvent(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

// OnGateEvent calls f(e).
func (f ObserverFunc) OnGateEvent(e Event) { f(e) }

func (c *Controller) emit(kind EventKind, motion MotionKind, target float64) {
	if c.observer == nil {
		return
	}
	c.observer.OnGateEvent(Event{
		Gate:   c.name,
		At:     c.now,
		Kind:   kind,
		Motion: motion,
		Target: target,
	})
}
