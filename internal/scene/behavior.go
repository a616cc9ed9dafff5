package scene

import "time"

// Behavior is anything driven by the scene clock: gate controllers, joint
// simulations, walkers, dialogue sequencers, scripted actors.
type Behavior interface {
	// Advance moves the behavior forward by dt of scene time.
	Advance(dt time.Duration)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(dt time.Duration)

// Advance calls f(dt).
func (f BehaviorFunc) Advance(dt time.Duration) { f(dt) }

// starter is implemented by behaviors that need a kick on registration
// (walker.Walker sends its first destination).
type starter interface {
	Start()
}

// stopper is implemented by behaviors that release resources on unregister.
type stopper interface {
	Stop()
}

// After fires fn once when the scene clock reaches at.
// Zero or negative at fires on the first tick.
func After(at time.Duration, fn func()) Behavior {
	return &timer{at: at, fn: fn}
}

type timer struct {
	at    time.Duration
	now   time.Duration
	fired bool
	fn    func()
}

func (t *timer) Advance(dt time.Duration) {
	if t.fired {
		return
	}
	t.now += dt
	if t.now < t.at {
		return
	}
	t.fired = true
	t.fn()
}
