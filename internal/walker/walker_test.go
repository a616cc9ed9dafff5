package walker

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gatekeep/internal/model"
	"github.com/udisondev/gatekeep/internal/testutil"
)

// fakeAgent is always "arrived" unless remaining is set.
type fakeAgent struct {
	position     model.Vec3
	velocity     model.Vec3
	speed        float64
	steering     model.Vec3
	remaining    float64
	destinations []model.Vec3
}

func (a *fakeAgent) SetDestination(p model.Vec3) {
	a.destinations = append(a.destinations, p)
	a.steering = p
}
func (a *fakeAgent) Position() model.Vec3        { return a.position }
func (a *fakeAgent) Velocity() model.Vec3        { return a.velocity }
func (a *fakeAgent) Speed() float64              { return a.speed }
func (a *fakeAgent) SteeringTarget() model.Vec3  { return a.steering }
func (a *fakeAgent) PathPending() bool           { return false }
func (a *fakeAgent) RemainingDistance() float64  { return a.remaining }
func (a *fakeAgent) StoppingDistance() float64   { return 0.1 }

var square = []model.Vec3{{X: 0, Z: 10}, {X: 10, Z: 10}, {X: 10, Z: 0}}

func TestWalker_AnimatorParams(t *testing.T) {
	agent := &fakeAgent{speed: 3, velocity: model.Vec3{X: 1.5}, remaining: 5}
	anim := testutil.NewMockAnimator()
	cfg := DefaultConfig()
	cfg.Waypoints = []model.Vec3{{X: 10}}
	w := New("peasant", agent, anim, cfg, 0)
	w.Start()

	w.Advance(100 * time.Millisecond)

	assert.InDelta(t, 0.5, anim.Floats[ParamSpeed], 1e-12)
	assert.InDelta(t, 1.0, anim.Floats[ParamTurn], 1e-12, "target 90° to the right saturates turn")
	assert.InDelta(t, 36.0, w.Yaw(), 1e-9, "360°/s for 0.1s")

	for range 10 {
		w.Advance(100 * time.Millisecond)
	}
	assert.InDelta(t, 90.0, w.Yaw(), 1e-9, "turn stops at the path direction")
	assert.InDelta(t, 0.0, anim.Floats[ParamTurn], 1e-9)
}

func TestWalker_ZeroSpeedAgent(t *testing.T) {
	agent := &fakeAgent{speed: 0, remaining: 5}
	anim := testutil.NewMockAnimator()
	cfg := DefaultConfig()
	cfg.Waypoints = square
	w := New("peasant", agent, anim, cfg, 0)
	w.Start()

	w.Advance(time.Second / 60)

	assert.Equal(t, 0.0, anim.Floats[ParamSpeed])
}

func TestWalker_LoopsWithPauseAtLastWaypoint(t *testing.T) {
	agent := &fakeAgent{speed: 1}
	cfg := DefaultConfig()
	cfg.Waypoints = square
	cfg.LoopPause = 2 * time.Second
	w := New("peasant", agent, testutil.NewMockAnimator(), cfg, 0)

	w.Start()
	require.Equal(t, []model.Vec3{square[0]}, agent.destinations)

	step := 500 * time.Millisecond
	w.Advance(step)
	w.Advance(step)
	assert.Equal(t, 2, w.Index())
	assert.Equal(t, model.IntentionMoveTo, w.Intention())

	w.Advance(step) // arrive at the last waypoint, start waiting
	assert.Equal(t, model.IntentionWait, w.Intention())
	assert.Equal(t, 1, w.Loops())

	for range 3 {
		w.Advance(step)
		assert.Equal(t, 2, w.Index(), "still waiting")
	}
	w.Advance(step)
	assert.Equal(t, 0, w.Index(), "wrapped after the loop pause")
	assert.Equal(t, model.IntentionMoveTo, w.Intention())
	assert.Equal(t, []model.Vec3{square[0], square[1], square[2], square[0]}, agent.destinations)
}

func TestWalker_NoArrivalWhileMoving(t *testing.T) {
	agent := &fakeAgent{speed: 1, remaining: 3}
	cfg := DefaultConfig()
	cfg.Waypoints = square
	w := New("peasant", agent, testutil.NewMockAnimator(), cfg, 0)
	w.Start()

	for range 10 {
		w.Advance(time.Second)
	}

	assert.Equal(t, 0, w.Index())
	assert.Len(t, agent.destinations, 1)
}

func TestWalker_InertWithoutWaypoints(t *testing.T) {
	agent := &fakeAgent{}
	anim := testutil.NewMockAnimator()
	w := New("lost", agent, anim, DefaultConfig(), 0)

	assert.NotPanics(t, func() {
		w.Start()
		w.Advance(time.Second)
	})
	assert.Empty(t, agent.destinations)
	assert.Empty(t, anim.Floats)
}

func TestWalker_InertWithoutAnimator(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	agent := &fakeAgent{}
	cfg := DefaultConfig()
	cfg.Waypoints = square
	w := New("mute", agent, nil, cfg, 0)

	assert.True(t, w.Inert())
	assert.Contains(t, logs.String(), "walker is inert")
	assert.Contains(t, logs.String(), "animator=false")

	assert.NotPanics(t, func() {
		w.Start()
		w.Advance(time.Second)
	})
	assert.Empty(t, agent.destinations)
}

func TestWalker_WithLinearAgent(t *testing.T) {
	agent := NewLinearAgent(model.Vec3{}, 2, 0.1)
	cfg := DefaultConfig()
	cfg.Waypoints = square
	cfg.LoopPause = time.Second
	w := New("peasant", agent, testutil.NewMockAnimator(), cfg, 0)
	w.Start()

	dt := 50 * time.Millisecond
	for range 800 {
		agent.Advance(dt)
		w.Advance(dt)
	}

	// 30 units per lap at 2 u/s plus the 1s pause: 40s covers one full lap.
	assert.GreaterOrEqual(t, w.Loops(), 1)
}

func TestLinearAgent_StopsAtDestination(t *testing.T) {
	a := NewLinearAgent(model.Vec3{}, 4, 0.05)
	a.SetDestination(model.Vec3{X: 1})

	a.Advance(time.Second)

	assert.InDelta(t, 1.0, a.Position().X, 1e-9, "never overshoots")
	a.Advance(time.Second)
	assert.Equal(t, model.Vec3{}, a.Velocity())
	assert.LessOrEqual(t, a.RemainingDistance(), a.StoppingDistance())
}
