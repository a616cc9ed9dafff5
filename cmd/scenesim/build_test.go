package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gatekeep/internal/config"
	"github.com/udisondev/gatekeep/internal/gate"
	"github.com/udisondev/gatekeep/internal/journal"
)

func runDefault(t *testing.T, cfg config.Scene) (*sceneRuntime, *journal.Recorder) {
	t.Helper()
	rec := journal.NewRecorder()
	sc, err := buildScene(cfg, rec)
	require.NoError(t, err)
	require.NoError(t, runTicks(context.Background(), sc.mgr, cfg))
	rec.Close()
	return sc, rec
}

func motions(events []gate.Event, kind gate.EventKind) []gate.MotionKind {
	var out []gate.MotionKind
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e.Motion)
		}
	}
	return out
}

func TestBuildScene_DefaultCourtyard(t *testing.T) {
	cfg := config.DefaultScene()
	sc, rec := runDefault(t, cfg)

	assert.Equal(t, cfg.Duration, sc.mgr.Elapsed())
	assert.True(t, sc.player.Done())

	// Player passes through the approach zone: open (stutter) then close (smooth).
	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, gate.EventStarted, events[0].Kind)
	assert.Equal(t, gate.MotionStutter, events[0].Motion)
	assert.Contains(t, motions(events, gate.EventStarted), gate.MotionSmooth)
	last := events[len(events)-1]
	assert.Equal(t, gate.EventSettled, last.Kind)
	assert.Equal(t, gate.MotionSmooth, last.Motion)

	require.Len(t, sc.gates, 1)
	assert.True(t, sc.gates[0].ctl.Idle())
	assert.InDelta(t, 0, sc.gates[0].sim.TargetAngle(), gate.DefaultEpsilon)

	require.Len(t, sc.dialogues, 1)
	assert.Equal(t, []string{"Line1", "Line3"}, sc.dialogues[0].Played(), "pickup at 12s suppresses the prod")

	require.Len(t, sc.walkers, 1)
	assert.GreaterOrEqual(t, sc.walkers[0].Loops(), 1)

	traces := rec.Traces()
	require.Len(t, traces, 1)
	assert.Equal(t, int(sc.mgr.Ticks()), traces[0].Len())
}

func TestBuildScene_Deterministic(t *testing.T) {
	cfg := config.DefaultScene()
	_, a := runDefault(t, cfg)
	_, b := runDefault(t, cfg)
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestBuildScene_NoPickupPlaysProd(t *testing.T) {
	cfg := config.DefaultScene()
	cfg.PickupAt = 0
	sc, _ := runDefault(t, cfg)
	assert.Equal(t, []string{"Line1", "Line2"}, sc.dialogues[0].Played())
}

func TestBuildScene_GateKinds(t *testing.T) {
	cfg := config.DefaultScene()
	cfg.Gates = []config.GateConfig{
		{Name: "courtyard", Kind: config.GateSpring},
		{Name: "barn", Kind: config.GateMotor, MotorOpenSpeed: 30, MotorCloseSpeed: 60, MotorForce: 500},
	}
	cfg.Triggers = append(cfg.Triggers, config.TriggerConfig{
		Name: "barn-door", Gate: "barn", Mode: "open", Shape: "Cuboid",
		MinY: -1, MaxY: 3, Nodes: [][2]float64{{-1, 12}, {1, 16}},
	})
	cfg.Duration = 20 * time.Second
	require.NoError(t, cfg.Validate())

	sc, rec := runDefault(t, cfg)
	require.Len(t, sc.gates, 2)

	spring := sc.gates[0]
	require.NotNil(t, spring.ctl)
	assert.Equal(t, gate.DefaultSpringTuning().CloseSpring, spring.ctl.SteadyState().Stiffness)

	barn := sc.gates[1]
	assert.Nil(t, barn.ctl)
	assert.True(t, barn.sim.MotorEnabled())
	assert.Equal(t, 30.0, barn.sim.Motor().TargetVelocity)

	assert.Len(t, rec.Traces(), 2)
}

func TestBuildScene_MotorGateDefaults(t *testing.T) {
	cfg := config.DefaultScene()
	cfg.Gates = append(cfg.Gates, config.GateConfig{Name: "barn", Kind: config.GateMotor})
	cfg.Triggers = append(cfg.Triggers, config.TriggerConfig{
		Name: "barn-door", Gate: "barn", Mode: "open", Shape: "Cuboid",
		MinY: -1, MaxY: 3, Nodes: [][2]float64{{-1, 12}, {1, 16}},
	})
	cfg.Duration = 20 * time.Second
	require.NoError(t, cfg.Validate())

	sc, _ := runDefault(t, cfg)

	barn := sc.gates[len(sc.gates)-1]
	require.Nil(t, barn.ctl)
	assert.True(t, barn.sim.MotorEnabled())
	assert.Equal(t, gate.DefaultMotorSpeed, barn.sim.Motor().TargetVelocity)
	assert.Equal(t, gate.DefaultMotorForce, barn.sim.Motor().Force)
	assert.Greater(t, barn.sim.Angle(), 0.0, "unconfigured motor gate must still swing")
}

func TestBuildScene_UnknownLocale(t *testing.T) {
	cfg := config.DefaultScene()
	cfg.Locale = "xx"
	_, err := buildScene(cfg, journal.NewRecorder())
	assert.Error(t, err)
}

func TestRunTicks_Interrupted(t *testing.T) {
	cfg := config.DefaultScene()
	sc, err := buildScene(cfg, journal.NewRecorder())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runTicks(ctx, sc.mgr, cfg))
	assert.Zero(t, sc.mgr.Ticks())
}

func TestPrintSummary(t *testing.T) {
	sc, rec := runDefault(t, config.DefaultScene())

	var buf bytes.Buffer
	printSummary(&buf, false, sc.summary(rec))
	out := buf.String()

	assert.Contains(t, out, "scene finished: 45s")
	assert.Contains(t, out, "gate courtyard [controller]")
	assert.Contains(t, out, "npc  sergeant dialogue lines=[Line1 Line3] IDLE")
	assert.Contains(t, out, rec.Digest())
	assert.NotContains(t, out, "\x1b[")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}
