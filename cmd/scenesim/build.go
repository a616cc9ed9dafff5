package main

import (
	"fmt"
	"time"

	"github.com/udisondev/gatekeep/internal/config"
	"github.com/udisondev/gatekeep/internal/dialogue"
	"github.com/udisondev/gatekeep/internal/gate"
	"github.com/udisondev/gatekeep/internal/joint"
	"github.com/udisondev/gatekeep/internal/journal"
	"github.com/udisondev/gatekeep/internal/model"
	"github.com/udisondev/gatekeep/internal/scene"
	"github.com/udisondev/gatekeep/internal/trigger"
	"github.com/udisondev/gatekeep/internal/walker"
)

// playerID is the body ID of the scripted player.
const playerID = 1

// gateBehavior is a gate kind that needs the scene clock.
type gateBehavior interface {
	gate.Opener
	Advance(dt time.Duration)
}

type gateHandle struct {
	name string
	kind string
	sim  *joint.Sim
	ctl  *gate.Controller // nil for motor gates
}

type sceneRuntime struct {
	mgr       *scene.TickManager
	zones     *trigger.Manager
	gates     []gateHandle
	walkers   []*walker.Walker
	dialogues []*dialogue.Sequencer
	player    *scene.Script
}

// buildScene wires config into behaviors registered on a tick manager.
// Tick order: player, gates, joints, walkers, dialogue, scheduled events.
func buildScene(cfg config.Scene, rec *journal.Recorder) (*sceneRuntime, error) {
	sc := &sceneRuntime{
		mgr:   scene.NewTickManager(cfg.Tick),
		zones: trigger.NewManager(),
	}

	openers := make(map[string]gate.Opener, len(cfg.Gates))
	var gateBehaviors []scene.Behavior
	var jointBehaviors []scene.Behavior

	for i, gc := range cfg.Gates {
		motion := gc.Motion()
		sim := joint.NewSim(motion.ClosedAngle, gc.HingeLimits(), gc.InertiaOrDefault())
		h := gateHandle{name: gc.Name, kind: gc.KindOrDefault(), sim: sim}
		opts := []gate.Option{
			gate.WithRandom(gate.NewRandom(cfg.Seed + uint64(i))),
			gate.WithObserver(rec),
		}

		var b gateBehavior
		switch h.kind {
		case config.GateSpring:
			sg := gate.NewSpringGate(gc.Name, sim, motion, gc.Tuning(), opts...)
			h.ctl = sg.Controller()
			b = sg
		case config.GateMotor:
			b = gate.NewMotorGate(gc.Name, sim, gc.MotorOpenSpeed, gc.MotorCloseSpeed, gc.MotorForce)
		default:
			h.ctl = gate.New(gc.Name, sim, motion, opts...)
			b = h.ctl
		}
		openers[gc.Name] = b
		sc.gates = append(sc.gates, h)
		gateBehaviors = append(gateBehaviors, b)
		jointBehaviors = append(jointBehaviors, sampledJoint(gc.Name, sim, rec))
	}

	for _, tc := range cfg.Triggers {
		def, err := tc.Def()
		if err != nil {
			return nil, fmt.Errorf("trigger %q: %w", tc.Name, err)
		}
		var target gate.Opener
		if tc.Gate != "" {
			o, ok := openers[tc.Gate]
			if !ok {
				return nil, fmt.Errorf("trigger %q: unknown gate %q", tc.Name, tc.Gate)
			}
			target = o
		}
		z, err := trigger.NewZone(def, target)
		if err != nil {
			return nil, err
		}
		if err := sc.zones.Add(z); err != nil {
			return nil, err
		}
	}

	body := trigger.Body{ID: playerID, Tag: cfg.Player.Tag}
	if body.Tag == "" {
		body.Tag = trigger.DefaultPlayerTag
	}
	sc.player = scene.NewScript(body, config.Points(cfg.Player.Path), cfg.Player.Speed, sc.zones)
	if err := sc.mgr.Register("player", sc.player); err != nil {
		return nil, err
	}

	for i, b := range gateBehaviors {
		if err := sc.mgr.Register("gate/"+cfg.Gates[i].Name, b); err != nil {
			return nil, err
		}
	}
	for i, b := range jointBehaviors {
		if err := sc.mgr.Register("joint/"+cfg.Gates[i].Name, b); err != nil {
			return nil, err
		}
	}

	for _, wc := range cfg.Walkers {
		wcfg := wc.Walker()
		start := model.Vec3{}
		if len(wcfg.Waypoints) > 0 {
			start = wcfg.Waypoints[0]
		}
		agent := walker.NewLinearAgent(start, wc.Speed, wc.StoppingDistance)
		w := walker.New(wc.Name, agent, newLogAnimator(wc.Name), wcfg, wc.Yaw)
		sc.walkers = append(sc.walkers, w)

		if err := sc.mgr.Register("agent/"+wc.Name, agent); err != nil {
			return nil, err
		}
		if err := sc.mgr.Register("walker/"+wc.Name, w); err != nil {
			return nil, err
		}
	}

	catalog, err := dialogue.NewCatalog(cfg.Locale)
	if err != nil {
		return nil, err
	}
	for _, dc := range cfg.Dialogue {
		q := dialogue.New(dc.Name, logVoice{npc: dc.Name}, newLogAnimator(dc.Name), dc.Sequencer(),
			dialogue.WithSubtitles(logSubtitles{}, catalog))
		sc.dialogues = append(sc.dialogues, q)
		if err := sc.mgr.Register("dialogue/"+dc.Name, q); err != nil {
			return nil, err
		}
	}

	if cfg.PickupAt > 0 {
		pickup := scene.After(cfg.PickupAt, func() {
			for _, q := range sc.dialogues {
				q.OnExternalEvent()
			}
		})
		if err := sc.mgr.Register("event/pickup", pickup); err != nil {
			return nil, err
		}
	}

	return sc, nil
}

// sampledJoint advances the hinge simulation and records its trace.
func sampledJoint(name string, sim *joint.Sim, rec *journal.Recorder) scene.Behavior {
	var now time.Duration
	return scene.BehaviorFunc(func(dt time.Duration) {
		now += dt
		sim.Advance(dt)
		rec.Sample(name, now, sim.TargetAngle(), sim.Angle())
	})
}
