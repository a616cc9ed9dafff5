package config

import (
	"fmt"
	"time"

	"github.com/udisondev/gatekeep/internal/dialogue"
	"github.com/udisondev/gatekeep/internal/gate"
	"github.com/udisondev/gatekeep/internal/joint"
	"github.com/udisondev/gatekeep/internal/model"
	"github.com/udisondev/gatekeep/internal/trigger"
	"github.com/udisondev/gatekeep/internal/walker"
)

// Gate kinds.
const (
	GateController = "controller" // smooth/stutter/slam motion controller
	GateSpring     = "spring"     // retuned spring with slam on close
	GateMotor      = "motor"      // plain motor drive
)

// GateConfig describes one hinged gate. Nil fields keep gate.DefaultConfig().
type GateConfig struct {
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"`
	Inertia float64 `yaml:"inertia"` // simulated hinge inertia, default 1
	// Limits are the hinge limits; defaults to the closed/open span.
	Limits *[2]float64 `yaml:"limits"`

	ClosedAngle            *float64       `yaml:"closed_angle"`
	OpenAngle              *float64       `yaml:"open_angle"`
	Spring                 *float64       `yaml:"spring"`
	Damper                 *float64       `yaml:"damper"`
	MovingDamperMultiplier *float64       `yaml:"moving_damper_multiplier"`
	CloseSpeed             *float64       `yaml:"close_speed"`
	StutterOnOpen          *bool          `yaml:"stutter_on_open"`
	StepDegrees            *gate.Range    `yaml:"step_degrees"`
	Pause                  *gate.Range    `yaml:"pause"`
	BackslipDegrees        *float64       `yaml:"backslip_degrees"`
	BackslipChance         *float64       `yaml:"backslip_chance"`
	SlamVelocity           *float64       `yaml:"slam_velocity"`
	SlamForce              *float64       `yaml:"slam_force"`
	SlamDuration           *time.Duration `yaml:"slam_duration"`

	// spring kind
	OpenSpring  *float64 `yaml:"open_spring"`
	OpenDamper  *float64 `yaml:"open_damper"`
	CloseSpring *float64 `yaml:"close_spring"`
	CloseDamper *float64 `yaml:"close_damper"`
	SlamOnClose *bool    `yaml:"slam_on_close"`

	// motor kind
	MotorOpenSpeed  float64 `yaml:"motor_open_speed"`
	MotorCloseSpeed float64 `yaml:"motor_close_speed"`
	MotorForce      float64 `yaml:"motor_force"`
}

func (g GateConfig) validate() error {
	switch g.Kind {
	case "", GateController, GateSpring, GateMotor:
	default:
		return fmt.Errorf("unknown kind %q", g.Kind)
	}
	if g.Inertia < 0 {
		return fmt.Errorf("inertia must not be negative, got %v", g.Inertia)
	}
	if g.Kind == GateMotor {
		if g.MotorOpenSpeed < 0 || g.MotorCloseSpeed < 0 || g.MotorForce < 0 {
			return fmt.Errorf("motor speeds and force must not be negative")
		}
		return nil
	}
	return g.Motion().Validate()
}

// KindOrDefault returns Kind, or GateController when empty.
func (g GateConfig) KindOrDefault() string {
	if g.Kind == "" {
		return GateController
	}
	return g.Kind
}

// Motion returns gate.DefaultConfig() with the configured overrides.
func (g GateConfig) Motion() gate.Config {
	c := gate.DefaultConfig()
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&c.ClosedAngle, g.ClosedAngle)
	setF(&c.OpenAngle, g.OpenAngle)
	setF(&c.Spring, g.Spring)
	setF(&c.Damper, g.Damper)
	setF(&c.MovingDamperMultiplier, g.MovingDamperMultiplier)
	setF(&c.CloseSpeed, g.CloseSpeed)
	setF(&c.BackslipDegrees, g.BackslipDegrees)
	setF(&c.BackslipChance, g.BackslipChance)
	setF(&c.Slam.Velocity, g.SlamVelocity)
	setF(&c.Slam.Force, g.SlamForce)
	if g.StutterOnOpen != nil {
		c.StutterOnOpen = *g.StutterOnOpen
	}
	if g.StepDegrees != nil {
		c.StepDegrees = *g.StepDegrees
	}
	if g.Pause != nil {
		c.Pause = *g.Pause
	}
	if g.SlamDuration != nil {
		c.Slam.Duration = *g.SlamDuration
	}
	return c
}

// Tuning returns gate.DefaultSpringTuning() with the configured overrides.
func (g GateConfig) Tuning() gate.SpringTuning {
	t := gate.DefaultSpringTuning()
	if g.OpenSpring != nil {
		t.OpenSpring = *g.OpenSpring
	}
	if g.OpenDamper != nil {
		t.OpenDamper = *g.OpenDamper
	}
	if g.CloseSpring != nil {
		t.CloseSpring = *g.CloseSpring
	}
	if g.CloseDamper != nil {
		t.CloseDamper = *g.CloseDamper
	}
	if g.SlamOnClose != nil {
		t.SlamOnClose = *g.SlamOnClose
	}
	return t
}

// HingeLimits returns the configured limits or the closed/open span.
func (g GateConfig) HingeLimits() joint.Limits {
	if g.Limits != nil {
		return joint.Limits{Min: g.Limits[0], Max: g.Limits[1]}
	}
	m := g.Motion()
	return joint.Limits{Min: min(m.ClosedAngle, m.OpenAngle), Max: max(m.ClosedAngle, m.OpenAngle)}
}

// InertiaOrDefault returns Inertia, or 1 when unset.
func (g GateConfig) InertiaOrDefault() float64 {
	if g.Inertia <= 0 {
		return 1
	}
	return g.Inertia
}

// TriggerConfig describes a zone bound to a gate by name.
type TriggerConfig struct {
	Name      string       `yaml:"name"`
	Gate      string       `yaml:"gate"`
	Mode      string       `yaml:"mode"` // open, close, pass
	Shape     string       `yaml:"shape"`
	MinY      float64      `yaml:"min_y"`
	MaxY      float64      `yaml:"max_y"`
	Nodes     [][2]float64 `yaml:"nodes"`
	Radius    float64      `yaml:"radius"`
	PlayerTag string       `yaml:"player_tag"`
}

// Def converts the config into a zone definition.
func (t TriggerConfig) Def() (trigger.Def, error) {
	mode, err := trigger.ParseMode(t.Mode)
	if err != nil {
		return trigger.Def{}, err
	}
	if len(t.Nodes) == 0 {
		return trigger.Def{}, trigger.ErrNoNodes
	}
	return trigger.Def{
		Name:      t.Name,
		Mode:      mode,
		Shape:     trigger.Shape(t.Shape),
		MinY:      t.MinY,
		MaxY:      t.MaxY,
		Nodes:     t.Nodes,
		Radius:    t.Radius,
		PlayerTag: t.PlayerTag,
	}, nil
}

// WalkerConfig describes a patrolling NPC.
type WalkerConfig struct {
	Name             string        `yaml:"name"`
	Waypoints        [][3]float64  `yaml:"waypoints"`
	Speed            float64       `yaml:"speed"`
	StoppingDistance float64       `yaml:"stopping_distance"`
	TurnSpeed        float64       `yaml:"turn_speed"`
	LoopPause        time.Duration `yaml:"loop_pause"`
	Yaw              float64       `yaml:"yaw"`
}

// Walker converts the config into walker tuning.
func (w WalkerConfig) Walker() walker.Config {
	c := walker.DefaultConfig()
	c.Waypoints = Points(w.Waypoints)
	if w.TurnSpeed > 0 {
		c.TurnSpeed = w.TurnSpeed
	}
	if w.LoopPause > 0 {
		c.LoopPause = w.LoopPause
	}
	return c
}

// DialogueConfig describes an NPC line sequencer. Empty clips keep defaults.
type DialogueConfig struct {
	Name          string        `yaml:"name"`
	GreetingDelay time.Duration `yaml:"greeting_delay"`
	ProdDelay     time.Duration `yaml:"prod_delay"`
	GreetingClip  string        `yaml:"greeting_clip"`
	PickupClip    string        `yaml:"pickup_clip"`
	ProdClip      string        `yaml:"prod_clip"`
}

// Sequencer converts the config into sequencer tuning.
func (d DialogueConfig) Sequencer() dialogue.Config {
	c := dialogue.DefaultConfig()
	if d.GreetingDelay > 0 {
		c.GreetingDelay = d.GreetingDelay
	}
	if d.ProdDelay > 0 {
		c.ProdDelay = d.ProdDelay
	}
	if d.GreetingClip != "" {
		c.Greeting.Clip = d.GreetingClip
	}
	if d.PickupClip != "" {
		c.Pickup.Clip = d.PickupClip
	}
	if d.ProdClip != "" {
		c.Prod.Clip = d.ProdClip
	}
	return c
}

// PlayerConfig describes the scripted player walk.
type PlayerConfig struct {
	Tag   string       `yaml:"tag"`
	Speed float64      `yaml:"speed"`
	Path  [][3]float64 `yaml:"path"`
}

// Points converts (x, y, z) triples to vectors.
func Points(raw [][3]float64) []model.Vec3 {
	out := make([]model.Vec3, len(raw))
	for i, p := range raw {
		out[i] = model.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}
