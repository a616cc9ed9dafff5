package gate

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid gate config")

// DefaultEpsilon is the convergence tolerance in degrees.
const DefaultEpsilon = 0.25

// SlamConfig tunes the brief motor burst toward the closed angle.
type SlamConfig struct {
	Velocity float64       // deg/s
	Force    float64       // max motor force
	Duration time.Duration // burst length
}

// Config holds per-gate tunables.
type Config struct {
	ClosedAngle float64
	OpenAngle   float64

	// Steady-state spring/damper.
	Spring float64
	Damper float64

	// Damper multiplier applied only while a routine drives the joint.
	MovingDamperMultiplier float64

	// Smooth close speed, deg/s. Smooth opening runs at 0.6 of it.
	CloseSpeed float64

	StutterOnOpen   bool
	StepDegrees     Range // degrees advanced per stutter step
	Pause           Range // seconds between steps
	BackslipDegrees float64
	BackslipChance  float64 // [0..1]
	BackslipHold    Range   // seconds the slip is held

	Slam SlamConfig

	Epsilon float64
}

// DefaultConfig returns the stock gate tuning.
func DefaultConfig() Config {
	return Config{
		ClosedAngle:            0,
		OpenAngle:              100,
		Spring:                 90,
		Damper:                 50,
		MovingDamperMultiplier: 1.25,
		CloseSpeed:             60,
		StutterOnOpen:          true,
		StepDegrees:            Range{Min: 6, Max: 14},
		Pause:                  Range{Min: 0.06, Max: 0.16},
		BackslipDegrees:        0.5,
		BackslipChance:         0.45,
		BackslipHold:           Range{Min: 0.02, Max: 0.05},
		Slam: SlamConfig{
			Velocity: 280,
			Force:    1200,
			Duration: 200 * time.Millisecond,
		},
		Epsilon: DefaultEpsilon,
	}
}

// Validate reports the first configuration problem found.
// Degenerate ranges (Min == Max) are valid and yield a fixed value.
func (c Config) Validate() error {
	switch {
	case !(c.Spring >= 0):
		return fmt.Errorf("%w: spring must be non-negative, got %v", ErrInvalidConfig, c.Spring)
	case !(c.Damper >= 0):
		return fmt.Errorf("%w: damper must be non-negative, got %v", ErrInvalidConfig, c.Damper)
	case !(c.MovingDamperMultiplier > 0):
		return fmt.Errorf("%w: moving damper multiplier must be positive, got %v", ErrInvalidConfig, c.MovingDamperMultiplier)
	case !(c.CloseSpeed > 0):
		return fmt.Errorf("%w: close speed must be positive, got %v", ErrInvalidConfig, c.CloseSpeed)
	case !(c.StepDegrees.low() >= 0) || !(c.StepDegrees.high() > 0):
		return fmt.Errorf("%w: step degrees %v must be positive", ErrInvalidConfig, c.StepDegrees)
	case !(c.Pause.low() >= 0):
		return fmt.Errorf("%w: pause range %v must be non-negative", ErrInvalidConfig, c.Pause)
	case !(c.BackslipHold.low() >= 0):
		return fmt.Errorf("%w: backslip hold range %v must be non-negative", ErrInvalidConfig, c.BackslipHold)
	case !(c.BackslipDegrees >= 0):
		return fmt.Errorf("%w: backslip degrees must be non-negative, got %v", ErrInvalidConfig, c.BackslipDegrees)
	case !(c.BackslipChance >= 0 && c.BackslipChance <= 1):
		return fmt.Errorf("%w: backslip chance must be in [0,1], got %v", ErrInvalidConfig, c.BackslipChance)
	case c.Slam.Duration < 0:
		return fmt.Errorf("%w: slam duration must be non-negative, got %v", ErrInvalidConfig, c.Slam.Duration)
	case !(c.Epsilon > 0):
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfig, c.Epsilon)
	}
	return nil
}
