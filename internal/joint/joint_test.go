package joint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeltaAngle(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"zero", 0, 0, 0},
		{"forward", 0, 90, 90},
		{"backward", 100, 0, -100},
		{"wrap forward", 170, -170, 20},
		{"wrap backward", -170, 170, -20},
		{"half turn", 0, 180, 180},
		{"minus half turn", 180, 0, 180},
		{"multiple turns", 0, 725, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DeltaAngle(tt.from, tt.to), 1e-9)
		})
	}
}

func TestLimits_Clamp(t *testing.T) {
	l := Limits{Min: -10, Max: 110}
	assert.Equal(t, -10.0, l.Clamp(-50))
	assert.Equal(t, 110.0, l.Clamp(200))
	assert.Equal(t, 42.0, l.Clamp(42))
}

func TestSim_SpringConvergesToTarget(t *testing.T) {
	s := NewSim(0, Limits{Min: 0, Max: 120}, 1)
	s.SetSpringEnabled(true)
	s.SetSpring(SpringParams{Stiffness: 90, Damping: 50})
	s.SetTargetAngle(100)

	for range 1000 {
		s.Advance(10 * time.Millisecond)
	}

	assert.InDelta(t, 100, s.Angle(), 0.5)
}

func TestSim_MotorBoundedByForce(t *testing.T) {
	s := NewSim(50, Limits{Min: 0, Max: 120}, 1)
	s.SetMotorEnabled(true)
	s.SetMotor(MotorParams{TargetVelocity: -280, Force: 1200})

	s.Advance(10 * time.Millisecond)

	// Force 1200 over 10ms can add at most 12 deg/s.
	assert.InDelta(t, -12, s.Velocity(), 1e-9)
}

func TestSim_StopsAtLimits(t *testing.T) {
	s := NewSim(5, Limits{Min: 0, Max: 120}, 1)
	s.SetMotorEnabled(true)
	s.SetMotor(MotorParams{TargetVelocity: -1000, Force: 1e6})

	for range 10 {
		s.Advance(10 * time.Millisecond)
	}

	assert.Equal(t, 0.0, s.Angle())
	assert.Equal(t, 0.0, s.Velocity())
}

func TestSim_ZeroStepIsNoop(t *testing.T) {
	s := NewSim(30, Limits{Min: 0, Max: 120}, 1)
	s.SetMotorEnabled(true)
	s.SetMotor(MotorParams{TargetVelocity: 100, Force: 100})

	s.Advance(0)

	assert.Equal(t, 30.0, s.Angle())
}
