package testutil

import (
	"sync"

	"github.com/udisondev/gatekeep/internal/joint"
)

// MockActuator: in-memory joint.Actuator, записывает каждое изменение.
// Не интегрирует физику: Angle меняется только через SetAngle.
type MockActuator struct {
	angle     float64
	target    float64
	spring    joint.SpringParams
	motor     joint.MotorParams
	useSpring bool
	useMotor  bool

	// Targets records every SetTargetAngle value in order.
	Targets []float64
	// MotorToggles records every SetMotorEnabled value in order.
	MotorToggles []bool
}

var _ joint.Actuator = (*MockActuator)(nil)

// NewMockActuator creates an actuator resting at angle with the spring
// target at the same angle.
func NewMockActuator(angle float64) *MockActuator {
	return &MockActuator{angle: angle, target: angle}
}

// SetAngle overrides the simulated angle.
func (m *MockActuator) SetAngle(angle float64) { m.angle = angle }

func (m *MockActuator) Angle() float64       { return m.angle }
func (m *MockActuator) TargetAngle() float64 { return m.target }

func (m *MockActuator) SetTargetAngle(deg float64) {
	m.target = deg
	m.Targets = append(m.Targets, deg)
}

func (m *MockActuator) Spring() joint.SpringParams     { return m.spring }
func (m *MockActuator) SetSpring(p joint.SpringParams) { m.spring = p }
func (m *MockActuator) Motor() joint.MotorParams       { return m.motor }
func (m *MockActuator) SetMotor(p joint.MotorParams)   { m.motor = p }
func (m *MockActuator) SpringEnabled() bool            { return m.useSpring }
func (m *MockActuator) SetSpringEnabled(enabled bool)  { m.useSpring = enabled }
func (m *MockActuator) MotorEnabled() bool             { return m.useMotor }

func (m *MockActuator) SetMotorEnabled(enabled bool) {
	m.useMotor = enabled
	m.MotorToggles = append(m.MotorToggles, enabled)
}

// ResetLog clears recorded targets and toggles.
func (m *MockActuator) ResetLog() {
	m.Targets = nil
	m.MotorToggles = nil
}

// MockAnimator records animator parameter writes.
type MockAnimator struct {
	mu       sync.Mutex
	Floats   map[string]float64
	Triggers []string
}

// NewMockAnimator creates an empty animator.
func NewMockAnimator() *MockAnimator {
	return &MockAnimator{Floats: make(map[string]float64)}
}

func (a *MockAnimator) SetFloat(name string, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Floats[name] = value
}

func (a *MockAnimator) SetTrigger(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Triggers = append(a.Triggers, name)
}

// MockVoice records audio playback calls.
type MockVoice struct {
	Stops  int
	Played []string
}

func (v *MockVoice) Stop()                   { v.Stops++ }
func (v *MockVoice) PlayOneShot(clip string) { v.Played = append(v.Played, clip) }
