package scene

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the scene tick used when none is configured (50 Hz).
const DefaultInterval = 20 * time.Millisecond

type entry struct {
	name     string
	behavior Behavior
}

// TickManager ticks all registered behaviors with a fixed scene step.
// Behaviors are advanced in registration order, so a run is reproducible:
// scripted actors registered before triggers' targets observe the same frame.
type TickManager struct {
	mu       sync.Mutex
	entries  []entry
	index    map[string]int
	interval time.Duration
	elapsed  time.Duration
	ticks    uint64

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTickManager creates a tick manager stepping by interval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &TickManager{
		index:    make(map[string]int),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Register adds a behavior under a unique name.
func (m *TickManager) Register(name string, b Behavior) error {
	m.mu.Lock()
	if _, ok := m.index[name]; ok {
		m.mu.Unlock()
		return fmt.Errorf("behavior %q already registered", name)
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, entry{name: name, behavior: b})
	m.mu.Unlock()

	if s, ok := b.(starter); ok {
		s.Start()
	}

	slog.Debug("behavior registered", "name", name, "type", fmt.Sprintf("%T", b))
	return nil
}

// Unregister removes a behavior. Unknown names are ignored.
func (m *TickManager) Unregister(name string) {
	m.mu.Lock()
	i, ok := m.index[name]
	if !ok {
		m.mu.Unlock()
		return
	}
	b := m.entries[i].behavior
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, name)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].name] = j
	}
	m.mu.Unlock()

	if s, ok := b.(stopper); ok {
		s.Stop()
	}

	slog.Debug("behavior unregistered", "name", name)
}

// Count returns number of registered behaviors.
func (m *TickManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Get returns behavior by name.
func (m *TickManager) Get(name string) (Behavior, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[name]
	if !ok {
		return nil, fmt.Errorf("behavior not found: %q", name)
	}
	return m.entries[i].behavior, nil
}

// Interval returns the scene step.
func (m *TickManager) Interval() time.Duration { return m.interval }

// Elapsed returns total scene time advanced so far.
func (m *TickManager) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Ticks returns number of completed ticks.
func (m *TickManager) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

// Step advances every behavior by dt.
func (m *TickManager) Step(dt time.Duration) {
	m.mu.Lock()
	snapshot := make([]entry, len(m.entries))
	copy(snapshot, m.entries)
	m.elapsed += dt
	m.ticks++
	m.mu.Unlock()

	for _, e := range snapshot {
		e.behavior.Advance(dt)
	}

	if IsDebugEnabled() {
		slog.Debug("scene tick completed", "behaviors", len(snapshot), "elapsed", m.Elapsed())
	}
}

// RunFor steps the scene headless (no wall clock) until total scene time
// has elapsed or ctx is canceled.
func (m *TickManager) RunFor(ctx context.Context, total time.Duration) error {
	for m.Elapsed() < total {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.Step(m.interval)
	}
	return nil
}

// Start runs the tick loop on the wall clock (blocks until ctx is canceled
// or Stop is called).
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("scene tick manager started", "interval", m.interval, "behaviors", m.Count())

	for {
		select {
		case <-ctx.Done():
			slog.Info("scene tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("scene tick manager stopped")
			return nil

		case <-ticker.C:
			m.Step(m.interval)
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}
