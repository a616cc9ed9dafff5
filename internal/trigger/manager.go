package trigger

import (
	"fmt"
	"log/slog"
	"math"
)

// cellSize is the spatial grid cell edge in scene units.
const cellSize = 16.0

type cellKey struct {
	cx, cz int64
}

// Manager owns all trigger zones with a spatial grid for fast lookups.
type Manager struct {
	zones  []*Zone
	byName map[string]*Zone
	grid   map[cellKey][]*Zone
}

// NewManager creates an empty trigger manager.
func NewManager() *Manager {
	return &Manager{
		byName: make(map[string]*Zone),
		grid:   make(map[cellKey][]*Zone),
	}
}

// Add registers a zone and indexes it in every grid cell its footprint
// bounding box touches.
func (m *Manager) Add(z *Zone) error {
	if _, ok := m.byName[z.name]; ok {
		return fmt.Errorf("add trigger zone: duplicate name %q", z.name)
	}
	m.zones = append(m.zones, z)
	m.byName[z.name] = z

	minX, maxX, minZ, maxZ := z.bounds()
	for cx := cellOf(minX); cx <= cellOf(maxX); cx++ {
		for cz := cellOf(minZ); cz <= cellOf(maxZ); cz++ {
			key := cellKey{cx: cx, cz: cz}
			m.grid[key] = append(m.grid[key], z)
		}
	}

	slog.Debug("trigger zone added", "zone", z.name, "mode", z.mode, "shape", z.shape)
	return nil
}

// ByName returns a zone by name, or nil if not found.
func (m *Manager) ByName(name string) *Zone { return m.byName[name] }

// Len returns the number of zones.
func (m *Manager) Len() int { return len(m.zones) }

// ZonesAt returns all zones containing the body position.
func (m *Manager) ZonesAt(b Body) []*Zone {
	var result []*Zone
	for _, z := range m.grid[cellAt(b)] {
		if z.Contains(b.Position) {
			result = append(result, z)
		}
	}
	return result
}

// Revalidate fires enter/exit actions for a body that moved. Candidate zones
// come from the body's grid cell; zones still tracking the body are checked
// too so leaving a cell is seen as an exit.
func (m *Manager) Revalidate(b Body) {
	cell := m.grid[cellAt(b)]
	for _, z := range cell {
		z.Revalidate(b)
	}
	for _, z := range m.zones {
		if z.occupants.Has(b.ID) && !containsZone(cell, z) {
			z.Revalidate(b)
		}
	}
}

// RemoveFromAll removes a body from every zone, firing exit actions.
func (m *Manager) RemoveFromAll(b Body) {
	for _, z := range m.zones {
		z.Remove(b)
	}
}

func cellAt(b Body) cellKey {
	return cellKey{cx: cellOf(b.Position.X), cz: cellOf(b.Position.Z)}
}

func cellOf(v float64) int64 {
	return int64(math.Floor(v / cellSize))
}

func containsZone(zs []*Zone, z *Zone) bool {
	for _, c := range zs {
		if c == z {
			return true
		}
	}
	return false
}
