// Package trigger implements scene trigger volumes that open and close gates
// when a tagged body enters or leaves them.
package trigger

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/udisondev/gatekeep/internal/gate"
	"github.com/udisondev/gatekeep/internal/model"
)

// Shape names a zone footprint on the XZ plane.
type Shape string

const (
	ShapeCuboid   Shape = "Cuboid"
	ShapeCylinder Shape = "Cylinder"
	ShapeNPoly    Shape = "NPoly"
)

// Mode decides what a zone does to its gate.
type Mode int32

const (
	// ModeOpen opens the gate on enter
	ModeOpen Mode = iota
	// ModeClose closes the gate on enter
	ModeClose
	// ModePass opens on enter and closes on exit
	ModePass
)

// String returns human-readable mode name
func (m Mode) String() string {
	switch m {
	case ModeOpen:
		return "OPEN"
	case ModeClose:
		return "CLOSE"
	case ModePass:
		return "PASS"
	default:
		return "UNKNOWN"
	}
}

// ParseMode parses "open", "close" or "pass".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "open", "OPEN":
		return ModeOpen, nil
	case "close", "CLOSE":
		return ModeClose, nil
	case "pass", "PASS":
		return ModePass, nil
	default:
		return 0, fmt.Errorf("unknown trigger mode %q", s)
	}
}

// DefaultPlayerTag is the tag zones react to when none is configured.
const DefaultPlayerTag = "Player"

// ErrNoNodes is returned for a zone definition without footprint nodes.
var ErrNoNodes = errors.New("zone has no nodes")

// Def describes a zone volume.
type Def struct {
	Name      string
	Mode      Mode
	Shape     Shape
	MinY      float64
	MaxY      float64
	Nodes     [][2]float64 // (x, z) pairs; the Cylinder center is Nodes[0]
	Radius    float64      // Cylinder only
	PlayerTag string
}

// Body is anything that can enter a zone. The collider, its attached
// rigidbody and the hierarchy root may each carry a tag.
type Body struct {
	ID           uint32
	Tag          string
	RigidbodyTag string
	RootTag      string
	Position     model.Vec3
}

// IsTagged reports whether the collider, rigidbody or root carries tag.
func (b Body) IsTagged(tag string) bool {
	return b.Tag == tag || (b.RigidbodyTag != "" && b.RigidbodyTag == tag) || (b.RootTag != "" && b.RootTag == tag)
}

// Zone is a trigger volume bound to one gate.
type Zone struct {
	name      string
	mode      Mode
	shape     Shape
	minY      float64
	maxY      float64
	nodesX    []float64
	nodesZ    []float64
	radius    float64
	playerTag string

	target gate.Opener

	// Bodies currently inside, by ID.
	occupants mapset.Set[uint32]
}

// NewZone builds a zone from its definition. A nil target is allowed: the
// zone still tracks occupants but fires nothing.
func NewZone(def Def, target gate.Opener) (*Zone, error) {
	if len(def.Nodes) == 0 {
		return nil, fmt.Errorf("zone %q: %w", def.Name, ErrNoNodes)
	}
	shape := def.Shape
	if shape == "" {
		shape = ShapeNPoly
	}
	if shape == ShapeCylinder && def.Radius <= 0 {
		return nil, fmt.Errorf("zone %q: cylinder radius must be positive, got %v", def.Name, def.Radius)
	}
	tag := def.PlayerTag
	if tag == "" {
		tag = DefaultPlayerTag
	}
	if target == nil {
		slog.Warn("trigger zone has no gate", "zone", def.Name)
	}

	z := &Zone{
		name:      def.Name,
		mode:      def.Mode,
		shape:     shape,
		minY:      def.MinY,
		maxY:      def.MaxY,
		radius:    def.Radius,
		playerTag: tag,
		target:    target,
		occupants: mapset.New[uint32](),
	}
	for _, n := range def.Nodes {
		z.nodesX = append(z.nodesX, n[0])
		z.nodesZ = append(z.nodesZ, n[1])
	}
	return z, nil
}

// Name returns the zone name.
func (z *Zone) Name() string { return z.name }

// Mode returns the zone mode.
func (z *Zone) Mode() Mode { return z.mode }

// Contains checks if point p is inside the zone volume.
// For "NPoly" shape: uses ray casting (point-in-polygon) algorithm.
// For "Cuboid" shape: uses axis-aligned bounding box check.
// For "Cylinder" shape: uses center + radius circle check.
func (z *Zone) Contains(p model.Vec3) bool {
	if p.Y < z.minY || p.Y > z.maxY {
		return false
	}

	switch z.shape {
	case ShapeCuboid:
		return z.containsCuboid(p.X, p.Z)
	case ShapeCylinder:
		return z.containsCylinder(p.X, p.Z)
	default:
		return z.containsNPoly(p.X, p.Z)
	}
}

func (z *Zone) containsCuboid(x, y float64) bool {
	minX, maxX, minZ, maxZ := z.bounds()
	return x >= minX && x <= maxX && y >= minZ && y <= maxZ
}

func (z *Zone) containsCylinder(x, y float64) bool {
	dx := x - z.nodesX[0]
	dy := y - z.nodesZ[0]
	return dx*dx+dy*dy <= z.radius*z.radius
}

// containsNPoly проверяет попадание точки в полигон алгоритмом ray casting.
func (z *Zone) containsNPoly(x, y float64) bool {
	n := len(z.nodesX)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1

	for i := range n {
		xi, yi := z.nodesX[i], z.nodesZ[i]
		xj, yj := z.nodesX[j], z.nodesZ[j]

		if (yi > y) != (yj > y) {
			cross := (x-xi)*(yj-yi) - (xj-xi)*(y-yi)
			if cross == 0 {
				// Точка лежит на границе полигона.
				return true
			}
			if (cross < 0) != (yj-yi < 0) {
				inside = !inside
			}
		}
		j = i
	}

	return inside
}

// bounds returns the XZ bounding box of the footprint.
func (z *Zone) bounds() (minX, maxX, minZ, maxZ float64) {
	if z.shape == ShapeCylinder {
		cx, cz := z.nodesX[0], z.nodesZ[0]
		return cx - z.radius, cx + z.radius, cz - z.radius, cz + z.radius
	}
	minX, maxX = z.nodesX[0], z.nodesX[0]
	minZ, maxZ = z.nodesZ[0], z.nodesZ[0]
	for i := 1; i < len(z.nodesX); i++ {
		minX = min(minX, z.nodesX[i])
		maxX = max(maxX, z.nodesX[i])
		minZ = min(minZ, z.nodesZ[i])
		maxZ = max(maxZ, z.nodesZ[i])
	}
	return minX, maxX, minZ, maxZ
}

// --- Body tracking ---

// Revalidate checks if a tagged body is inside or outside the zone.
// If inside and not yet tracked: adds it and fires the enter action.
// If outside and currently tracked: removes it and fires the exit action.
// Bodies without the player tag are ignored.
func (z *Zone) Revalidate(b Body) {
	if !b.IsTagged(z.playerTag) {
		return
	}
	if z.Contains(b.Position) {
		if z.occupants.Has(b.ID) {
			return
		}
		z.occupants.Put(b.ID)
		z.onEnter(b)
		return
	}
	z.Remove(b)
}

// Remove stops tracking a body and fires the exit action if it was inside.
func (z *Zone) Remove(b Body) {
	if !z.occupants.Has(b.ID) {
		return
	}
	z.occupants.Remove(b.ID)
	z.onExit(b)
}

// Occupants returns how many tracked bodies are inside.
func (z *Zone) Occupants() int { return z.occupants.Size() }

func (z *Zone) onEnter(b Body) {
	slog.Debug("trigger entered", "zone", z.name, "body", b.ID, "mode", z.mode)
	if z.target == nil {
		return
	}
	switch z.mode {
	case ModeOpen, ModePass:
		z.target.Open()
	case ModeClose:
		z.target.Close()
	}
}

func (z *Zone) onExit(b Body) {
	slog.Debug("trigger exited", "zone", z.name, "body", b.ID, "mode", z.mode)
	if z.target == nil || z.mode != ModePass {
		return
	}
	z.target.Close()
}
