package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gatekeep/internal/model"
)

type mockOpener struct {
	calls []string
}

func (o *mockOpener) Open()  { o.calls = append(o.calls, "open") }
func (o *mockOpener) Close() { o.calls = append(o.calls, "close") }

func player(x, z float64) Body {
	return Body{ID: 1, Tag: "Player", Position: model.Vec3{X: x, Z: z}}
}

func TestNPolyContains(t *testing.T) {
	// Треугольник: (0,0), (100,0), (50,100), Y от -10 до 10.
	z, err := NewZone(Def{
		Name:  "triangle",
		Shape: ShapeNPoly,
		MinY:  -10,
		MaxY:  10,
		Nodes: [][2]float64{{0, 0}, {100, 0}, {50, 100}},
	}, nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		x, y, z float64
		want    bool
	}{
		{"center inside", 50, 0, 30, true},
		{"near apex inside", 50, 0, 90, true},
		{"outside left", -10, 0, 50, false},
		{"outside right", 110, 0, 50, false},
		{"outside above", 50, 0, 110, false},
		{"outside below", 50, 0, -10, false},
		{"on bottom edge", 50, 0, 0, true},
		{"below Y range", 50, -15, 30, false},
		{"above Y range", 50, 15, 30, false},
		{"at maxY boundary", 50, 10, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := z.Contains(model.Vec3{X: tt.x, Y: tt.y, Z: tt.z})
			assert.Equal(t, tt.want, got, "Contains(%v, %v, %v)", tt.x, tt.y, tt.z)
		})
	}
}

func TestCuboidAndCylinderContains(t *testing.T) {
	box, err := NewZone(Def{Name: "box", Shape: ShapeCuboid, MinY: -1, MaxY: 3,
		Nodes: [][2]float64{{0, 0}, {4, 0}, {4, 2}, {0, 2}}}, nil)
	require.NoError(t, err)
	cyl, err := NewZone(Def{Name: "cyl", Shape: ShapeCylinder, MinY: -1, MaxY: 3,
		Nodes: [][2]float64{{10, 10}}, Radius: 2}, nil)
	require.NoError(t, err)

	assert.True(t, box.Contains(model.Vec3{X: 2, Z: 1}))
	assert.True(t, box.Contains(model.Vec3{X: 4, Z: 2}))
	assert.False(t, box.Contains(model.Vec3{X: 5, Z: 1}))

	assert.True(t, cyl.Contains(model.Vec3{X: 11, Z: 11}))
	assert.True(t, cyl.Contains(model.Vec3{X: 12, Z: 10}))
	assert.False(t, cyl.Contains(model.Vec3{X: 12, Z: 12}))
}

func TestNewZone_Errors(t *testing.T) {
	_, err := NewZone(Def{Name: "empty"}, nil)
	assert.ErrorIs(t, err, ErrNoNodes)

	_, err = NewZone(Def{Name: "flat", Shape: ShapeCylinder, Nodes: [][2]float64{{0, 0}}}, nil)
	assert.Error(t, err)
}

func TestBody_IsTagged(t *testing.T) {
	assert.True(t, Body{Tag: "Player"}.IsTagged("Player"))
	assert.True(t, Body{Tag: "Untagged", RigidbodyTag: "Player"}.IsTagged("Player"))
	assert.True(t, Body{Tag: "Untagged", RootTag: "Player"}.IsTagged("Player"))
	assert.False(t, Body{Tag: "Villager"}.IsTagged("Player"))
}

func TestZone_OpenFiresOncePerEntry(t *testing.T) {
	g := &mockOpener{}
	z, err := NewZone(Def{Name: "approach", Mode: ModeOpen, Shape: ShapeCuboid, MinY: -1, MaxY: 3,
		Nodes: [][2]float64{{0, 0}, {4, 4}}}, g)
	require.NoError(t, err)

	z.Revalidate(player(1, 1))
	z.Revalidate(player(2, 2))
	assert.Equal(t, []string{"open"}, g.calls)
	assert.Equal(t, 1, z.Occupants())

	z.Revalidate(player(10, 10))
	assert.Equal(t, []string{"open"}, g.calls, "open zone does nothing on exit")
	assert.Zero(t, z.Occupants())

	z.Revalidate(player(1, 1))
	assert.Equal(t, []string{"open", "open"}, g.calls)
}

func TestZone_IgnoresUntaggedBodies(t *testing.T) {
	g := &mockOpener{}
	z, err := NewZone(Def{Name: "approach", Mode: ModeClose, Shape: ShapeCuboid, MinY: -1, MaxY: 3,
		Nodes: [][2]float64{{0, 0}, {4, 4}}}, g)
	require.NoError(t, err)

	z.Revalidate(Body{ID: 7, Tag: "Villager", Position: model.Vec3{X: 1, Z: 1}})

	assert.Empty(t, g.calls)
	assert.Zero(t, z.Occupants())
}

func TestZone_PassClosesOnExit(t *testing.T) {
	g := &mockOpener{}
	z, err := NewZone(Def{Name: "arch", Mode: ModePass, Shape: ShapeCylinder, MinY: -1, MaxY: 3,
		Nodes: [][2]float64{{0, 0}}, Radius: 3}, g)
	require.NoError(t, err)

	z.Revalidate(player(0, 0))
	z.Revalidate(player(0, 5))
	z.Remove(player(0, 5))

	assert.Equal(t, []string{"open", "close"}, g.calls)
}

func TestZone_NilTarget(t *testing.T) {
	z, err := NewZone(Def{Name: "orphan", Mode: ModePass, Shape: ShapeCuboid,
		MinY: -1, MaxY: 1, Nodes: [][2]float64{{0, 0}, {1, 1}}}, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		z.Revalidate(player(0.5, 0.5))
		z.Revalidate(player(5, 5))
	})
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("pass")
	require.NoError(t, err)
	assert.Equal(t, ModePass, m)

	_, err = ParseMode("toggle")
	assert.Error(t, err)
}
