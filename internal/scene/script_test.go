package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gatekeep/internal/model"
	"github.com/udisondev/gatekeep/internal/trigger"
)

type countingOpener struct{ calls []string }

func (o *countingOpener) Open()  { o.calls = append(o.calls, "open") }
func (o *countingOpener) Close() { o.calls = append(o.calls, "close") }

func TestScript_WalksThroughPassZone(t *testing.T) {
	g := &countingOpener{}
	zones := trigger.NewManager()
	z, err := trigger.NewZone(trigger.Def{
		Name:  "gateway",
		Mode:  trigger.ModePass,
		Shape: trigger.ShapeCuboid,
		MinY:  -1, MaxY: 3,
		Nodes: [][2]float64{{-1, 4}, {1, 6}},
	}, g)
	require.NoError(t, err)
	require.NoError(t, zones.Add(z))

	body := trigger.Body{ID: 1, Tag: trigger.DefaultPlayerTag}
	path := []model.Vec3{{X: 0, Z: 0}, {X: 0, Z: 10}}
	s := NewScript(body, path, 2, zones)
	s.Start()
	assert.Empty(t, g.calls)

	for range 300 {
		s.Advance(20 * time.Millisecond)
	}

	assert.True(t, s.Done())
	assert.InDelta(t, 10, s.Body().Position.Z, 1e-9)
	assert.Equal(t, []string{"open", "close"}, g.calls)
}

func TestScript_CornersKeepBudget(t *testing.T) {
	path := []model.Vec3{{X: 0}, {X: 1}, {X: 1, Z: 1}}
	s := NewScript(trigger.Body{ID: 1}, path, 1.5, nil)

	s.Advance(time.Second)

	pos := s.Body().Position
	assert.InDelta(t, 1, pos.X, 1e-9)
	assert.InDelta(t, 0.5, pos.Z, 1e-9)
	assert.False(t, s.Done())

	s.Advance(time.Second)
	assert.True(t, s.Done())
	assert.InDelta(t, 1, s.Body().Position.Z, 1e-9)
}

func TestScript_Degenerate(t *testing.T) {
	s := NewScript(trigger.Body{ID: 1}, []model.Vec3{{X: 3}}, 1, nil)
	assert.True(t, s.Done())
	s.Advance(time.Second)
	assert.InDelta(t, 3, s.Body().Position.X, 1e-9)
}
