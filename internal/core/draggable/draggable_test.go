package draggable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/stream"
)

type fixture struct {
	graph    *stream.Graph
	position *stream.Value[geometry.Point]
	adapter  *Adapter
	releases []Release
	bindings []string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	g := stream.NewGraph()
	f := &fixture{graph: g, position: stream.NewValue(g, geometry.Pt(100, 400))}
	f.adapter = New(f.position, opts...)
	f.adapter.Releases().Subscribe(func(r Release) { f.releases = append(f.releases, r) })
	f.adapter.Bindings().Subscribe(func(id string) { f.bindings = append(f.bindings, id) })
	return f
}

func TestAttachBindsFirstLiveInPriorityOrder(t *testing.T) {
	f := newFixture(t)
	idle := gesture.NewPan(f.graph, "idle")
	low := gesture.NewPan(f.graph, "low")
	high := gesture.NewPan(f.graph, "high")

	require.NoError(t, low.Begin())
	require.NoError(t, high.Begin())
	require.NoError(t, high.Move(geometry.Pt(0, 10), geometry.Pt(0, 50)))

	f.adapter.Attach(idle, high, low)

	bound, ok := f.adapter.Bound()
	require.True(t, ok)
	assert.Equal(t, "high", bound.ID())
	assert.Equal(t, []string{"high"}, f.bindings)

	// translation already accumulated before binding is not replayed
	require.NoError(t, high.Move(geometry.Pt(0, 30), geometry.Pt(0, 50)))
	assert.Equal(t, geometry.Pt(100, 420), f.position.Get())

	require.NoError(t, low.Move(geometry.Pt(0, 500), geometry.Pt(0, 50)))
	assert.Equal(t, geometry.Pt(100, 420), f.position.Get(), "lower priority gesture is ignored")
}

func TestSecondGestureIgnoredWhileFirstBound(t *testing.T) {
	f := newFixture(t)
	first := gesture.NewPan(f.graph, "first")
	second := gesture.NewPan(f.graph, "second")
	f.adapter.Attach(first, second)

	require.NoError(t, first.Begin())
	require.NoError(t, first.Move(geometry.Pt(0, 20), geometry.Pt(0, 100)))

	require.NoError(t, second.Begin())
	require.NoError(t, second.Move(geometry.Pt(-50, -50), geometry.Pt(0, 0)))

	require.NoError(t, first.Move(geometry.Pt(0, 40), geometry.Pt(0, 100)))
	assert.Equal(t, geometry.Pt(100, 440), f.position.Get())

	bound, _ := f.adapter.Bound()
	assert.Equal(t, "first", bound.ID())

	require.NoError(t, first.End(geometry.Pt(0, 900)))
	require.Len(t, f.releases, 1)
	assert.Equal(t, Release{Gesture: "first", Velocity: geometry.Pt(0, 900)}, f.releases[0])

	_, ok := f.adapter.Bound()
	require.False(t, ok)

	// the still-live second gesture may bind once the adapter is free
	require.NoError(t, second.Move(geometry.Pt(-40, -50), geometry.Pt(0, 0)))
	bound, ok = f.adapter.Bound()
	require.True(t, ok)
	assert.Equal(t, "second", bound.ID())
	assert.Equal(t, geometry.Pt(100, 440), f.position.Get(), "binding mid-gesture does not jump")

	require.NoError(t, second.Move(geometry.Pt(-30, -50), geometry.Pt(0, 0)))
	assert.Equal(t, geometry.Pt(110, 440), f.position.Get())
}

func TestSequentialGesturesAccumulate(t *testing.T) {
	f := newFixture(t)
	pan := gesture.NewPan(f.graph, "pan")
	f.adapter.Attach(pan)

	for i := 0; i < 3; i++ {
		require.NoError(t, pan.Begin())
		require.NoError(t, pan.Move(geometry.Pt(5, 10), geometry.Pt(0, 0)))
		require.NoError(t, pan.Move(geometry.Pt(10, 20), geometry.Pt(0, 0)))
		require.NoError(t, pan.End(geometry.Pt(0, 0)))
	}

	assert.Equal(t, geometry.Pt(130, 460), f.position.Get())
	assert.Len(t, f.releases, 3)
	assert.Equal(t, []string{"pan", "pan", "pan"}, f.bindings)
}

func TestCancelReleasesWithoutVelocity(t *testing.T) {
	f := newFixture(t)
	pan := gesture.NewPan(f.graph, "pan")
	f.adapter.Attach(pan)

	var relayed []gesture.Phase
	f.adapter.Samples().Subscribe(func(s gesture.Sample) { relayed = append(relayed, s.Phase) })

	require.NoError(t, pan.Begin())
	require.NoError(t, pan.Move(geometry.Pt(0, 10), geometry.Pt(0, 2000)))
	require.NoError(t, pan.Cancel())

	require.Len(t, f.releases, 1)
	assert.True(t, f.releases[0].Cancelled)
	assert.Equal(t, geometry.Point{}, f.releases[0].Velocity)
	assert.Equal(t, []gesture.Phase{gesture.PhaseBegan, gesture.PhaseChanged, gesture.PhaseCancelled}, relayed)
}

func TestPerimeterResistance(t *testing.T) {
	f := newFixture(t, WithPerimeter(geometry.Rect{X: 100, Y: 400, Width: 0, Height: 400}))
	pan := gesture.NewPan(f.graph, "pan")
	f.adapter.Attach(pan)

	require.NoError(t, pan.Begin())
	require.NoError(t, pan.Move(geometry.Pt(20, -30), geometry.Pt(0, 0)))
	assert.Equal(t, geometry.Pt(100, 400), f.position.Get(), "fore edge and locked x hold")

	require.NoError(t, pan.Move(geometry.Pt(20, -100), geometry.Pt(0, 0)))
	require.NoError(t, pan.Move(geometry.Pt(20, -90), geometry.Pt(0, 0)))
	assert.Equal(t, geometry.Pt(100, 410), f.position.Get(), "reversal moves at once")

	f.adapter.SetPerimeter(nil)
	require.NoError(t, pan.Move(geometry.Pt(20, -100), geometry.Pt(0, 0)))
	assert.Equal(t, geometry.Pt(100, 400), f.position.Get())
	require.NoError(t, pan.Move(geometry.Pt(20, -150), geometry.Pt(0, 0)))
	assert.Equal(t, geometry.Pt(100, 350), f.position.Get())
}

func TestDisabledAndDetached(t *testing.T) {
	f := newFixture(t)
	pan := gesture.NewPan(f.graph, "pan")
	f.adapter.Attach(pan)
	f.adapter.SetEnabled(false)

	require.NoError(t, pan.Begin())
	require.NoError(t, pan.Move(geometry.Pt(0, 50), geometry.Pt(0, 0)))
	_, ok := f.adapter.Bound()
	assert.False(t, ok)
	assert.Equal(t, geometry.Pt(100, 400), f.position.Get())
	require.NoError(t, pan.End(geometry.Pt(0, 0)))

	f.adapter.SetEnabled(true)
	before := f.graph.Subscriptions()
	f.adapter.Detach()
	assert.Equal(t, before-1, f.graph.Subscriptions())
	assert.Empty(t, f.adapter.Candidates())

	require.NoError(t, pan.Begin())
	_, ok = f.adapter.Bound()
	assert.False(t, ok)
	assert.Empty(t, f.releases)
}
