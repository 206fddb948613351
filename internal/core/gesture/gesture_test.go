package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/stream"
)

func TestPhase(t *testing.T) {
	for _, p := range []Phase{PhasePossible, PhaseBegan, PhaseChanged, PhaseEnded, PhaseCancelled} {
		parsed, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePhase("failed")
	require.ErrorIs(t, err, ErrUnknownPhase)
	assert.Equal(t, "phase(9)", Phase(9).String())

	assert.True(t, PhaseChanged.Active())
	assert.False(t, PhaseEnded.Active())
	assert.True(t, PhaseCancelled.Terminal())
	assert.False(t, PhasePossible.Terminal())
}

func TestPanLifetime(t *testing.T) {
	g := stream.NewGraph()
	pan := NewPan(g, "")
	require.NotEmpty(t, pan.ID())

	var seen []Sample
	pan.Samples().Subscribe(func(s Sample) { seen = append(seen, s) })

	require.ErrorIs(t, pan.Move(geometry.Pt(1, 1), geometry.Point{}), ErrNotActive)
	require.ErrorIs(t, pan.End(geometry.Point{}), ErrNotActive)

	require.NoError(t, pan.Begin())
	require.ErrorIs(t, pan.Begin(), ErrAlreadyActive)
	require.NoError(t, pan.Move(geometry.Pt(0, 12), geometry.Pt(0, 300)))
	require.ErrorIs(t, pan.Move(geometry.Pt(math.NaN(), 0), geometry.Point{}), ErrNonFiniteSample)
	assert.Equal(t, PhaseChanged, pan.Phase(), "rejected samples change nothing")

	require.NoError(t, pan.End(geometry.Pt(0, 800)))

	require.Len(t, seen, 3)
	assert.Equal(t, Sample{Phase: PhaseEnded, Translation: geometry.Pt(0, 12), Velocity: geometry.Pt(0, 800)}, seen[2])

	t.Run("cancel drops velocity", func(t *testing.T) {
		require.NoError(t, pan.Begin())
		require.NoError(t, pan.Move(geometry.Pt(5, 0), geometry.Pt(900, 0)))
		require.NoError(t, pan.Cancel())
		last, ok := pan.Samples().Latest()
		require.True(t, ok)
		assert.Equal(t, Sample{Phase: PhaseCancelled, Translation: geometry.Pt(5, 0)}, last)
	})
}

func TestPanApply(t *testing.T) {
	g := stream.NewGraph()
	pan := NewPan(g, "feed")

	require.NoError(t, pan.Apply(Sample{Phase: PhaseBegan, Translation: geometry.Pt(99, 99)}))
	last, _ := pan.Samples().Latest()
	assert.Equal(t, geometry.Point{}, last.Translation, "began always starts from zero")

	require.NoError(t, pan.Apply(Sample{Phase: PhaseChanged, Translation: geometry.Pt(3, 4), Velocity: geometry.Pt(1, 1)}))
	require.ErrorIs(t, pan.Apply(Sample{Phase: PhasePossible}), ErrUnknownPhase)
	require.NoError(t, pan.Apply(Sample{Phase: PhaseEnded, Velocity: geometry.Pt(0, -20)}))
	require.ErrorIs(t, pan.Apply(Sample{Phase: PhaseCancelled}), ErrNotActive)
}

func TestLiveSelection(t *testing.T) {
	g := stream.NewGraph()
	idle := NewPan(g, "idle")
	a := NewPan(g, "a")
	b := NewPan(g, "b")
	require.NoError(t, a.Begin())
	require.NoError(t, b.Begin())
	require.NoError(t, b.End(geometry.Point{}))

	rs := []Recognizer{nil, idle, b, a}
	assert.False(t, Live(idle))
	assert.False(t, Live(b))

	first, ok := FirstLive(rs)
	require.True(t, ok)
	assert.Equal(t, "a", first.ID())
	assert.Equal(t, []Recognizer{a}, LivePans(rs))

	_, ok = FirstLive([]Recognizer{idle})
	assert.False(t, ok)
}
