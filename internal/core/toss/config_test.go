package toss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/motion/internal/core/geometry"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.DampingRatio(), 1e-12)
	assert.InDelta(t, math.Sqrt(342), cfg.AngularFrequency(), 1e-12)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Stiffness: math.Inf(1), Damping: 0, PositionEpsilon: -1, VelocityEpsilon: math.NaN(), MaxTicks: -3}
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidStiffness)
	require.ErrorIs(t, err, ErrInvalidDamping)
	require.ErrorIs(t, err, ErrInvalidEpsilon)
	require.ErrorIs(t, err, ErrInvalidMaxTicks)
}

func TestConfigYAML(t *testing.T) {
	src := `
stiffness: 500
damping: 30
position_epsilon: 0.5
velocity_epsilon: 0.25
max_ticks: 120
minimum_velocity: 250
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	assert.Equal(t, Config{
		Stiffness:       500,
		Damping:         30,
		PositionEpsilon: 0.5,
		VelocityEpsilon: 0.25,
		MaxTicks:        120,
		MinimumVelocity: 250,
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestSpringStep(t *testing.T) {
	s := NewSpring(DefaultConfig())
	target := geometry.Pt(0, 400)

	t.Run("at rest on target stays put", func(t *testing.T) {
		pos, vel := s.Step(target, geometry.Point{}, target, frame)
		assert.Equal(t, target, pos)
		assert.Equal(t, geometry.Point{}, vel)
	})

	t.Run("axes are independent", func(t *testing.T) {
		pos, _ := s.Step(geometry.Pt(0, 800), geometry.Point{}, target, frame)
		assert.Equal(t, 0.0, pos.X())
		assert.Less(t, pos.Y(), 800.0)
		assert.Greater(t, pos.Y(), 400.0)
	})

	t.Run("one long step matches two half steps", func(t *testing.T) {
		whole, wholeVel := s.Step(geometry.Pt(0, 800), geometry.Pt(0, -300), target, 2*frame)
		half, halfVel := s.Step(geometry.Pt(0, 800), geometry.Pt(0, -300), target, frame)
		half, halfVel = s.Step(half, halfVel, target, frame)
		assert.InDelta(t, whole.Y(), half.Y(), 1e-6)
		assert.InDelta(t, wholeVel.Y(), halfVel.Y(), 1e-6)
	})
}
