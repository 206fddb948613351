package direction

import (
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/stream"
)

// Connect resolves target once per release, reading the position stream at the
// moment the release arrives. Release-time resolution always runs, so it may
// override whatever the live path decided earlier.
func Connect(
	r Resolver,
	target *stream.Value[Direction],
	releases stream.Observable[geometry.Point],
	position stream.Observable[geometry.Point],
) *stream.Subscription {
	return releases.Subscribe(func(v geometry.Point) {
		p, _ := position.Latest()
		target.Set(r.Resolve(v, p))
	})
}

// ConnectLive lets a gesture redirect the transition before the finger lifts.
// The direction is written when the axis velocity first becomes decisive in a
// gesture lifetime, and again whenever it becomes decisive after dropping
// under the minimum or after flipping sign. A lifetime ends on a terminal
// sample, so a gesture picked up mid-flight without a began sample still
// starts from a clean state.
func ConnectLive(
	r Resolver,
	target *stream.Value[Direction],
	samples stream.Observable[gesture.Sample],
) *stream.Subscription {
	c := &crossing{resolver: r}
	return samples.Subscribe(func(s gesture.Sample) {
		switch {
		case s.Phase == gesture.PhaseBegan, s.Phase.Terminal():
			c.reset()
		case s.Phase == gesture.PhaseChanged:
			if d, ok := c.observe(s.Velocity); ok {
				target.Set(d)
			}
		}
	})
}

type crossing struct {
	resolver Resolver
	over     bool
	last     Direction
}

func (c *crossing) reset() {
	c.over, c.last = false, 0
}

func (c *crossing) observe(v geometry.Point) (Direction, bool) {
	d, decisive := c.resolver.Live(v)
	if !decisive {
		c.over = false
		return 0, false
	}
	fire := !c.over || d != c.last
	c.over, c.last = true, d
	return d, fire
}
