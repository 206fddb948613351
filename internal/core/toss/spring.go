package toss

import (
	"github.com/charmbracelet/harmonica"
	"github.com/zeusync/motion/internal/core/geometry"
)

// Spring advances a damped harmonic oscillator one tick at a time using the
// closed-form solution, so a step is exact for any tick length and the result
// depends only on the configuration, the state and dt.
type Spring struct {
	omega float64
	zeta  float64
	dt    float64
	coef  harmonica.Spring
}

func NewSpring(cfg Config) *Spring {
	return &Spring{omega: cfg.AngularFrequency(), zeta: cfg.DampingRatio()}
}

// Step moves pos and vel toward target by dt seconds.
func (s *Spring) Step(pos, vel, target geometry.Point, dt float64) (geometry.Point, geometry.Point) {
	if dt != s.dt {
		s.coef = harmonica.NewSpring(dt, s.omega, s.zeta)
		s.dt = dt
	}
	for i := range pos {
		pos[i], vel[i] = s.coef.Update(pos[i], vel[i], target[i])
	}
	return pos, vel
}
