package toss

import (
	"errors"
	"fmt"
	"math"
)

// Config tunes the spring. Mass is fixed at 1, so Stiffness is the square of
// the natural angular frequency and Damping equal to 2*sqrt(Stiffness) is
// critical damping.
type Config struct {
	Stiffness       float64 `yaml:"stiffness" json:"stiffness"`
	Damping         float64 `yaml:"damping" json:"damping"`
	PositionEpsilon float64 `yaml:"position_epsilon" json:"position_epsilon"`
	VelocityEpsilon float64 `yaml:"velocity_epsilon" json:"velocity_epsilon"`
	// MaxTicks forcibly settles a toss that has not converged after this many
	// springing ticks. Zero disables the cutoff.
	MaxTicks int `yaml:"max_ticks" json:"max_ticks"`
	// MinimumVelocity is the release speed, in points per second, at which a
	// gesture decides the direction by itself.
	MinimumVelocity float64 `yaml:"minimum_velocity" json:"minimum_velocity"`
}

const defaultStiffness = 342

func DefaultConfig() Config {
	return Config{
		Stiffness:       defaultStiffness,
		Damping:         CriticalDamping(defaultStiffness),
		PositionEpsilon: 0.01,
		VelocityEpsilon: 0.01,
		MaxTicks:        600,
		MinimumVelocity: 100,
	}
}

// CriticalDamping returns the damping at which a unit-mass spring of the given
// stiffness returns to rest fastest without overshooting.
func CriticalDamping(stiffness float64) float64 {
	return 2 * math.Sqrt(stiffness)
}

// DampingRatio is Damping relative to critical damping.
func (c Config) DampingRatio() float64 {
	return c.Damping / CriticalDamping(c.Stiffness)
}

// AngularFrequency is the undamped natural frequency in radians per second.
func (c Config) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness)
}

func (c Config) Validate() error {
	var errs []error
	if !positive(c.Stiffness) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidStiffness, c.Stiffness))
	}
	if !positive(c.Damping) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidDamping, c.Damping))
	}
	if !positive(c.PositionEpsilon) {
		errs = append(errs, fmt.Errorf("%w: position %v", ErrInvalidEpsilon, c.PositionEpsilon))
	}
	if !positive(c.VelocityEpsilon) {
		errs = append(errs, fmt.Errorf("%w: velocity %v", ErrInvalidEpsilon, c.VelocityEpsilon))
	}
	if c.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidMaxTicks, c.MaxTicks))
	}
	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
