package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ChristopherRabotin/ode"
)

const (
	// DefaultSteps is the default number of internal integration steps (and
	// trajectory samples) of a propagation, regardless of its duration.
	DefaultSteps = 100
)

/* Handles the two-body astrodynamical propagation. */

// Propagator integrates the two-body equations of motion
// dR/dt = V, dV/dt = -μ·R/|R|³ with a fixed number of RK4 steps over the
// requested duration. The internal step is duration/Steps, which bounds the
// integration step regardless of the orbit eccentricity.
type Propagator struct {
	Origin CelestialObject
	Steps  int
}

// NewPropagator returns a new Propagator with the provided sampling resolution.
func NewPropagator(origin CelestialObject, steps int) *Propagator {
	if steps <= 0 {
		panic("propagation steps must be positive")
	}
	return &Propagator{origin, steps}
}

// Propagate integrates the given state forward by duration. It returns the
// time ordered trajectory samples (the initial state followed by one sample
// per internal step) and the final state. A zero duration returns the initial
// state unchanged. Integration blowups (NaN states, e.g. trajectories driven
// through the origin) surface as an explicit error.
func (p *Propagator) Propagate(s State, duration time.Duration) ([]State, State, error) {
	if duration < 0 {
		return nil, s, fmt.Errorf("cannot propagate backward by %s", duration)
	}
	samples := make([]State, 1, p.Steps+1)
	samples[0] = s.clone()
	if duration == 0 {
		return samples, samples[0], nil
	}
	tb := &twoBodyProp{
		origin:    p.Origin,
		state:     s.Vector(),
		remaining: p.Steps,
	}
	ode.NewRK4(0, duration.Seconds()/float64(p.Steps), tb).Solve()
	if tb.err != nil {
		return nil, s, tb.err
	}
	for _, sample := range tb.samples {
		samples = append(samples, NewStateFromVector(sample, p.Origin))
	}
	final := samples[len(samples)-1]
	return samples, final, nil
}

// twoBodyProp is the ode.Integrable of a single propagation call.
type twoBodyProp struct {
	origin    CelestialObject
	state     []float64
	samples   [][]float64
	remaining int
	err       error
}

// GetState returns the latest state of the integration.
func (tb *twoBodyProp) GetState() []float64 {
	s := make([]float64, 6)
	copy(s, tb.state)
	return s
}

// SetState stores the integrated state and appends it to the trajectory.
func (tb *twoBodyProp) SetState(t float64, s []float64) {
	for i, val := range s {
		if math.IsNaN(val) {
			if tb.err == nil {
				tb.err = fmt.Errorf("state[%d]=NaN during propagation at t=%f: %w", i, t, errDiverged)
			}
			return
		}
	}
	sample := make([]float64, 6)
	copy(sample, s)
	tb.state = sample
	tb.samples = append(tb.samples, sample)
}

// Stop implements the stop call of the integrator.
func (tb *twoBodyProp) Stop(t float64) bool {
	if tb.err != nil || tb.remaining == 0 {
		return true
	}
	tb.remaining--
	return false
}

// Func is the two-body equation of motion in Cartesian coordinates.
func (tb *twoBodyProp) Func(t float64, f []float64) []float64 {
	R := []float64{f[0], f[1], f[2]}
	bodyAcc := -tb.origin.μ / math.Pow(norm(R), 3)
	return []float64{f[3], f[4], f[5], bodyAcc * f[0], bodyAcc * f[1], bodyAcc * f[2]}
}

// errDiverged flags a numerically diverged propagation.
var errDiverged = errors.New("propagation diverged")
