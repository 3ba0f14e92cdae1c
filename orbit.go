package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

var (
	// ErrZeroEnergy is returned when the specific mechanical energy is exactly
	// zero: the semi major axis of a parabolic trajectory is undefined.
	ErrZeroEnergy = errors.New("zero specific energy: semi major axis undefined")
	// ErrRectilinear is returned when the angular momentum is zero: the
	// inclination of a rectilinear trajectory is undefined.
	ErrRectilinear = errors.New("zero angular momentum: orbital elements undefined")
	// ErrUnbound is returned when requesting the period of a non elliptical orbit.
	ErrUnbound = errors.New("non positive semi major axis: orbit has no period")
)

// State defines a Cartesian orbital state: position and velocity vectors in an
// inertial frame centered on the origin body.
type State struct {
	R, V   []float64 // position (km) and velocity (km/s)
	Origin CelestialObject
}

// NewState returns a state from its position and velocity vectors.
func NewState(R, V []float64, c CelestialObject) State {
	if len(R) != 3 || len(V) != 3 {
		panic("state vectors must be 3x1")
	}
	return State{R, V, c}
}

// NewStateFromVector returns a state from a flat (rx, ry, rz, vx, vy, vz) vector.
func NewStateFromVector(s []float64, c CelestialObject) State {
	if len(s) != 6 {
		panic("state vector must be 6x1")
	}
	return State{[]float64{s[0], s[1], s[2]}, []float64{s[3], s[4], s[5]}, c}
}

// Vector returns the flat (rx, ry, rz, vx, vy, vz) vector of this state.
func (s State) Vector() []float64 {
	return []float64{s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2]}
}

// Energyξ returns the specific mechanical energy ξ.
// The kinetic term uses V·V directly so that exactly parabolic states keep a
// ξ of exactly zero instead of picking up a square root round trip error.
func (s State) Energyξ() float64 {
	return 0.5*dot(s.V, s.V) - s.Origin.μ/norm(s.R)
}

// SemiMajorAxis returns a from the vis-viva equation. A negative value
// denotes a hyperbolic trajectory. Errors on exactly parabolic states.
func (s State) SemiMajorAxis() (float64, error) {
	ξ := s.Energyξ()
	if ξ == 0 {
		return 0, ErrZeroEnergy
	}
	return -s.Origin.μ / (2 * ξ), nil
}

// Elements returns the semi major axis, eccentricity and inclination of this
// state. From Vallado's RV2COE, page 113, restricted to the elements the
// environment compares on.
func (s State) Elements() (a, e, i float64, err error) {
	hVec := cross(s.R, s.V)
	h := norm(hVec)
	if floats.EqualWithinAbs(h, 0, 1e-12) {
		return 0, 0, 0, ErrRectilinear
	}
	ξ := s.Energyξ()
	if ξ == 0 {
		return 0, 0, 0, ErrZeroEnergy
	}
	a = -s.Origin.μ / (2 * ξ)
	e2 := 1 + 2*h*h*ξ/(s.Origin.μ*s.Origin.μ)
	if e2 < 0 {
		// Rounding pushes this just below zero on circular orbits.
		if !floats.EqualWithinAbs(e2, 0, 1e-9) {
			return 0, 0, 0, fmt.Errorf("negative squared eccentricity %g", e2)
		}
		e2 = 0
	}
	e = math.Sqrt(e2)
	i = math.Acos(hVec[2] / h)
	return
}

// Period returns the period of the osculating orbit of this state.
func (s State) Period() (time.Duration, error) {
	a, err := s.SemiMajorAxis()
	if err != nil {
		return 0, err
	}
	if a <= 0 {
		return 0, ErrUnbound
	}
	// The time package does not trivially handle fractions of a second, so
	// let's compute this in a convoluted way...
	seconds := periodSeconds(a, s.Origin.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration, nil
}

// periodSeconds returns 2π√(a³/μ). Callers must ensure a > 0.
func periodSeconds(a, μ float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/μ)
}

// String implements the stringer interface.
func (s State) String() string {
	return fmt.Sprintf("R=(%.1f, %.1f, %.1f) km V=(%.4f, %.4f, %.4f) km/s", s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2])
}

// clone returns a deep copy of this state.
func (s State) clone() State {
	R := make([]float64, 3)
	V := make([]float64, 3)
	copy(R, s.R)
	copy(V, s.V)
	return State{R, V, s.Origin}
}

// CircularOrbitState returns the state of a circular equatorial orbit of the
// given radius, at true longitude zero and orbiting prograde.
func CircularOrbitState(r float64, c CelestialObject) State {
	if r <= 0 {
		panic("orbit radius must be positive")
	}
	v := math.Sqrt(c.μ / r)
	return State{[]float64{r, 0, 0}, []float64{0, v, 0}, c}
}
