package astro

// CelestialObject defines the primary body at the center of the inertial frame.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km^3/s^2
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// Earth is the default primary body. The radius and gravitational parameter
// are the rounded values the environment was tuned with, not the IAU ones.
var Earth = CelestialObject{"Earth", 6371.0, 398600.0}
