package astro

import (
	"math"
	"time"
)

// Hohmann computes the departure and arrival velocities of the two-impulse
// transfer between two circular coplanar orbits, along with its time of
// flight. It is the analytic yardstick for the discrete maneuver sequences
// the environment rewards.
func Hohmann(rI, vI, rF, vF float64, body CelestialObject) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * body.GM() / rI) - (body.GM() / aTransfer))
	vArrival = math.Sqrt((2 * body.GM() / rF) - (body.GM() / aTransfer))
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/body.GM())) * time.Second
	return
}
