package astro

import (
	"fmt"
	"math"
)

// Reward policy constants. These are hard thresholds, not a continuous
// shaping function, and must not change without invalidating every trained
// policy: keep them exactly as they are for reproducibility.
const (
	aMatchThreshold = 0.1   // relative semi major axis error band
	eMatchThreshold = 0.1   // absolute eccentricity error band
	eDiffFloor      = 0.01  // keeps eDiff usable as a denominator
	iDiffFloor      = 0.01  // guards the relative inclination error
	baseReward      = 1.0   // small positive shaping signal per step
	matchBonus      = 2000.0
	thrustPenalty   = 10.0 // per unit of |thrust|, every step
	crashPenalty    = -5000.0
)

// orbitDelta holds the normalized element differences between the current and
// target orbits. iDiff is tracked for observability only and is deliberately
// not part of the termination predicate.
type orbitDelta struct {
	aDiff, eDiff, iDiff float64
	aMatch, eMatch      bool
}

func (δ orbitDelta) String() string {
	return fmt.Sprintf("aDiff=%.4f eDiff=%.4f iDiff=%.4f", δ.aDiff, δ.eDiff, δ.iDiff)
}

// compareOrbits computes the orbital elements of both states and turns their
// differences into the step reward and the termination flag.
func compareOrbits(current, target State) (reward float64, done bool, δ orbitDelta, err error) {
	aTgt, eTgt, iTgt, err := target.Elements()
	if err != nil {
		return 0, false, δ, fmt.Errorf("target orbit: %w", err)
	}
	a, e, i, err := current.Elements()
	if err != nil {
		return 0, false, δ, fmt.Errorf("current orbit: %w", err)
	}
	δ.aDiff = math.Abs(aTgt-a) / aTgt
	δ.eDiff = math.Max(math.Abs(eTgt-e), eDiffFloor)
	δ.iDiff = math.Abs(iTgt-i) / math.Max(iDiffFloor, iTgt)
	δ.aMatch = δ.aDiff < aMatchThreshold
	δ.eMatch = δ.eDiff < eMatchThreshold
	reward = baseReward
	if δ.aMatch && δ.eMatch {
		reward += matchBonus
		done = true
	}
	return reward, done, δ, nil
}
