package astro

import (
	"fmt"

	"github.com/gonum/floats"
)

// Action is a coast-then-burn maneuver: coast for WaitFrac of the current
// orbital period, then apply an instantaneous impulse of Thrust along the
// velocity direction.
type Action struct {
	WaitFrac float64 // in [0, 1)
	Thrust   float64
}

func (a Action) String() string {
	return fmt.Sprintf("wait=%.2fT thrust=%.2f", a.WaitFrac, a.Thrust)
}

// ActionTable is the immutable discrete action set: the cross product of a
// linear grid of wait fractions and a linear grid of thrust magnitudes, in
// wait-major order. Index k always decodes to the same pair.
type ActionTable struct {
	actions        []Action
	waits, thrusts []float64
}

// NewActionTable builds the lookup table once. The wait grid spans
// [0, 1-1/waitLevels] and the thrust grid spans [-maxThrust/2, maxThrust].
func NewActionTable(waitLevels, thrustLevels int, maxThrust float64) *ActionTable {
	if waitLevels <= 0 || thrustLevels <= 0 {
		panic("action grid sizes must be positive")
	}
	if maxThrust <= 0 {
		panic("max thrust must be positive")
	}
	waits := make([]float64, waitLevels)
	floats.Span(waits, 0, 1-1/float64(waitLevels))
	thrusts := make([]float64, thrustLevels)
	floats.Span(thrusts, -maxThrust/2, maxThrust)
	actions := make([]Action, 0, waitLevels*thrustLevels)
	for _, w := range waits {
		for _, th := range thrusts {
			actions = append(actions, Action{w, th})
		}
	}
	return &ActionTable{actions, waits, thrusts}
}

// Decode maps a discrete action index to its (wait, thrust) pair.
// Out of range indices fail, they are never clamped.
func (tbl *ActionTable) Decode(k int) (Action, error) {
	if k < 0 || k >= len(tbl.actions) {
		return Action{}, fmt.Errorf("action index %d out of range [0, %d)", k, len(tbl.actions))
	}
	return tbl.actions[k], nil
}

// Len returns the size of the discrete action set.
func (tbl *ActionTable) Len() int {
	return len(tbl.actions)
}
