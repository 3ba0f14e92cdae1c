package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

// ErrEpisodeOver is returned by Step once an episode has terminated and
// until the next Reset.
var ErrEpisodeOver = errors.New("episode is over, call Reset")

// SpacecraftEnv is a sequential decision environment over a two-body orbital
// transfer: discrete coast/burn actions move a spacecraft from an initial
// circular orbit toward a target circular orbit.
//
// The session state (current state vector and trajectory history) is owned
// exclusively by this struct. Each instance is independent: run concurrent
// episodes with separate instances, never by sharing one.
type SpacecraftEnv struct {
	origin         CelestialObject
	initR, initV   []float64
	target         State
	actions        *ActionTable
	prop           *Propagator
	state          State
	hist           []State
	done           bool
	logger         kitlog.Logger
}

// NewSpacecraftEnv returns a new environment session for the provided
// configuration. The returned session is already reset.
func NewSpacecraftEnv(cfg Config) *SpacecraftEnv {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	initial := CircularOrbitState(cfg.Origin.Radius+cfg.InitialAltitude, cfg.Origin)
	target := CircularOrbitState(cfg.Origin.Radius+cfg.TargetAltitude, cfg.Origin)
	e := &SpacecraftEnv{
		origin:  cfg.Origin,
		initR:   initial.R,
		initV:   initial.V,
		target:  target,
		actions: NewActionTable(cfg.WaitLevels, cfg.ThrustLevels, cfg.MaxThrust),
		prop:    NewPropagator(cfg.Origin, cfg.Steps),
		logger:  cfg.Logger,
	}
	e.Reset()
	return e
}

// Reset reinitializes the session to the initial circular orbit, clears the
// trajectory history and returns the initial state.
func (e *SpacecraftEnv) Reset() State {
	e.state = NewState(e.initR, e.initV, e.origin).clone()
	e.hist = nil
	e.done = false
	e.logger.Log("level", "info", "subsys", "astro", "status", "reset", "orbit", e.state)
	return e.state
}

// Step decodes the given action index, coasts for the decoded fraction of the
// current orbital period, applies the impulsive burn along the velocity
// direction and scores the resulting orbit against the target.
//
// A semi major axis at or below the body radius is the designed catastrophic
// failure branch: the episode terminates with a large negative reward, it is
// not an error. Errors are reserved for misuse (bad action index, stepping a
// terminated episode) and for states whose orbital elements are undefined.
func (e *SpacecraftEnv) Step(k int) (State, float64, bool, map[string]interface{}, error) {
	info := make(map[string]interface{})
	if e.done {
		return e.state, 0, true, info, ErrEpisodeOver
	}
	action, err := e.actions.Decode(k)
	if err != nil {
		return e.state, 0, false, info, err
	}
	a, err := e.state.SemiMajorAxis()
	if err != nil {
		return e.state, 0, false, info, err
	}
	if a <= e.origin.Radius {
		e.done = true
		reward := crashPenalty - math.Abs(action.Thrust)
		e.logger.Log("level", "critical", "subsys", "astro", "collided", e.origin.Name, "a", a, "radius", e.origin.Radius)
		return e.state, reward, true, info, nil
	}
	if action.WaitFrac != 0 {
		wait := time.Duration(periodSeconds(a, e.origin.μ) * action.WaitFrac * float64(time.Second))
		samples, final, err := e.prop.Propagate(e.state, wait)
		if err != nil {
			return e.state, 0, false, info, err
		}
		// Clone: the impulse below mutates V in place and must not reach
		// into the last history sample.
		e.state = final.clone()
		e.hist = append(e.hist, samples...)
	}
	Δv := unit(e.state.V)
	for i := 0; i < 3; i++ {
		e.state.V[i] += Δv[i] * action.Thrust * 0.5
	}
	reward, done, δ, err := compareOrbits(e.state, e.target)
	if err != nil {
		return e.state, 0, false, info, err
	}
	reward -= math.Abs(action.Thrust) * thrustPenalty
	e.done = done
	e.logger.Log("level", "debug", "subsys", "astro", "action", action, "reward", reward, "delta", δ)
	if done {
		e.logger.Log("level", "notice", "subsys", "astro", "status", "orbit matched", "delta", δ)
	}
	return e.state, reward, done, info, nil
}

// Current returns the current state vector.
func (e *SpacecraftEnv) Current() State {
	return e.state.clone()
}

// InitialOrbit returns the fixed initial orbit state.
func (e *SpacecraftEnv) InitialOrbit() State {
	return NewState(e.initR, e.initV, e.origin).clone()
}

// TargetOrbit returns the fixed target orbit state.
func (e *SpacecraftEnv) TargetOrbit() State {
	return e.target.clone()
}

// NumActions returns the size of the discrete action set.
func (e *SpacecraftEnv) NumActions() int {
	return e.actions.Len()
}

// Done returns whether the current episode has terminated.
func (e *SpacecraftEnv) Done() bool {
	return e.done
}

// History returns the trajectory samples accumulated since the last Reset.
func (e *SpacecraftEnv) History() []State {
	hist := make([]State, len(e.hist))
	copy(hist, e.hist)
	return hist
}

// HistoryMatrix returns the accumulated trajectory as a dense matrix of one
// 6 column row per sample, or nil when the history is empty. This is the
// read-only surface the visualization adapter consumes.
func (e *SpacecraftEnv) HistoryMatrix() *mat64.Dense {
	if len(e.hist) == 0 {
		return nil
	}
	m := mat64.NewDense(len(e.hist), 6, nil)
	for i, s := range e.hist {
		m.SetRow(i, s.Vector())
	}
	return m
}

// OrbitTrace propagates one full period of the osculating orbit of the given
// state without touching the session, for plotting orbit outlines.
func (e *SpacecraftEnv) OrbitTrace(s State) ([]State, error) {
	period, err := s.Period()
	if err != nil {
		return nil, fmt.Errorf("cannot trace orbit: %w", err)
	}
	samples, _, err := e.prop.Propagate(s, period)
	return samples, err
}
