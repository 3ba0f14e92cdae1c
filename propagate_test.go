package astro

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestPropagateZeroDuration(t *testing.T) {
	s := CircularOrbitState(6671, Earth)
	prop := NewPropagator(Earth, DefaultSteps)
	samples, final, err := prop.Propagate(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("zero duration returned %d samples", len(samples))
	}
	if !vectorsEqual(final.Vector(), s.Vector()) {
		t.Fatalf("zero duration changed the state: %s", final)
	}
}

func TestPropagateNegativeDuration(t *testing.T) {
	s := CircularOrbitState(6671, Earth)
	prop := NewPropagator(Earth, DefaultSteps)
	if _, _, err := prop.Propagate(s, -time.Second); err == nil {
		t.Fatal("negative duration did not error")
	}
}

func TestPropagateClosedOrbit(t *testing.T) {
	// One full period must close the orbit within integration tolerance.
	s := CircularOrbitState(6671, Earth)
	period, err := s.Period()
	if err != nil {
		t.Fatal(err)
	}
	prop := NewPropagator(Earth, DefaultSteps)
	samples, final, err := prop.Propagate(s, period)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != DefaultSteps+1 {
		t.Fatalf("expected %d samples, got %d", DefaultSteps+1, len(samples))
	}
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(final.R[i], s.R[i], 1.0) {
			t.Fatalf("orbit did not close: R=%+v", final.R)
		}
		if !floats.EqualWithinAbs(final.V[i], s.V[i], 1e-3) {
			t.Fatalf("orbit did not close: V=%+v", final.V)
		}
	}
}

func TestPropagateConservation(t *testing.T) {
	// Energy and angular momentum are first integrals of the two-body problem.
	s := NewState([]float64{8000, 0, 0}, []float64{0, 8, 0}, Earth)
	period, err := s.Period()
	if err != nil {
		t.Fatal(err)
	}
	prop := NewPropagator(Earth, DefaultSteps)
	samples, _, err := prop.Propagate(s, period)
	if err != nil {
		t.Fatal(err)
	}
	ξ0 := s.Energyξ()
	h0 := norm(cross(s.R, s.V))
	for i, sample := range samples {
		if !floats.EqualWithinRel(sample.Energyξ(), ξ0, 1e-4) {
			t.Fatalf("energy drifted at sample %d: %f != %f", i, sample.Energyξ(), ξ0)
		}
		if !floats.EqualWithinRel(norm(cross(sample.R, sample.V)), h0, 1e-4) {
			t.Fatalf("angular momentum drifted at sample %d", i)
		}
	}
}

func TestPropagateResolution(t *testing.T) {
	s := CircularOrbitState(6671, Earth)
	prop := NewPropagator(Earth, 10)
	samples, _, err := prop.Propagate(s, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 11 {
		t.Fatalf("expected 11 samples, got %d", len(samples))
	}
	// The samples must actually move along the orbit.
	if vectorsEqual(samples[0].R, samples[1].R) {
		t.Fatal("propagation did not advance the state")
	}
}

func TestPropagateHalfPeriodReachesApoapsis(t *testing.T) {
	// From periapsis, half a period lands at apoapsis: r = 2a - r_p.
	s := NewState([]float64{6671, 0, 0}, []float64{0, 10.0, 0}, Earth)
	a, err := s.SemiMajorAxis()
	if err != nil {
		t.Fatal(err)
	}
	period, err := s.Period()
	if err != nil {
		t.Fatal(err)
	}
	prop := NewPropagator(Earth, DefaultSteps)
	_, final, err := prop.Propagate(s, period/2)
	if err != nil {
		t.Fatal(err)
	}
	rApo := 2*a - 6671
	if !floats.EqualWithinRel(norm(final.R), rApo, 1e-3) {
		t.Fatalf("expected |R|=%f at apoapsis, got %f", rApo, norm(final.R))
	}
	if math.Abs(norm(final.V)-norm(s.V)) < 1e-3 {
		t.Fatal("speed did not change along an elliptical orbit")
	}
}

func TestNewPropagatorPanics(t *testing.T) {
	assertPanic(t, func() {
		NewPropagator(Earth, 0)
	})
}
