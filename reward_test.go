package astro

import (
	"testing"

	"github.com/gonum/floats"
)

func TestCompareOrbitsMatched(t *testing.T) {
	target := CircularOrbitState(42157, Earth)
	reward, done, δ, err := compareOrbits(target.clone(), target)
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("identical orbits did not terminate")
	}
	if !floats.EqualWithinAbs(reward, 2001, 1e-12) {
		t.Fatalf("expected reward 2001, got %f", reward)
	}
	if !δ.aMatch || !δ.eMatch {
		t.Fatalf("expected both matches: %s", δ)
	}
	// The eccentricity difference is floored, never zero.
	if δ.eDiff != eDiffFloor {
		t.Fatalf("expected floored eDiff, got %f", δ.eDiff)
	}
}

func TestCompareOrbitsOffTarget(t *testing.T) {
	current := CircularOrbitState(6671, Earth)
	target := CircularOrbitState(42157, Earth)
	reward, done, δ, err := compareOrbits(current, target)
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Fatal("LEO matched GEO")
	}
	if reward != baseReward {
		t.Fatalf("expected base reward, got %f", reward)
	}
	if δ.aMatch {
		t.Fatalf("aDiff=%f should not match", δ.aDiff)
	}
	if !floats.EqualWithinAbs(δ.aDiff, (42157.0-6671.0)/42157.0, 1e-6) {
		t.Fatalf("incorrect aDiff %f", δ.aDiff)
	}
}

func TestCompareOrbitsEccentricityGate(t *testing.T) {
	// Matching semi major axis with a wildly eccentric orbit must not
	// terminate: both gates are required.
	target := CircularOrbitState(42157, Earth)
	current := NewState([]float64{21078.5, 0, 0}, []float64{0, 5.3, 0}, Earth)
	a, e, _, err := current.Elements()
	if err != nil {
		t.Fatal(err)
	}
	if e < 0.3 {
		t.Fatalf("fixture is not eccentric enough: e=%f", e)
	}
	δa := (42157 - a) / 42157
	if δa > 0.1 || δa < -0.1 {
		t.Fatalf("fixture semi major axis off target: a=%f", a)
	}
	_, done, δ, err := compareOrbits(current, target)
	if err != nil {
		t.Fatal(err)
	}
	if done || δ.eMatch {
		t.Fatalf("eccentric orbit terminated: %s", δ)
	}
}

func TestCompareOrbitsDegenerate(t *testing.T) {
	target := CircularOrbitState(42157, Earth)
	rectilinear := NewState([]float64{8000, 0, 0}, []float64{1, 0, 0}, Earth)
	if _, _, _, err := compareOrbits(rectilinear, target); err == nil {
		t.Fatal("rectilinear state did not error")
	}
}
