package vec

import (
	"math"
	"testing"
)

func TestAddSub(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, -2, 0.5)

	sum := a.Add(b)
	if sum != New(5, 0, 3.5) {
		t.Errorf("unexpected sum: %+v", sum)
	}

	diff := sum.Sub(b)
	if diff != a {
		t.Errorf("expected %+v, got %+v", a, diff)
	}
}

func TestScaleDot(t *testing.T) {
	v := New(1, -2, 2)

	if got := v.Scale(3); got != New(3, -6, 6) {
		t.Errorf("unexpected scale: %+v", got)
	}

	if got := v.Dot(New(2, 1, 1)); got != 2.0 {
		t.Errorf("expected dot 2, got %f", got)
	}
}

func TestNormUnit(t *testing.T) {
	v := New(1, -2, 2)

	if got := v.Norm(); math.Abs(got-3) > 1e-12 {
		t.Errorf("expected norm 3, got %f", got)
	}

	u := v.Unit()
	if math.Abs(u.Norm()-1) > 1e-12 {
		t.Errorf("unit vector should have norm 1, got %f", u.Norm())
	}
}

func TestUnitOfZero(t *testing.T) {
	if got := Zero().Unit(); !got.IsZero() {
		t.Errorf("unit of zero should be zero, got %+v", got)
	}
}

func TestCross(t *testing.T) {
	got := New(1, 0, 0).Cross(New(0, 1, 0))
	if got != New(0, 0, 1) {
		t.Errorf("expected x cross y = z, got %+v", got)
	}
}

func TestFromAngle(t *testing.T) {
	if got := FromAngle(0); got.Sub(Up()).Norm() > 1e-12 {
		t.Errorf("angle 0 should point up, got %+v", got)
	}

	got := FromAngle(math.Pi / 2)
	if got.Sub(New(1, 0, 0)).Norm() > 1e-12 {
		t.Errorf("angle pi/2 should point along +X, got %+v", got)
	}
	if math.Abs(got.Norm()-1) > 1e-12 {
		t.Errorf("direction should be unit length, got %f", got.Norm())
	}
}

func TestIsFinite(t *testing.T) {
	if !New(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if New(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component reported finite")
	}
	if New(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component reported finite")
	}
}
