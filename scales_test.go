package main

import (
	"math"
	"testing"
)

func TestLogScaleClampsAndFloors(t *testing.T) {
	s := newLogScale(1, 1000, 0.5, 4)

	atMin := s.Apply(1)
	for _, v := range []float64{0, -5, math.NaN(), math.Inf(-1)} {
		if got := s.Apply(v); got != atMin {
			t.Errorf("Apply(%v) = %v, want domain-minimum output %v", v, got, atMin)
		}
	}

	if got := s.Apply(1e9); got != 4 {
		t.Errorf("values past the domain max should clamp to the range max, got %v", got)
	}
	if got := s.Apply(1); got != 0.5 {
		t.Errorf("domain min should map to range min, got %v", got)
	}
}

func TestSqrtScaleClamps(t *testing.T) {
	s := newSqrtScale(4, 100, 2, 16)
	if got := s.Apply(-3); got != s.Apply(4) {
		t.Errorf("non-positive input should behave like the domain minimum, got %v", got)
	}
	if got := s.Apply(100); got != 16 {
		t.Errorf("domain max should map to range max, got %v", got)
	}
	if got := s.Apply(1e6); got != 16 {
		t.Errorf("clamp above the domain, got %v", got)
	}
}

func TestLinearScaleEndpoints(t *testing.T) {
	s := newLinearScale(0, 100, 0, 5000)
	if got := s.Apply(50); got != 2500 {
		t.Errorf("midpoint should map linearly, got %v", got)
	}
	if got := s.Apply(-10); got != 0 {
		t.Errorf("below-domain input clamps, got %v", got)
	}
}

func TestMeasureDomainDegeneracy(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"all zero", []float64{0, 0}},
		{"all negative", []float64{-3, -7}},
		{"all equal", []float64{42, 42, 42}},
		{"non-finite", []float64{math.NaN(), math.Inf(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := measureDomain(tc.values)
			if lo <= 0 || hi <= 0 {
				t.Errorf("domain endpoints must be positive, got [%v, %v]", lo, hi)
			}
			if lo == hi {
				t.Errorf("domain endpoints must be distinct, got [%v, %v]", lo, hi)
			}
		})
	}
}

func TestColorRampInverted(t *testing.T) {
	s := newScaleSet([]float64{10, 1000})

	low := s.Color(10)
	high := s.Color(1000)
	if low == high {
		t.Fatal("domain endpoints should produce different colors")
	}
	// larger values land on the hot end
	if high.R <= low.R {
		t.Errorf("high value should be hotter: low=%+v high=%+v", low, high)
	}
	if low.A != colorAlpha || high.A != colorAlpha {
		t.Errorf("alpha is fixed at %d, got %d and %d", colorAlpha, low.A, high.A)
	}
}

func TestColorCoercesMalformedInput(t *testing.T) {
	s := newScaleSet([]float64{10, 1000})
	atMin := s.Color(10)
	for _, v := range []float64{0, -1, math.NaN()} {
		if got := s.Color(v); got != atMin {
			t.Errorf("Color(%v) should coerce to the domain minimum color", v)
		}
	}
}

func TestPixelRadiusUsesSubsetDomain(t *testing.T) {
	wide := pixelRadiusScale([]float64{1, 10000})
	narrow := pixelRadiusScale([]float64{9000, 10000})

	if wide.Apply(1) != pixelRadiusMin || wide.Apply(10000) != pixelRadiusMax {
		t.Error("subset extremes should hit the pixel range endpoints")
	}
	// the same value scales differently under a different subset
	if wide.Apply(9000) == narrow.Apply(9000) {
		t.Error("pixel radius must be derived from the render pass's own subset")
	}
}
