package main

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Visual encoding ranges. Widths and pixel radii are in terminal-scaled
// pixels; geographic radius and elevation are in meters and get scaled
// again by the rendering surface.
const (
	lineWidthMin = 0.5
	lineWidthMax = 4.0

	geoRadiusMin = 1500.0
	geoRadiusMax = 45000.0

	pixelRadiusMin = 2.0
	pixelRadiusMax = 16.0

	elevationMin = 0.0
	elevationMax = 5000.0

	colorAlpha = 204
)

type scaleKind int

const (
	scaleLinear scaleKind = iota
	scaleLog
	scaleSqrt
)

// valueScale maps a measure domain onto a visual range. All scales clamp;
// log and sqrt scales substitute the domain minimum for non-positive
// input, since they are undefined at or below zero.
type valueScale struct {
	kind   scaleKind
	d0, d1 float64
	r0, r1 float64
}

func newLinearScale(d0, d1, r0, r1 float64) valueScale {
	return valueScale{kind: scaleLinear, d0: d0, d1: d1, r0: r0, r1: r1}
}

func newLogScale(d0, d1, r0, r1 float64) valueScale {
	return valueScale{kind: scaleLog, d0: d0, d1: d1, r0: r0, r1: r1}
}

func newSqrtScale(d0, d1, r0, r1 float64) valueScale {
	return valueScale{kind: scaleSqrt, d0: d0, d1: d1, r0: r0, r1: r1}
}

// Apply never errors: malformed input coerces to the domain minimum.
func (s valueScale) Apply(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = s.d0
	}
	if s.kind != scaleLinear && v <= 0 {
		v = s.d0
	}
	if v < s.d0 {
		v = s.d0
	}
	if v > s.d1 {
		v = s.d1
	}

	var t float64
	switch s.kind {
	case scaleLog:
		t = (math.Log(v) - math.Log(s.d0)) / (math.Log(s.d1) - math.Log(s.d0))
	case scaleSqrt:
		t = (math.Sqrt(v) - math.Sqrt(s.d0)) / (math.Sqrt(s.d1) - math.Sqrt(s.d0))
	default:
		t = (v - s.d0) / (s.d1 - s.d0)
	}
	return s.r0 + t*(s.r1-s.r0)
}

// measureDomain extracts a safe scale domain from a value set. The floor
// keeps log/sqrt domains positive; degenerate input (all equal or absent)
// still yields distinct positive endpoints.
func measureDomain(values []float64) (lo, hi float64) {
	ok := false
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if !ok {
		return 1, 10
	}
	if lo == hi {
		hi = lo * 10
	}
	return lo, hi
}

// RGBA is an explicit four-channel color handed to the rendering surface.
type RGBA struct {
	R, G, B, A uint8
}

func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Diverging palette stops, cool to hot (RdYlBu reversed).
var rampStops = [3]colorful.Color{
	mustHex("#2c7bb6"),
	mustHex("#ffffbf"),
	mustHex("#d7191c"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// scaleSet is the per-recompute bundle of value-to-visual mappings derived
// from the filtered records' measure values.
type scaleSet struct {
	lineWidth valueScale
	geoRadius valueScale
	elevation valueScale
	colorLo   float64
	colorHi   float64
}

func newScaleSet(values []float64) scaleSet {
	lo, hi := measureDomain(values)
	return scaleSet{
		lineWidth: newLogScale(lo, hi, lineWidthMin, lineWidthMax),
		geoRadius: newLogScale(lo, hi, geoRadiusMin, geoRadiusMax),
		elevation: newLinearScale(lo, hi, elevationMin, elevationMax),
		colorLo:   lo,
		colorHi:   hi,
	}
}

// pixelRadiusScale is rebuilt per render pass from the subset's own
// min/max rather than the shared domain.
func pixelRadiusScale(values []float64) valueScale {
	lo, hi := measureDomain(values)
	return newSqrtScale(lo, hi, pixelRadiusMin, pixelRadiusMax)
}

// Color maps a measure value through the diverging ramp, inverted so the
// larger value lands on the hot end, with fixed alpha. Blending happens in
// Lab space.
func (s scaleSet) Color(v float64) RGBA {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		v = s.colorLo
	}
	if v < s.colorLo {
		v = s.colorLo
	}
	if v > s.colorHi {
		v = s.colorHi
	}
	t := 0.0
	if s.colorHi > s.colorLo {
		t = (v - s.colorLo) / (s.colorHi - s.colorLo)
	}

	var c colorful.Color
	if t <= 0.5 {
		c = rampStops[0].BlendLab(rampStops[1], t*2).Clamped()
	} else {
		c = rampStops[1].BlendLab(rampStops[2], (t-0.5)*2).Clamped()
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: colorAlpha}
}
