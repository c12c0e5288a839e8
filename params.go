package main

import "math"

type Setter func(float64)

type Settable interface {
	GetSetter(string) Setter
}

// Range is the span a node parameter accepts. Writes outside it are clamped
// rather than rejected so a bad draw never stops a tick.
type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

var (
	qRange      = Range{0.1, 40}
	gainRange   = Range{-24, 24}
	panRange    = Range{-1, 1}
	amountRange = Range{0, 1}
)

// freqRange keeps oscillator and filter frequencies below Nyquist.
func freqRange(sampleRate float64) Range {
	return Range{1, 0.45 * sampleRate}
}

func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
