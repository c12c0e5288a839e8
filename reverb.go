package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

var (
	combDelays    = [4]int{1687, 1601, 2053, 2251}
	allpassDelays = [2]int{389, 307}
)

const (
	allpassCoef        = 0.5
	reverbAttenuation  = 0.3
	reverbStereoSpread = 23
	reverbPreDelay     = 8 * time.Millisecond
)

type ring struct {
	buf []float64
	pos int
}

func newRing(n int) ring {
	if n < 1 {
		n = 1
	}
	return ring{buf: make([]float64, n)}
}

func (r *ring) read() float64 {
	return r.buf[r.pos]
}

func (r *ring) write(v float64) {
	r.buf[r.pos] = v
	r.pos = (r.pos + 1) % len(r.buf)
}

type comb struct {
	ring
	feedback float64
	damp     float64
	filt     float64
}

func (c *comb) process(in float64) float64 {
	out := c.read()
	c.filt = out*(1-c.damp) + c.filt*c.damp
	c.write(in + c.filt*c.feedback)
	return out
}

type allpass struct {
	ring
}

func (a *allpass) process(in float64) float64 {
	delayed := a.read()
	a.write(in + delayed*allpassCoef)
	return delayed - in
}

// Reverb is a Schroeder style reverberator: a pre-delay feeding four
// parallel combs and two allpass stages, one network per channel. seconds
// is the time the tail takes to fall 60 dB; decay darkens the tail.
type Reverb struct {
	seconds float64
	decay   float64

	pre       [2]ring
	combs     [2][4]comb
	allpasses [2][2]allpass
}

func NewReverb(sr beep.SampleRate, seconds, decay float64) *Reverb {
	r := &Reverb{
		seconds: math.Max(seconds, 0.01),
		decay:   math.Max(decay, 0),
	}
	scale := float64(sr) / sampleRate
	damp := math.Min(r.decay/10, 0.7)

	for ch := 0; ch < 2; ch++ {
		spread := ch * reverbStereoSpread
		r.pre[ch] = newRing(sr.N(reverbPreDelay))
		for i, d := range combDelays {
			n := int(float64(d+spread) * scale)
			delaySec := float64(n) / float64(sr)
			r.combs[ch][i] = comb{
				ring:     newRing(n),
				feedback: math.Pow(0.001, delaySec/r.seconds),
				damp:     damp,
			}
		}
		for i, d := range allpassDelays {
			r.allpasses[ch][i] = allpass{ring: newRing(int(float64(d+spread) * scale))}
		}
	}
	return r
}

func (r *Reverb) processChannel(ch int, in float64) float64 {
	pre := &r.pre[ch]
	delayed := pre.read()
	pre.write(in)

	var out float64
	for i := range r.combs[ch] {
		out += r.combs[ch][i].process(delayed)
	}
	for i := range r.allpasses[ch] {
		out = r.allpasses[ch][i].process(out)
	}
	return out * reverbAttenuation
}

// ProcessSample replaces samples with the fully wet signal.
func (r *Reverb) ProcessSample(samples [][2]float64) {
	for i := range samples {
		samples[i][0] = r.processChannel(0, samples[i][0])
		samples[i][1] = r.processChannel(1, samples[i][1])
	}
}

// Send routes a chain through a reverb bus. Wet is the share of the chain's
// signal that goes through the reverb; the rest passes dry.
type Send struct {
	Streamer beep.Streamer
	Wet      float64
}

// Bus mixes several sends through one shared reverb. Each send keeps its
// own dry/wet balance while the tail is computed once.
func (r *Reverb) Bus(sends ...Send) beep.Streamer {
	var tmpBuf, wetBuf [][2]float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if len(tmpBuf) < len(samples) {
			tmpBuf = make([][2]float64, len(samples))
			wetBuf = make([][2]float64, len(samples))
		}
		tmp, wet := tmpBuf[:len(samples)], wetBuf[:len(samples)]
		for i := range samples {
			samples[i] = [2]float64{}
			wet[i] = [2]float64{}
		}

		for _, s := range sends {
			mix := amountRange.Clamp(s.Wet)
			n, _ := s.Streamer.Stream(tmp)
			for i := range tmp[:n] {
				for c := 0; c < 2; c++ {
					samples[i][c] += tmp[i][c] * (1 - mix)
					wet[i][c] += tmp[i][c] * mix
				}
			}
		}

		r.ProcessSample(wet)
		for i := range samples {
			samples[i][0] += wet[i][0]
			samples[i][1] += wet[i][1]
		}
		return len(samples), true
	})
}
