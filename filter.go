package main

import (
	"math"

	"github.com/gopxl/beep"
)

type FilterKind int

const (
	BandPass FilterKind = iota
	HighPass
	LowPass
	Peaking
	LowShelf
	HighShelf
)

// Biquad is a second order RBJ filter. State is kept per channel so panned
// material stays stereo.
type Biquad struct {
	kind       FilterKind
	sampleRate float64
	freq       float64
	q          float64
	gain       float64 // dB, peaking and shelves only

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func NewBiquad(sr beep.SampleRate, kind FilterKind, freq, q float64) *Biquad {
	f := &Biquad{
		kind:       kind,
		sampleRate: float64(sr),
		freq:       freqRange(float64(sr)).Clamp(freq),
		q:          qRange.Clamp(q),
	}
	f.update()
	return f
}

func (f *Biquad) SetFrequency(freq float64) {
	f.freq = freqRange(f.sampleRate).Clamp(freq)
	f.update()
}

func (f *Biquad) SetQ(q float64) {
	f.q = qRange.Clamp(q)
	f.update()
}

func (f *Biquad) SetGain(db float64) {
	f.gain = gainRange.Clamp(db)
	f.update()
}

func (f *Biquad) Frequency() float64 { return f.freq }
func (f *Biquad) Q() float64         { return f.q }

func (f *Biquad) GetSetter(k string) Setter {
	switch k {
	case "freq":
		return f.SetFrequency
	case "q":
		return f.SetQ
	case "gain":
		return f.SetGain
	default:
		return nil
	}
}

func (f *Biquad) update() {
	w0 := 2 * math.Pi * f.freq / f.sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * f.q)
	a := math.Pow(10, f.gain/40)
	sqa := 2 * math.Sqrt(a) * alpha

	var b0, b1, b2, a0, a1, a2 float64
	switch f.kind {
	case BandPass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case HighPass:
		b0 = (1 + cosw) / 2
		b1 = -(1 + cosw)
		b2 = (1 + cosw) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case LowPass:
		b0 = (1 - cosw) / 2
		b1 = 1 - cosw
		b2 = (1 - cosw) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case Peaking:
		b0 = 1 + alpha*a
		b1 = -2 * cosw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosw
		a2 = 1 - alpha/a
	case LowShelf:
		b0 = a * ((a + 1) - (a-1)*cosw + sqa)
		b1 = 2 * a * ((a - 1) - (a+1)*cosw)
		b2 = a * ((a + 1) - (a-1)*cosw - sqa)
		a0 = (a + 1) + (a-1)*cosw + sqa
		a1 = -2 * ((a - 1) + (a+1)*cosw)
		a2 = (a + 1) + (a-1)*cosw - sqa
	case HighShelf:
		b0 = a * ((a + 1) + (a-1)*cosw + sqa)
		b1 = -2 * a * ((a - 1) + (a+1)*cosw)
		b2 = a * ((a + 1) + (a-1)*cosw - sqa)
		a0 = (a + 1) - (a-1)*cosw + sqa
		a1 = 2 * ((a - 1) - (a+1)*cosw)
		a2 = (a + 1) - (a-1)*cosw - sqa
	}

	// Normalize filter coefficients
	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = a1 / a0
	f.a2 = a2 / a0
}

func (f *Biquad) ProcessSample(samples [][2]float64) {
	for i := range samples {
		for c := 0; c < 2; c++ {
			x := samples[i][c]
			y := f.b0*x + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]

			f.x2[c] = f.x1[c]
			f.x1[c] = x
			f.y2[c] = f.y1[c]
			f.y1[c] = y

			samples[i][c] = y
		}
	}
}

func (f *Biquad) Process(src beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = src.Stream(samples)
		f.ProcessSample(samples[:n])
		return n, ok
	})
}
