package main

import "github.com/gopxl/beep"

type EQBand struct {
	Kind FilterKind
	Freq float64
	Gain float64 // dB
}

var masterBands = []EQBand{
	{Kind: LowShelf, Freq: 100, Gain: 3},
	{Kind: Peaking, Freq: 1000, Gain: -2.5},
	{Kind: HighShelf, Freq: 8000, Gain: 1.5},
}

// Equalizer runs its bands in series.
type Equalizer struct {
	bands []*Biquad
}

func NewEqualizer(sr beep.SampleRate, bands []EQBand) *Equalizer {
	eq := &Equalizer{}
	for _, b := range bands {
		f := NewBiquad(sr, b.Kind, b.Freq, 0.707)
		f.SetGain(b.Gain)
		eq.bands = append(eq.bands, f)
	}
	return eq
}

func (eq *Equalizer) ProcessSample(samples [][2]float64) {
	for _, b := range eq.bands {
		b.ProcessSample(samples)
	}
}

func (eq *Equalizer) Process(src beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = src.Stream(samples)
		eq.ProcessSample(samples[:n])
		return n, ok
	})
}
