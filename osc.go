package main

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
)

type Waveform int

const (
	Sine Waveform = iota
	Square
)

type Oscillator struct {
	sampleRate float64
	frequency  float64
	phase      float64
	wave       Waveform
}

func NewOscillator(sr beep.SampleRate, wave Waveform, freq float64) *Oscillator {
	o := &Oscillator{
		sampleRate: float64(sr),
		wave:       wave,
	}
	o.SetFrequency(freq)
	return o
}

func sineOsc(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func squareOsc(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freqRange(o.sampleRate).Clamp(freq)
}

func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

func (o *Oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var value float64
		switch o.wave {
		case Square:
			value = squareOsc(o.phase)
		default:
			value = sineOsc(o.phase)
		}
		samples[i][0] = value
		samples[i][1] = value

		_, o.phase = math.Modf(o.phase + o.frequency/o.sampleRate)
	}
	return len(samples), true
}

func (o *Oscillator) Err() error {
	return nil
}

func (o *Oscillator) GetSetter(k string) Setter {
	switch k {
	case "freq":
		return o.SetFrequency
	default:
		return nil
	}
}

// Noise is a white noise source. Each instance owns its generator so audio
// rendering never draws from the composer's source.
type Noise struct {
	rng *rand.Rand
}

func NewNoise(rng *rand.Rand) *Noise {
	return &Noise{rng: rng}
}

func (n *Noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *Noise) Err() error {
	return nil
}
