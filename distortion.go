package main

import (
	"math"

	"github.com/gopxl/beep"
)

const deg = math.Pi / 180

// Distortion is a static waveshaper. amount 0 leaves the signal close to
// linear; amount 1 drives it hard into the knee.
type Distortion struct {
	amount float64
	k      float64
}

func NewDistortion(amount float64) *Distortion {
	d := &Distortion{}
	d.SetAmount(amount)
	return d
}

func (d *Distortion) SetAmount(v float64) {
	d.amount = amountRange.Clamp(v)
	d.k = d.amount * 1000
}

func (d *Distortion) Amount() float64 {
	return d.amount
}

func (d *Distortion) shape(x float64) float64 {
	x = clampSample(x)
	return (3 + d.k) * x * 20 * deg / (math.Pi + d.k*math.Abs(x))
}

func (d *Distortion) ProcessSample(samples [][2]float64) {
	for i := range samples {
		samples[i][0] = d.shape(samples[i][0])
		samples[i][1] = d.shape(samples[i][1])
	}
}

func (d *Distortion) Process(src beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = src.Stream(samples)
		d.ProcessSample(samples[:n])
		return n, ok
	})
}

func (d *Distortion) GetSetter(k string) Setter {
	switch k {
	case "amount":
		return d.SetAmount
	default:
		return nil
	}
}
