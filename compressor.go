package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Compressor is a stereo-linked peak compressor. Both channels receive the
// same gain so the stereo image does not wander.
type Compressor struct {
	threshold float64 // dB
	ratio     float64
	attack    float64
	release   float64
	envelope  float64
}

func NewCompressor(sr beep.SampleRate, thresholdDB, ratio float64, attack, release time.Duration) *Compressor {
	return &Compressor{
		threshold: thresholdDB,
		ratio:     math.Max(ratio, 1),
		attack:    smoothingCoef(sr, attack),
		release:   smoothingCoef(sr, release),
	}
}

func smoothingCoef(sr beep.SampleRate, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return 1 - math.Exp(-1/(float64(sr)*d.Seconds()))
}

func toDB(v float64) float64 {
	return 20 * math.Log10(math.Max(v, 1e-9))
}

func fromDB(db float64) float64 {
	return math.Pow(10, db/20)
}

func (c *Compressor) gain(peak float64) float64 {
	if peak > c.envelope {
		c.envelope += (peak - c.envelope) * c.attack
	} else {
		c.envelope += (peak - c.envelope) * c.release
	}

	over := toDB(c.envelope) - c.threshold
	if over <= 0 {
		return 1
	}
	return fromDB(-over * (1 - 1/c.ratio))
}

func (c *Compressor) ProcessSample(samples [][2]float64) {
	for i := range samples {
		peak := math.Max(math.Abs(samples[i][0]), math.Abs(samples[i][1]))
		g := c.gain(peak)
		samples[i][0] *= g
		samples[i][1] *= g
	}
}

func (c *Compressor) Process(src beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = src.Stream(samples)
		c.ProcessSample(samples[:n])
		return n, ok
	})
}
