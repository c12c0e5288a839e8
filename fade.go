package main

import (
	"time"

	"github.com/gopxl/beep"
)

// Fader is a gain stage that ramps linearly to a target level.
type Fader struct {
	sr  beep.SampleRate
	sub beep.Streamer

	level    float64
	step     float64
	remain   int
	target   float64
	duration time.Duration
}

func NewFader(sr beep.SampleRate, sub beep.Streamer, level float64) *Fader {
	return &Fader{
		sr:     sr,
		sub:    sub,
		level:  level,
		target: level,
	}
}

// FadeTo starts a ramp from the current level. A zero duration jumps.
func (f *Fader) FadeTo(target float64, d time.Duration) {
	f.target = target
	f.duration = d
	f.remain = f.sr.N(d)
	if f.remain <= 0 {
		f.level = target
		f.step = 0
		return
	}
	f.step = (target - f.level) / float64(f.remain)
}

func (f *Fader) Target() float64 {
	return f.target
}

func (f *Fader) Duration() time.Duration {
	return f.duration
}

func (f *Fader) Level() float64 {
	return f.level
}

func (f *Fader) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.sub.Stream(samples)
	for i := range samples[:n] {
		if f.remain > 0 {
			f.level += f.step
			f.remain--
			if f.remain == 0 {
				f.level = f.target
			}
		}
		samples[i][0] *= f.level
		samples[i][1] *= f.level
	}
	return n, ok
}

func (f *Fader) Err() error {
	return f.sub.Err()
}
