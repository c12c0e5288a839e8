package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = 44100

const (
	lowNote  = 698.46 // F5
	highNote = 659.25 // E5
)

type Config struct {
	SampleRate beep.SampleRate
	BPM        float64

	BurstProbability          float64
	RunProbability            float64
	DoubleSpeedProbability    float64
	DoubleHitProbability      float64
	KickFillProbability       float64
	SecondaryPitchProbability float64

	MelodicCooldown time.Duration
	DoubleHitDelay  time.Duration
	DoubleSpeedMin  time.Duration
	DoubleSpeedMax  time.Duration
	RunLength       int

	BackgroundLevel float64

	// Seed drives the composer and the noise sources. Zero picks one from
	// the wall clock.
	Seed uint64

	// MasterFX enables the master equalizer and compressor.
	MasterFX bool
}

func DefaultConfig() Config {
	return Config{
		SampleRate: sampleRate,
		BPM:        140,

		BurstProbability:          0.2,
		RunProbability:            0.02,
		DoubleSpeedProbability:    0.01,
		DoubleHitProbability:      0.1,
		KickFillProbability:       0.4,
		SecondaryPitchProbability: 0.15,

		MelodicCooldown: 1700 * time.Millisecond,
		DoubleHitDelay:  40 * time.Millisecond,
		DoubleSpeedMin:  800 * time.Millisecond,
		DoubleSpeedMax:  1500 * time.Millisecond,
		RunLength:       16,

		BackgroundLevel: 0.02,
		MasterFX:        true,
	}
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if !(c.BPM > 0) {
		return fmt.Errorf("bpm must be positive, got %v", c.BPM)
	}
	probs := map[string]float64{
		"burst":           c.BurstProbability,
		"run":             c.RunProbability,
		"double speed":    c.DoubleSpeedProbability,
		"double hit":      c.DoubleHitProbability,
		"kick fill":       c.KickFillProbability,
		"secondary pitch": c.SecondaryPitchProbability,
	}
	for name, p := range probs {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%s probability %v outside [0,1]", name, p)
		}
	}
	if c.RunLength <= 0 {
		return fmt.Errorf("run length must be positive, got %d", c.RunLength)
	}
	if c.DoubleSpeedMax < c.DoubleSpeedMin {
		return fmt.Errorf("double speed range %v..%v is inverted", c.DoubleSpeedMin, c.DoubleSpeedMax)
	}
	if c.BackgroundLevel < 0 {
		return fmt.Errorf("background level must not be negative")
	}
	return nil
}
