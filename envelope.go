package main

import (
	"time"

	"github.com/gopxl/beep"
)

// ADSR describes one envelope trigger. Sustain is a ratio of Peak. The
// release stage begins Hold after the decay stage ends.
type ADSR struct {
	Attack  time.Duration
	Decay   time.Duration
	Sustain float64
	Hold    time.Duration
	Release time.Duration
	Peak    float64
}

type envStage int

const (
	stageIdle envStage = iota
	stageAttack
	stageDecay
	stageHold
	stageRelease
)

type Envelope struct {
	sr    beep.SampleRate
	sub   beep.Streamer
	shape ADSR

	stage  envStage
	pos    int
	length int
	from   float64
	to     float64
	level  float64
}

func NewEnvelope(sr beep.SampleRate, sub beep.Streamer, shape ADSR) *Envelope {
	return &Envelope{
		sr:    sr,
		sub:   sub,
		shape: shape,
	}
}

func (e *Envelope) Shape() ADSR {
	return e.shape
}

func (e *Envelope) SetShape(shape ADSR) {
	e.shape = shape
}

// Trigger restarts the attack from whatever level the envelope is at, so a
// retrigger mid-note neither clicks nor stacks on top of the old note.
func (e *Envelope) Trigger(shape ADSR) {
	e.shape = shape
	e.enter(stageAttack)
}

func (e *Envelope) Active() bool {
	return e.stage != stageIdle
}

func (e *Envelope) Level() float64 {
	return e.level
}

func (e *Envelope) enter(s envStage) {
	e.stage = s
	e.pos = 0
	e.from = e.level
	switch s {
	case stageAttack:
		e.length = e.sr.N(e.shape.Attack)
		e.to = e.shape.Peak
	case stageDecay:
		e.length = e.sr.N(e.shape.Decay)
		e.to = e.shape.Peak * e.shape.Sustain
	case stageHold:
		e.length = e.sr.N(e.shape.Hold)
		e.to = e.level
	case stageRelease:
		e.length = e.sr.N(e.shape.Release)
		e.to = 0
	default:
		e.length = 0
		e.level = 0
		e.to = 0
	}
}

func (e *Envelope) next() float64 {
	for e.stage != stageIdle && e.pos >= e.length {
		e.level = e.to
		if e.stage == stageRelease {
			e.enter(stageIdle)
		} else {
			e.enter(e.stage + 1)
		}
	}
	if e.stage == stageIdle {
		return 0
	}

	e.pos++
	e.level = e.from + (e.to-e.from)*float64(e.pos)/float64(e.length)
	return e.level
}

func (e *Envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.sub.Stream(samples)
	if !ok {
		return n, ok
	}

	for i := range samples[:n] {
		gain := e.next()
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

func (e *Envelope) Err() error {
	return e.sub.Err()
}
