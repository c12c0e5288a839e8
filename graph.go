package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	clickFreq   = 440
	lowKickFreq = 43.65

	hiClickMaxCutoff = 10000
)

type panner struct {
	effects.Pan
}

func newPanner(src beep.Streamer) *panner {
	return &panner{Pan: effects.Pan{Streamer: src}}
}

func (p *panner) SetPan(v float64) {
	p.Pan.Pan = panRange.Clamp(v)
}

func (p *panner) GetSetter(k string) Setter {
	switch k {
	case "pan":
		return p.SetPan
	default:
		return nil
	}
}

// Graph is the fixed voice topology feeding the master bus. It is pulled
// by the audio device and written to by the clock goroutine, so every entry
// point takes mu.
type Graph struct {
	mu sync.Mutex

	sr     beep.SampleRate
	voices map[VoiceID]*voice
	bg     *Fader
	out    beep.Streamer
	log    *Logger

	clickFilter     *Biquad
	clickPan        *panner
	hiClickFilter   *Biquad
	tone            *Oscillator
	kickDrive       *Distortion
	kickClickFilter *Biquad
}

func NewGraph(cfg Config, log *Logger) (*Graph, error) {
	if log == nil {
		log = discardLogger()
	}
	sr := cfg.SampleRate
	if float64(hiClickMaxCutoff) >= freqRange(float64(sr)).Max {
		return nil, fmt.Errorf("sample rate %d cannot represent a %d Hz cutoff", sr, hiClickMaxCutoff)
	}

	g := &Graph{
		sr:     sr,
		voices: make(map[VoiceID]*voice),
		log:    log,
	}

	// background: noise -> bandpass -> fader
	bgFilter := NewBiquad(sr, BandPass, 900, 5)
	g.bg = NewFader(sr, bgFilter.Process(NewNoise(newRand(cfg.Seed+1))), cfg.BackgroundLevel)

	// burst: noise -> env -> bandpass -> distortion -> short reverb
	burstEnv := NewEnvelope(sr, NewNoise(newRand(cfg.Seed+2)), burstShape)
	burstFilter := NewBiquad(sr, BandPass, 3300, 4)
	burstDist := NewDistortion(0.1)
	burstReverb := NewReverb(sr, 0.1, 2)
	burst := burstReverb.Bus(Send{Streamer: burstDist.Process(burstFilter.Process(burstEnv)), Wet: 0.2})
	g.voices[NoiseBurst] = newVoice(NoiseBurst, burstEnv)

	// click: square -> env -> bandpass -> panner
	clickEnv := NewEnvelope(sr, NewOscillator(sr, Square, clickFreq), clickShape)
	g.clickFilter = NewBiquad(sr, BandPass, 2000, 5)
	g.clickPan = newPanner(g.clickFilter.Process(clickEnv))
	click := newVoice(Click, clickEnv)
	g.voices[Click] = click

	// high click and tone share one long reverb
	hiClickEnv := NewEnvelope(sr, NewOscillator(sr, Square, clickFreq), hiClickShape)
	g.hiClickFilter = NewBiquad(sr, BandPass, 9000, 5)
	hiClick := newVoice(HiClick, hiClickEnv)
	g.voices[HiClick] = hiClick

	g.tone = NewOscillator(sr, Sine, lowNote)
	toneEnv := NewEnvelope(sr, g.tone, longToneShape)
	tone := newVoice(HighTone, toneEnv)
	g.voices[HighTone] = tone

	highReverb := NewReverb(sr, 2.5, 2)
	high := highReverb.Bus(
		Send{Streamer: g.hiClickFilter.Process(hiClickEnv), Wet: 0.4},
		Send{Streamer: toneEnv, Wet: 0.3},
	)

	// low kick: sine -> env -> distortion
	kickEnv := NewEnvelope(sr, NewOscillator(sr, Sine, lowKickFreq), lowKickShape)
	g.kickDrive = NewDistortion(0.05)
	kick := newVoice(LowKick, kickEnv)
	g.voices[LowKick] = kick

	// kick click: noise -> env -> highpass
	kickClickEnv := NewEnvelope(sr, NewNoise(newRand(cfg.Seed+3)), kickClickShape)
	g.kickClickFilter = NewBiquad(sr, HighPass, 3000, 3)
	kickClick := newVoice(KickClick, kickClickEnv)
	g.voices[KickClick] = kickClick

	binds := []struct {
		v    *voice
		p    Param
		node Settable
		key  string
	}{
		{click, ParamCutoff, g.clickFilter, "freq"},
		{click, ParamQ, g.clickFilter, "q"},
		{click, ParamPan, g.clickPan, "pan"},
		{hiClick, ParamCutoff, g.hiClickFilter, "freq"},
		{tone, ParamFreq, g.tone, "freq"},
		{kick, ParamDrive, g.kickDrive, "amount"},
		{kickClick, ParamCutoff, g.kickClickFilter, "freq"},
	}
	for _, b := range binds {
		if err := b.v.bind(b.p, b.node, b.key); err != nil {
			return nil, err
		}
	}

	out := beep.Mix(
		g.bg,
		burst,
		g.clickPan,
		high,
		g.kickDrive.Process(kickEnv),
		g.kickClickFilter.Process(kickClickEnv),
	)
	if cfg.MasterFX {
		eq := NewEqualizer(sr, masterBands)
		comp := NewCompressor(sr, -20, 6, 10*time.Millisecond, 300*time.Millisecond)
		out = comp.Process(eq.Process(out))
	}
	g.out = beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := out.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] = clampSample(samples[i][0])
			samples[i][1] = clampSample(samples[i][1])
		}
		return n, ok
	})

	return g, nil
}

func (g *Graph) SampleRate() beep.SampleRate {
	return g.sr
}

func (g *Graph) Stream(samples [][2]float64) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, _ := g.out.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (g *Graph) Err() error {
	return nil
}

func (g *Graph) Play(f Fire) {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.voices[f.Voice]
	if !ok {
		g.log.Warnf("voice %s cannot be fired", f.Voice)
		return
	}
	g.log.Debugf("fire %s", f)
	v.fire(f, g.log)
}

func (g *Graph) FadeBackground(target float64, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.log.Debugf("background fade to %v over %v", target, d)
	g.bg.FadeTo(target, d)
}

// Background reports the background's current fade target and ramp time.
func (g *Graph) Background() (float64, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bg.Target(), g.bg.Duration()
}
