package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Engine ties the graph, the step clock and the composer together.
type Engine struct {
	cfg      Config
	log      *Logger
	graph    *Graph
	clock    *StepClock
	composer *Composer
	vis      *Visibility

	doubleSpeed atomic.Bool
}

func NewEngine(cfg Config, log *Logger) (*Engine, error) {
	if log == nil {
		log = discardLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	log.Debugf("seed %d", cfg.Seed)

	g, err := NewGraph(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("building signal graph: %w", err)
	}

	e := &Engine{
		cfg:   cfg,
		log:   log,
		graph: g,
		clock: NewStepClock(TickPeriod(cfg.BPM), log),
		vis:   NewVisibility(g, cfg.BackgroundLevel, log),
	}
	e.composer = NewComposer(cfg, newRand(cfg.Seed), g, e.clock, log)
	e.composer.OnDoubleSpeed = e.doubleSpeed.Store
	e.clock.OnTick = e.composer.Tick

	return e, nil
}

func (e *Engine) Graph() *Graph {
	return e.graph
}

func (e *Engine) Composer() *Composer {
	return e.composer
}

// DoubleSpeed reports the advisory double-speed flag. It never changes
// the tick period.
func (e *Engine) DoubleSpeed() bool {
	return e.doubleSpeed.Load()
}

func (e *Engine) SetForeground(fg bool) {
	e.vis.Set(fg)
}

// Run plays the graph on out and drives the clock until ctx is done. The
// clock and any pending tasks stop before the device is closed.
func (e *Engine) Run(ctx context.Context, out Output) error {
	if err := out.Start(e.graph); err != nil {
		return fmt.Errorf("starting output: %w", err)
	}
	e.log.Infof("playing at %v bpm, step %v", e.cfg.BPM, e.clock.Period())

	err := e.clock.Run(ctx)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}
	e.log.Infof("stopped after %d steps", e.composer.State().StepCount)
	return err
}

// offline drives the clock from sample time instead of the wall clock.
func (e *Engine) offline() beep.Streamer {
	sr := e.graph.SampleRate()
	epoch := time.Unix(0, 0)
	block := sr.N(time.Millisecond)
	var pos int

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		total := len(samples)
		for len(samples) > 0 {
			e.clock.Advance(epoch.Add(sr.D(pos)))

			n := block
			if n > len(samples) {
				n = len(samples)
			}
			e.graph.Stream(samples[:n])
			pos += n
			samples = samples[n:]
		}
		return total, true
	})
}

// Render writes d of audio to w as 16 bit stereo WAV.
func (e *Engine) Render(w io.WriteSeeker, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("render duration must be positive, got %v", d)
	}
	defer e.clock.cancelPending()

	sr := e.graph.SampleRate()
	format := beep.Format{
		SampleRate:  sr,
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, beep.Take(sr.N(d), e.offline()), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	e.log.Infof("rendered %v, %d steps", d, e.composer.State().StepCount)
	return nil
}
