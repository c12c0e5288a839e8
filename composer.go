package main

import "time"

// State is everything the composer remembers between ticks.
type State struct {
	StepCount      int
	InRun          bool
	RunStep        int
	DoubleSpeed    bool
	DoubleSpeedEnd time.Time
	LastHighNote   time.Time
}

type Player interface {
	Play(Fire)
}

type Deferrer interface {
	After(d time.Duration, f func()) *Task
}

// Composer decides, once per tick, which voices fire and with what
// parameters. It must only be driven from the clock goroutine.
type Composer struct {
	cfg    Config
	state  State
	rng    Rand
	player Player
	sched  Deferrer
	log    *Logger

	// OnDoubleSpeed reports transitions of the advisory double-speed flag.
	OnDoubleSpeed func(on bool)
}

func NewComposer(cfg Config, rng Rand, player Player, sched Deferrer, log *Logger) *Composer {
	if log == nil {
		log = discardLogger()
	}
	return &Composer{
		cfg:    cfg,
		rng:    rng,
		player: player,
		sched:  sched,
		log:    log,
	}
}

func (c *Composer) State() State {
	return c.state
}

func (c *Composer) Tick(now time.Time) {
	c.click()
	c.kick()
	c.run()
	c.doubleSpeed(now)
	c.burst()
	c.melody(now)

	c.state.StepCount++
}

func (c *Composer) click() {
	c.player.Play(Fire{
		Voice: Click,
		Params: map[Param]float64{
			ParamCutoff: uniform(c.rng, 1000, 3500),
			ParamQ:      uniform(c.rng, 3, 8),
			ParamPan:    uniform(c.rng, -0.7, 0.7),
		},
	})

	if chance(c.rng, c.cfg.DoubleHitProbability) {
		c.sched.After(c.cfg.DoubleHitDelay, func() {
			c.player.Play(Fire{Voice: Click})
		})
	}
}

func (c *Composer) kick() {
	step := c.state.StepCount
	switch {
	case step%6 == 0 || step%4 == 3:
		c.fireKick(1)
	case step%8 == 6 && chance(c.rng, c.cfg.KickFillProbability):
		c.fireKick(1.0 / 6)
	}
}

func (c *Composer) fireKick(level float64) {
	c.player.Play(Fire{
		Voice: LowKick,
		Params: map[Param]float64{
			ParamDrive: uniform(c.rng, 0, 0.003),
			ParamLevel: level,
		},
	})
	c.player.Play(Fire{
		Voice: KickClick,
		Params: map[Param]float64{
			ParamCutoff: uniform(c.rng, 2500, 5000),
		},
	})
}

func (c *Composer) run() {
	if !c.state.InRun && chance(c.rng, c.cfg.RunProbability) {
		c.state.InRun = true
		c.state.RunStep = 0
		c.log.Debugf("run started at step %d", c.state.StepCount)
	}
	if !c.state.InRun {
		return
	}

	c.player.Play(Fire{
		Voice: HiClick,
		Params: map[Param]float64{
			ParamCutoff: uniform(c.rng, 8000, 10000),
		},
	})
	c.state.RunStep++
	if c.state.RunStep >= c.cfg.RunLength {
		c.state.InRun = false
	}
}

func (c *Composer) doubleSpeed(now time.Time) {
	if c.state.DoubleSpeed && now.After(c.state.DoubleSpeedEnd) {
		c.state.DoubleSpeed = false
		c.notifyDoubleSpeed(false)
	}
	if c.state.DoubleSpeed || !chance(c.rng, c.cfg.DoubleSpeedProbability) {
		return
	}

	span := uniform(c.rng, float64(c.cfg.DoubleSpeedMin), float64(c.cfg.DoubleSpeedMax))
	c.state.DoubleSpeed = true
	c.state.DoubleSpeedEnd = now.Add(time.Duration(span))
	c.notifyDoubleSpeed(true)
}

func (c *Composer) notifyDoubleSpeed(on bool) {
	c.log.Debugf("double speed %v", on)
	if c.OnDoubleSpeed != nil {
		c.OnDoubleSpeed(on)
	}
}

func (c *Composer) burst() {
	if chance(c.rng, c.cfg.BurstProbability) {
		c.player.Play(Fire{Voice: NoiseBurst})
	}
}

func (c *Composer) melody(now time.Time) {
	if c.state.LastHighNote.IsZero() {
		c.state.LastHighNote = now
	}
	if now.Sub(c.state.LastHighNote) <= c.cfg.MelodicCooldown {
		return
	}

	freq := lowNote
	if chance(c.rng, c.cfg.SecondaryPitchProbability) {
		freq = highNote
	}
	shape := longToneShape
	if c.rng.Float64() < 0.5 {
		shape = shortToneShape
	}

	c.player.Play(Fire{
		Voice:  HighTone,
		Params: map[Param]float64{ParamFreq: freq},
		Shape:  &shape,
	})
	c.state.LastHighNote = now
}
