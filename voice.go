package main

import (
	"fmt"
	"time"
)

type VoiceID int

const (
	Click VoiceID = iota
	HiClick
	LowKick
	KickClick
	HighTone
	NoiseBurst
	BackgroundTexture
)

func (v VoiceID) String() string {
	switch v {
	case Click:
		return "click"
	case HiClick:
		return "hiclick"
	case LowKick:
		return "lowkick"
	case KickClick:
		return "kickclick"
	case HighTone:
		return "tone"
	case NoiseBurst:
		return "burst"
	case BackgroundTexture:
		return "background"
	default:
		return fmt.Sprintf("voice(%d)", int(v))
	}
}

type Param string

const (
	ParamCutoff Param = "cutoff"
	ParamQ      Param = "q"
	ParamPan    Param = "pan"
	ParamDrive  Param = "drive"
	ParamFreq   Param = "freq"

	// ParamLevel scales the envelope peak of a single trigger.
	ParamLevel Param = "level"
)

// Fire asks the graph to trigger one voice. Params are applied before the
// envelope starts; a nil Shape keeps the voice's default envelope.
type Fire struct {
	Voice  VoiceID
	Params map[Param]float64
	Shape  *ADSR
}

func (f Fire) String() string {
	return fmt.Sprintf("%s%v", f.Voice, f.Params)
}

var (
	burstShape     = ADSR{Attack: 10 * time.Millisecond, Decay: 50 * time.Millisecond, Release: 300 * time.Millisecond, Peak: 0.3}
	clickShape     = ADSR{Attack: time.Millisecond, Decay: 10 * time.Millisecond, Release: 30 * time.Millisecond, Peak: 0.4}
	hiClickShape   = ADSR{Attack: time.Millisecond, Decay: 10 * time.Millisecond, Release: 20 * time.Millisecond, Peak: 0.3}
	lowKickShape   = ADSR{Attack: 10 * time.Millisecond, Decay: 10 * time.Millisecond, Sustain: 0.7, Release: 200 * time.Millisecond, Peak: 3}
	kickClickShape = ADSR{Attack: time.Millisecond, Decay: 5 * time.Millisecond, Release: 10 * time.Millisecond, Peak: 0.2}

	shortToneShape = ADSR{Attack: 10 * time.Millisecond, Decay: 50 * time.Millisecond, Release: 100 * time.Millisecond, Peak: 0.2}
	longToneShape  = ADSR{Attack: 20 * time.Millisecond, Decay: 200 * time.Millisecond, Release: 400 * time.Millisecond, Peak: 0.3}
)

type voice struct {
	id      VoiceID
	env     *Envelope
	shape   ADSR
	setters map[Param]Setter
}

func newVoice(id VoiceID, env *Envelope) *voice {
	return &voice{
		id:      id,
		env:     env,
		shape:   env.Shape(),
		setters: make(map[Param]Setter),
	}
}

// bind looks up a node's setter for a voice parameter.
func (v *voice) bind(p Param, node Settable, key string) error {
	s := node.GetSetter(key)
	if s == nil {
		return fmt.Errorf("voice %s: node has no %q setter for %s", v.id, key, p)
	}
	v.setters[p] = s
	return nil
}

func (v *voice) fire(f Fire, log *Logger) {
	shape := v.shape
	if f.Shape != nil {
		shape = *f.Shape
	}

	for p, val := range f.Params {
		if p == ParamLevel {
			shape.Peak *= amountRange.Clamp(val)
			continue
		}
		s, ok := v.setters[p]
		if !ok {
			log.Warnf("voice %s has no parameter %s", v.id, p)
			continue
		}
		s(val)
	}

	v.env.Trigger(shape)
}
