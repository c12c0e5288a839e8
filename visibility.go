package main

import (
	"sync"
	"time"
)

const (
	hideFade = 500 * time.Millisecond
	showFade = time.Second
)

type BackgroundFader interface {
	FadeBackground(target float64, d time.Duration)
}

// Visibility turns host focus changes into background fades. Only
// transitions act; repeating the current state is a no-op.
type Visibility struct {
	mu         sync.Mutex
	foreground bool
	level      float64
	fader      BackgroundFader
	log        *Logger
}

func NewVisibility(fader BackgroundFader, level float64, log *Logger) *Visibility {
	if log == nil {
		log = discardLogger()
	}
	return &Visibility{
		foreground: true,
		level:      level,
		fader:      fader,
		log:        log,
	}
}

func (v *Visibility) Foreground() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.foreground
}

func (v *Visibility) Set(foreground bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if foreground == v.foreground {
		return
	}
	v.foreground = foreground

	if foreground {
		v.log.Infof("foregrounded, background returns to %v", v.level)
		v.fader.FadeBackground(v.level, showFade)
	} else {
		v.log.Infof("backgrounded, fading background out")
		v.fader.FadeBackground(0, hideFade)
	}
}
