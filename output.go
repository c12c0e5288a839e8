package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is an audio device that pulls from a streamer on its own
// goroutine.
type Output interface {
	Start(src beep.Streamer) error
	Close() error
}

func NewOutput(name string, sr beep.SampleRate) (Output, error) {
	switch name {
	case "speaker", "":
		return &speakerOutput{sr: sr}, nil
	case "oto":
		return &otoOutput{sr: sr}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", name)
	}
}

type speakerOutput struct {
	sr beep.SampleRate
}

func (s *speakerOutput) Start(src beep.Streamer) error {
	if err := speaker.Init(s.sr, s.sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(src)
	return nil
}

func (s *speakerOutput) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

type otoOutput struct {
	sr     beep.SampleRate
	ctx    *oto.Context
	player *oto.Player
}

func (o *otoOutput) Start(src beep.Streamer) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(o.sr),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   100 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("init oto: %w", err)
	}
	<-ready

	o.ctx = ctx
	o.player = ctx.NewPlayer(&pcmReader{src: src})
	o.player.Play()
	return nil
}

func (o *otoOutput) Close() error {
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}

// pcmReader encodes a stereo streamer as interleaved float32 little endian
// frames.
type pcmReader struct {
	mu  sync.Mutex
	src beep.Streamer
	buf [][2]float64
}

const pcmFrameSize = 8

func (r *pcmReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / pcmFrameSize
	if frames == 0 {
		return 0, nil
	}
	if len(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n, _ := r.src.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}

	for i, s := range buf {
		off := i * pcmFrameSize
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(s[0])))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(float32(s[1])))
	}
	return frames * pcmFrameSize, nil
}
