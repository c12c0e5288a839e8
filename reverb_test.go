package main

import (
	"testing"
)

func energy(buf [][2]float64, from, to int) float64 {
	var sum float64
	for _, s := range buf[from:to] {
		sum += s[0]*s[0] + s[1]*s[1]
	}
	return sum
}

func TestReverbTail(t *testing.T) {
	r := NewReverb(sampleRate, 2.5, 2)
	buf := make([][2]float64, 2*sampleRate)
	buf[0] = [2]float64{1, 1}
	r.ProcessSample(buf)

	if energy(buf, 0, sampleRate/200) != 0 {
		t.Fatal("wet signal arrived before the pre-delay")
	}
	early := energy(buf, sampleRate/10, sampleRate/2)
	late := energy(buf, 3*sampleRate/2, 2*sampleRate)
	if early == 0 || late == 0 {
		t.Fatalf("no tail: early %v late %v", early, late)
	}
	if late >= early {
		t.Fatalf("tail is not decaying: early %v late %v", early, late)
	}

	var differ bool
	for _, s := range buf {
		if s[0] != s[1] {
			differ = true
			break
		}
	}
	if !differ {
		t.Fatal("reverb tail is mono")
	}
}

func TestShortReverbDiesOut(t *testing.T) {
	r := NewReverb(sampleRate, 0.1, 2)
	buf := make([][2]float64, sampleRate)
	buf[0] = [2]float64{1, 1}
	r.ProcessSample(buf)

	if e := energy(buf, sampleRate/2, sampleRate); e > 1e-9 {
		t.Fatalf("short reverb still ringing: %v", e)
	}
}

func TestReverbBusDryPath(t *testing.T) {
	r := NewReverb(sampleRate, 2.5, 2)
	bus := r.Bus(Send{Streamer: ones, Wet: 0})
	for _, s := range render(bus, 4096) {
		if s[0] != 1 || s[1] != 1 {
			t.Fatalf("dry send altered: %v", s)
		}
	}

	r = NewReverb(sampleRate, 2.5, 2)
	bus = r.Bus(Send{Streamer: ones, Wet: 0.4}, Send{Streamer: ones, Wet: 0.3})
	out := render(bus, 64)
	if !near(out[0][0], 0.6+0.7) {
		t.Fatalf("dry share before the tail arrives is %v", out[0][0])
	}
}
