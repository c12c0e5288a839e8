package main

import (
	"math"
	"testing"
	"time"
)

func testGraph(t *testing.T) *Graph {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 5
	g, err := NewGraph(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGraphRejectsLowSampleRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 16000
	if _, err := NewGraph(cfg, nil); err == nil {
		t.Fatal("expected an error for a sample rate below the high click band")
	}
}

func TestGraphPlayAppliesParams(t *testing.T) {
	g := testGraph(t)

	g.Play(Fire{Voice: Click, Params: map[Param]float64{
		ParamCutoff: 1234,
		ParamQ:      6,
		ParamPan:    0.5,
	}})
	if g.clickFilter.Frequency() != 1234 || g.clickFilter.Q() != 6 {
		t.Fatalf("click filter at %v/%v", g.clickFilter.Frequency(), g.clickFilter.Q())
	}
	if g.clickPan.Pan.Pan != 0.5 {
		t.Fatalf("click pan %v", g.clickPan.Pan.Pan)
	}
	if !g.voices[Click].env.Active() {
		t.Fatal("click envelope not triggered")
	}

	g.Play(Fire{Voice: LowKick, Params: map[Param]float64{ParamDrive: 0.002, ParamLevel: 1.0 / 6}})
	if g.kickDrive.Amount() != 0.002 {
		t.Fatalf("kick drive %v", g.kickDrive.Amount())
	}
	if peak := g.voices[LowKick].env.Shape().Peak; !near(peak, 0.5) {
		t.Fatalf("soft kick peak %v", peak)
	}

	// the next full kick is back at the default peak
	g.Play(Fire{Voice: LowKick, Params: map[Param]float64{ParamLevel: 1}})
	if peak := g.voices[LowKick].env.Shape().Peak; peak != 3 {
		t.Fatalf("full kick peak %v", peak)
	}

	shape := shortToneShape
	g.Play(Fire{Voice: HighTone, Params: map[Param]float64{ParamFreq: 659.25}, Shape: &shape})
	if g.tone.Frequency() != 659.25 {
		t.Fatalf("tone at %v", g.tone.Frequency())
	}
	if g.voices[HighTone].env.Shape() != shortToneShape {
		t.Fatal("tone shape not applied")
	}

	g.Play(Fire{Voice: HiClick, Params: map[Param]float64{ParamCutoff: 9500}})
	g.Play(Fire{Voice: KickClick, Params: map[Param]float64{ParamCutoff: 4000}})
	if g.hiClickFilter.Frequency() != 9500 || g.kickClickFilter.Frequency() != 4000 {
		t.Fatal("cutoffs not applied")
	}
}

func TestGraphIgnoresBadFires(t *testing.T) {
	g := testGraph(t)

	g.Play(Fire{Voice: HiClick, Params: map[Param]float64{ParamPan: 1}})
	if !g.voices[HiClick].env.Active() {
		t.Fatal("unknown parameter stopped the trigger")
	}

	g.Play(Fire{Voice: BackgroundTexture})
	g.Play(Fire{Voice: VoiceID(42)})

	g.Play(Fire{Voice: Click, Params: map[Param]float64{ParamCutoff: math.Inf(1), ParamQ: math.NaN()}})
	buf := make([][2]float64, 2048)
	g.Stream(buf)
	for _, s := range buf {
		if math.IsNaN(s[0]) || math.IsNaN(s[1]) {
			t.Fatal("graph produced NaN after a bad parameter")
		}
	}
}

func TestGraphOutputBounded(t *testing.T) {
	g := testGraph(t)
	buf := make([][2]float64, 512)
	for i := 0; i < 200; i++ {
		if i%10 == 0 {
			for v := range g.voices {
				g.Play(Fire{Voice: v})
			}
		}
		if n, ok := g.Stream(buf); n != len(buf) || !ok {
			t.Fatalf("graph drained: %d %v", n, ok)
		}
		for _, s := range buf {
			if math.Abs(s[0]) > 1 || math.Abs(s[1]) > 1 {
				t.Fatalf("sample out of range: %v", s)
			}
		}
	}
}

func TestGraphBackground(t *testing.T) {
	g := testGraph(t)
	if lvl, _ := g.Background(); lvl != 0.02 {
		t.Fatalf("background starts at %v", lvl)
	}

	g.FadeBackground(0, 500*time.Millisecond)
	lvl, d := g.Background()
	if lvl != 0 || d != 500*time.Millisecond {
		t.Fatalf("background target %v over %v", lvl, d)
	}

	buf := make([][2]float64, g.SampleRate().N(600*time.Millisecond))
	g.Stream(buf)
	if g.bg.Level() != 0 {
		t.Fatalf("background level %v after the fade", g.bg.Level())
	}
}
