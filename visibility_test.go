package main

import (
	"testing"
	"time"
)

type fadeCall struct {
	target float64
	d      time.Duration
}

type fakeFader struct {
	calls []fadeCall
}

func (f *fakeFader) FadeBackground(target float64, d time.Duration) {
	f.calls = append(f.calls, fadeCall{target, d})
}

func TestVisibilityTransitions(t *testing.T) {
	f := &fakeFader{}
	v := NewVisibility(f, 0.02, nil)

	v.Set(true)
	if len(f.calls) != 0 {
		t.Fatal("foreground while foregrounded faded")
	}

	v.Set(false)
	v.Set(false)
	if len(f.calls) != 1 || f.calls[0] != (fadeCall{0, 500 * time.Millisecond}) {
		t.Fatalf("hide produced %v", f.calls)
	}
	if v.Foreground() {
		t.Fatal("still foregrounded")
	}

	v.Set(true)
	if len(f.calls) != 2 || f.calls[1] != (fadeCall{0.02, time.Second}) {
		t.Fatalf("show produced %v", f.calls)
	}
}

func TestEngineVisibility(t *testing.T) {
	e := testEngine(t, 1)

	e.SetForeground(false)
	if lvl, d := e.Graph().Background(); lvl != 0 || d != 500*time.Millisecond {
		t.Fatalf("hidden background target %v over %v", lvl, d)
	}

	e.SetForeground(true)
	if lvl, d := e.Graph().Background(); lvl != 0.02 || d != time.Second {
		t.Fatalf("shown background target %v over %v", lvl, d)
	}
}
