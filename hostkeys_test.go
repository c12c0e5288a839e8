package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"golang.org/x/term"
)

func TestReadKeys(t *testing.T) {
	var focus []bool
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var quits int
	readKeys(ctx, strings.NewReader("hxsq h"), func(fg bool) {
		focus = append(focus, fg)
	}, func() {
		quits++
	})

	if len(focus) != 2 || focus[0] || !focus[1] {
		t.Fatalf("unexpected focus changes %v", focus)
	}
	if quits != 1 {
		t.Fatalf("quit called %d times", quits)
	}
}

func TestReadKeysStopsAtEOF(t *testing.T) {
	var quits int
	readKeys(context.Background(), strings.NewReader("hs"), func(bool) {}, func() { quits++ })
	if quits != 0 {
		t.Fatal("end of input counted as quit")
	}
}

func TestWatchKeysWithoutRawMode(t *testing.T) {
	oldIsTerminal, oldMakeRaw := isTerminal, makeRaw
	defer func() { isTerminal, makeRaw = oldIsTerminal, oldMakeRaw }()

	isTerminal = func(int) bool { return true }
	makeRaw = func(int) (*term.State, error) { return nil, errors.New("not a tty") }

	var buf bytes.Buffer
	log := NewLogger(&buf, LevelInfo)
	err := watchKeys(context.Background(), os.Stdin, log, func(bool) {
		t.Error("focus changed without raw mode")
	}, func() {
		t.Error("quit without raw mode")
	})
	if err != nil {
		t.Fatalf("raw mode failure stopped playback: %v", err)
	}
	if !strings.Contains(buf.String(), "WARN: raw terminal unavailable") {
		t.Fatalf("failure not logged: %q", buf.String())
	}
}
