package main

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

const ctrlC = 3

var (
	isTerminal = term.IsTerminal
	makeRaw    = term.MakeRaw
)

// watchKeys reads single key presses from a terminal and maps them onto
// the focus hook: h hides, s shows, q or ctrl-c quits. It returns nil
// without reading when in is not a terminal or cannot be put in raw mode,
// so playback carries on without keys.
func watchKeys(ctx context.Context, in *os.File, log *Logger, onFocus func(bool), quit func()) error {
	fd := int(in.Fd())
	if !isTerminal(fd) {
		log.Debugf("stdin is not a terminal, focus keys disabled")
		return nil
	}

	old, err := makeRaw(fd)
	if err != nil {
		log.Warnf("raw terminal unavailable, focus keys disabled: %s", err)
		return nil
	}
	defer term.Restore(fd, old)

	prev := log.Writer()
	log.SetOutput(&crlfWriter{w: prev})
	defer log.SetOutput(prev)

	log.Infof("keys: h hide, s show, q quit")
	readKeys(ctx, in, onFocus, quit)
	return nil
}

func readKeys(ctx context.Context, in io.Reader, onFocus func(bool), quit func()) {
	// A blocked Read cannot be interrupted, so on ctx.Done this goroutine
	// stays parked in Read until the process exits.
	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			if _, err := in.Read(buf); err != nil {
				return
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case k, ok := <-keys:
			if !ok {
				return
			}
			switch k {
			case 'h':
				onFocus(false)
			case 's':
				onFocus(true)
			case 'q', ctrlC:
				quit()
				return
			}
		}
	}
}
