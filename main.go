package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	backend := flag.String("backend", "speaker", "audio backend: speaker or oto")
	render := flag.String("render", "", "render to this wav file instead of playing")
	duration := flag.Duration("duration", 30*time.Second, "length of an offline render")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	level := flag.String("log-level", "info", "debug, info, warn, error or none")
	dry := flag.Bool("dry", false, "skip the master equalizer and compressor")
	keys := flag.Bool("keys", true, "read h/s/q from the terminal to hide, show and quit")
	flag.Parse()

	log := NewLogger(os.Stderr, LevelFromString(*level))

	cfg := DefaultConfig()
	cfg.Seed = *seed
	cfg.MasterFX = !*dry

	if err := run(cfg, log, *backend, *render, *duration, *keys); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(cfg Config, log *Logger, backend, render string, d time.Duration, keys bool) error {
	e, err := NewEngine(cfg, log)
	if err != nil {
		return err
	}

	if render != "" {
		return renderFile(e, render, d)
	}

	out, err := NewOutput(backend, cfg.SampleRate)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return e.Run(ctx, out)
	})
	if keys {
		eg.Go(func() error {
			return watchKeys(ctx, os.Stdin, log, e.SetForeground, cancel)
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func renderFile(e *Engine, path string, d time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := e.Render(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
