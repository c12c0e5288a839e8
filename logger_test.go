package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelWarn)

	l.Debugf("debug")
	l.Infof("info")
	if buf.Len() != 0 {
		t.Fatalf("messages below warn were written: %q", buf.String())
	}

	l.Warnf("careful %d", 1)
	l.Errorf("broken")
	out := buf.String()
	if !strings.Contains(out, "WARN: careful 1") || !strings.Contains(out, "ERROR: broken") {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	NewLogger(&buf, LevelNone).Errorf("silent")
	if buf.Len() != 0 {
		t.Fatal("none level wrote a message")
	}
}

func TestLevelFromString(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warn":    LevelWarn,
		"Warning": LevelWarn,
		" error ": LevelError,
		"none":    LevelNone,
		"loud":    LevelInfo,
	}
	for in, want := range cases {
		if got := LevelFromString(in); got != want {
			t.Fatalf("%q: got %s, want %s", in, got, want)
		}
	}
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &crlfWriter{w: &buf}
	n, err := w.Write([]byte("a\nb\n"))
	if err != nil || n != 4 {
		t.Fatalf("write returned %d, %v", n, err)
	}
	if buf.String() != "a\r\nb\r\n" {
		t.Fatalf("got %q", buf.String())
	}
}
