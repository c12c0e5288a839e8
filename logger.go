package main

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelNone:  "NONE",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "UNKNOWN"
}

// LevelFromString maps a -log-level flag value to a Level. Unknown names
// fall back to info.
func LevelFromString(s string) Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return LevelWarn
	}
	for l, name := range levelNames {
		if name == s {
			return l
		}
	}
	return LevelInfo
}

// Logger writes "LEVEL: message" lines for messages at or above its level.
type Logger struct {
	out   *log.Logger
	level Level
}

func NewLogger(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   log.New(w, "", log.Ltime|log.Lmicroseconds),
		level: level,
	}
}

func discardLogger() *Logger {
	return NewLogger(io.Discard, LevelNone)
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.level && level < LevelNone
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	if l.Enabled(level) {
		l.out.Printf(level.String()+": "+format, v...)
	}
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(LevelError, format, v...) }

func (l *Logger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

func (l *Logger) Writer() io.Writer {
	return l.out.Writer()
}

// crlfWriter rewrites bare newlines while the terminal is in raw mode.
type crlfWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
