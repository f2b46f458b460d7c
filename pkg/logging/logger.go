// Package logging provides a process-wide rotating logger used by the
// selector engine to record degraded-path warnings (embedding failures,
// cache I/O errors, missing stat data) without interrupting a select call.
package logging

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps the standard library logger with leveled convenience
// methods and file rotation.
type Logger struct {
	std *log.Logger
}

var (
	global     *Logger
	globalOnce sync.Once
)

// Get returns the process-wide Logger, initializing it on first use.
// dir is the cache root under which smartctx.log is rotated; callers pass
// the same directory used for the embedding cache so all on-disk state
// for a workspace lives under one root.
func Get(dir string) *Logger {
	globalOnce.Do(func() {
		if dir == "" {
			dir = filepath.Join(".", ".smartctx")
		}
		global = &Logger{
			std: log.New(&lumberjack.Logger{
				Filename:   filepath.Join(dir, "smartctx.log"),
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     7, // days
				Compress:   true,
			}, "", log.LstdFlags),
		}
	})
	return global
}

// newForTest builds an unshared Logger writing to stderr, bypassing the
// singleton so tests don't race on global state.
func newForTest() *Logger {
	return &Logger{std: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) Warnf(format string, args ...any) {
	l.std.Printf("[warn] "+format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.std.Printf("[info] "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.std.Printf("[debug] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.std.Printf("[error] "+format, args...)
}
