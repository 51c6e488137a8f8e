// Package levellog is a thin level filter over the standard library's
// log package. No example in the retrieval pack pulls in a structured
// logging library (the teacher's own cmd/nosshtradamus uses bare
// fmt.Println/Printf); this keeps the same stdlib-only posture while
// giving multitermd's -log-level flag somewhere to plug in.
package levellog

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level is one of the four severities multitermd's -log-level flag accepts.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// ParseLevel maps a -log-level flag value onto a Level, defaulting to
// Info for anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// Logger writes leveled messages through a *log.Logger, dropping any
// message below its configured Level.
type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a Logger at level that writes to os.Stderr with the
// standard library's default timestamp prefix.
func New(level Level) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) logf(level Level, prefix, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.out.Output(3, prefix+fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(Debug, "DEBUG ", format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(Info, "INFO  ", format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(Warn, "WARN  ", format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(Error, "ERROR ", format, args...) }
