// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Warnf writes a "WARN: " line to dst unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Level is a logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{"ERROR", "WARN", "INFO", "DEBUG"}

func (l Level) String() string {
	if l < LevelError || l > LevelDebug {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts error, warn, info or debug in any case.
func ParseLevel(s string) (Level, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	if u == "WARNING" {
		u = "WARN"
	}
	for i, n := range levelNames {
		if u == n {
			return Level(i), nil
		}
	}
	return LevelWarn, fmt.Errorf("unknown log level %q (want error|warn|info|debug)", s)
}

// Logger writes "LEVEL: msg" lines at or below its level. Safe for
// concurrent use.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewLogger returns a logger writing to w.
func NewLogger(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level}
}

// Level is the logger's verbosity.
func (l *Logger) Level() Level { return l.level }

// Enabled reports whether messages at lv are written.
func (l *Logger) Enabled(lv Level) bool { return l != nil && lv <= l.level }

func (l *Logger) logf(lv Level, format string, a ...any) {
	if !l.Enabled(lv) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, lv.String()+": "+format+"\n", a...)
}

func (l *Logger) Errorf(format string, a ...any) { l.logf(LevelError, format, a...) }
func (l *Logger) Warnf(format string, a ...any) {
	if !l.Enabled(LevelWarn) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	Warnf(l.w, false, format, a...)
}
func (l *Logger) Infof(format string, a ...any)  { l.logf(LevelInfo, format, a...) }
func (l *Logger) Debugf(format string, a ...any) { l.logf(LevelDebug, format, a...) }
