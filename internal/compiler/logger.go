package compiler

import (
	"fmt"
	"io"
	"os"
)

// Logger traces construction decisions while a pattern is compiled. It is
// silent unless enabled, so compilation pays only a branch per trace site.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger returns a logger writing to stderr when enabled.
func NewLogger(enabled bool) *Logger {
	return &Logger{enabled: enabled, out: os.Stderr}
}

// SetOutput redirects trace output, typically into a test buffer.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Enabled reports whether tracing is on.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Log prints one formatted trace line if tracing is on.
func (l *Logger) Log(format string, args ...interface{}) {
	if !l.enabled {
		return
	}
	fmt.Fprintf(l.out, "[vregex] "+format+"\n", args...)
}

// Section prints a header separating construction phases.
func (l *Logger) Section(name string) {
	if !l.enabled {
		return
	}
	fmt.Fprintf(l.out, "\n[vregex] === %s ===\n", name)
}
