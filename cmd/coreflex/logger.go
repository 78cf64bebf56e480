package main

import (
	"fmt"
	"io"
)

// Logger prints verbose progress messages to stderr.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger creates a new logger writing to out.
func NewLogger(enabled bool, out io.Writer) *Logger {
	return &Logger{
		enabled: enabled,
		out:     out,
	}
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.enabled {
		fmt.Fprintf(l.out, "[coreflex] "+format+"\n", args...)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
