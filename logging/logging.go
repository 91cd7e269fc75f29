// Package logging defines the logger interface used throughout forge.
package logging

import (
	"fmt"
	"io"
)

// Logger defines behavior required by the forge client.
type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...interface{})

	Info(msg string)
	Infof(fmt string, v ...interface{})

	Warn(msg string)
	Warnf(fmt string, v ...interface{})

	Error(msg string)
	Errorf(fmt string, v ...interface{})

	Writer() io.Writer

	IsVerbose() bool
}

// Tip logs a tip.
func Tip(l Logger, format string, v ...interface{}) {
	l.Infof("Tip: "+format, v...)
}

// PrefixWriter will prefix writes.
type PrefixWriter struct {
	out    io.Writer
	prefix string
}

// NewPrefixWriter writes by w will be prefixed.
func NewPrefixWriter(w io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		out:    w,
		prefix: fmt.Sprintf("[%s] ", prefix),
	}
}

// Write writes bytes with the configured prefix.
func (w *PrefixWriter) Write(bytes []byte) (int, error) {
	_, err := fmt.Fprint(w.out, w.prefix+string(bytes))
	return len(bytes), err
}
