// Package logging implements the forge logger on top of apex/log, with
// togglable timestamps, verbosity and quiet mode.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/buildpacks/forge/internal/style"
)

const (
	errorLevelText = "ERROR: "
	warnLevelText  = "Warning: "
	lineFeed       = '\n'

	// log level to use when quiet is true
	quietLevel = log.WarnLevel
	// log level to use when debug is true
	verboseLevel = log.DebugLevel
	// log level to use when neither quiet nor debug are true
	normalLevel = log.InfoLevel

	timeFmt = "2006/01/02 15:04:05.000000"
)

// LogWithWriters is a logger used with the forge CLI, allowing users to print
// timestamps, toggle color, etc.
type LogWithWriters struct {
	sync.Mutex
	log.Logger
	wantTime bool
	clock    func() time.Time
	out      io.Writer
	errOut   io.Writer
}

type LoggerOption func(lw *LogWithWriters)

// NewLogWithWriters creates a logger to be used with the forge CLI.
func NewLogWithWriters(stdout, stderr io.Writer, opts ...LoggerOption) *LogWithWriters {
	lw := &LogWithWriters{
		Logger: log.Logger{
			Level: log.InfoLevel,
		},
		wantTime: false,
		clock:    time.Now,
		out:      stdout,
		errOut:   stderr,
	}
	lw.Logger.Handler = lw

	for _, opt := range opts {
		opt(lw)
	}

	return lw
}

// WithClock is an option used to initialize a LogWithWriters with a given
// clock function.
func WithClock(clock func() time.Time) LoggerOption {
	return func(lw *LogWithWriters) {
		lw.clock = clock
	}
}

// WithVerbose is an option used to initialize a LogWithWriters with verbose
// logging.
func WithVerbose() LoggerOption {
	return func(lw *LogWithWriters) {
		lw.Level = log.DebugLevel
	}
}

// HandleLog handles log events, printing entries appropriately.
func (lw *LogWithWriters) HandleLog(e *log.Entry) error {
	lw.Lock()
	defer lw.Unlock()

	writer := lw.writerForLevel(e.Level)

	prefix := formatLevel(e.Level)
	if lw.wantTime {
		ts := lw.clock().Format(timeFmt)
		_, err := fmt.Fprint(writer, appendMissingLineFeed(fmt.Sprintf("%s %s%s", ts, prefix, e.Message)))
		return err
	}

	_, err := fmt.Fprint(writer, appendMissingLineFeed(fmt.Sprintf("%s%s", prefix, e.Message)))
	return err
}

// Writer returns the base writer for this logger.
func (lw *LogWithWriters) Writer() io.Writer {
	return lw.out
}

// WantTime turns timestamps in output on or off.
func (lw *LogWithWriters) WantTime(f bool) {
	lw.wantTime = f
}

// WantQuiet reduces the amount of output if set.
func (lw *LogWithWriters) WantQuiet(f bool) {
	if f {
		lw.Level = quietLevel
	} else {
		lw.Level = normalLevel
	}
}

// WantVerbose increases the amount of output if set.
func (lw *LogWithWriters) WantVerbose(f bool) {
	if f {
		lw.Level = verboseLevel
	} else {
		lw.Level = normalLevel
	}
}

// IsVerbose returns whether verbose logging is on.
func (lw *LogWithWriters) IsVerbose() bool {
	return lw.Level == log.DebugLevel
}

func (lw *LogWithWriters) writerForLevel(level log.Level) io.Writer {
	if level == log.ErrorLevel {
		return lw.errOut
	}
	return lw.out
}

func formatLevel(ll log.Level) string {
	switch ll {
	case log.ErrorLevel:
		return style.Error(errorLevelText)
	case log.WarnLevel:
		return style.Warn(warnLevelText)
	}

	return ""
}

// Preserve behavior of other loggers
func appendMissingLineFeed(msg string) string {
	buff := []byte(msg)
	if len(buff) == 0 || buff[len(buff)-1] != lineFeed {
		buff = append(buff, lineFeed)
	}
	return string(buff)
}
