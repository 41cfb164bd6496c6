package pointburst

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// DefaultLogger writes "[prefix] LEVEL frame=N: message" lines. The frame
// stamp lets a log file be lined up against the simulation; it is omitted
// until a frame source is attached.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	frame  func() uint64
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr)
}

// NewWriterLogger sends debug/info lines to out and warnings/errors to errOut.
// The terminal viewer points both at a file so the screen stays clean.
func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

// SetFrameSource stamps every following line with the value of frame.
func (l *DefaultLogger) SetFrameSource(frame func() uint64) {
	l.mu.Lock()
	l.frame = frame
	l.mu.Unlock()
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) format(level logLevel, frame func() uint64, format string, args ...any) string {
	head := levelNames[level]
	if l.prefix != "" {
		head = "[" + l.prefix + "] " + head
	}
	if frame != nil {
		head += fmt.Sprintf(" frame=%d", frame())
	}
	return head + ": " + fmt.Sprintf(format, args...)
}

func (l *DefaultLogger) emit(level logLevel, format string, args ...any) {
	l.mu.Lock()
	debug, frame := l.debug, l.frame
	l.mu.Unlock()

	switch level {
	case levelDebug:
		if debug {
			l.out.Print(l.format(level, frame, format, args...))
		}
	case levelInfo:
		l.out.Print(l.format(level, frame, format, args...))
	default:
		l.err.Print(l.format(level, frame, format, args...))
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.emit(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.emit(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.emit(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.emit(levelError, format, args...) }

// LoggingModule installs a frame-stamped logger as a resource. Output
// defaults to stdout/stderr.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	var logger *DefaultLogger
	if m.Output != nil {
		logger = NewWriterLogger(m.Prefix, m.Debug, m.Output, m.Output)
	} else {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	logger.SetFrameSource(app.Frame)
	app.addResources(logger)
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the installed Logger resource, or a no-op logger. Never nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
