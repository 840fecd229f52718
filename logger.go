// Package mylogger configures logrus loggers with a fixed, pipe-separated
// line format, optional time-rotated file sinks and an operator override of
// the level through the LOG_LEVEL environment variable.
//
// Key features:
//   - One formatter per logger, shared by the console sink and every file sink
//   - Lines of the form "<time> | <LEVEL> | <parent dir> | <file>:<line> | <message>"
//   - UTC or local timestamps, chosen once per logger
//   - Time-based file rotation with a bounded number of backups
//   - LOG_LEVEL always wins over the level given in code
//   - A lazily built process-wide Default logger
//
// A Logger embeds *logrus.Logger; log through its methods:
//
//	log, err := mylogger.New(mylogger.WithName("billing"))
//	if err != nil {
//		return err
//	}
//	if err := log.AddTimedRotatingFileSink(); err != nil { // ./billing.log
//		return err
//	}
//	log.Warn("disk low")
package mylogger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New creates a Logger writing to a console sink (os.Stderr unless
// WithOutput says otherwise). A single Formatter is built and installed on
// the console sink; file sinks added later share it.
//
// The level is taken from LOG_LEVEL when that variable is set and non-empty,
// whatever WithLevel or WithLevelName say; otherwise from those options, and
// DefaultLevel when neither is given.
//
// Parameters:
//   - opts: a variadic slice of Option functions (e.g., WithName, WithUTC,
//     WithLevel, WithLevelName, WithOutput). Without options the logger is
//     named DefaultName, renders UTC timestamps and logs at DefaultLevel.
//
// Returns:
//   - the configured Logger, with caller reporting enabled.
//   - an error wrapping ErrInvalidLevel if LOG_LEVEL or WithLevelName holds
//     an unknown level name, or an error if WithOutput was given nil.
//
// Example:
//
//	log, err := New(WithName("billing"), WithUTC(false), WithLevelName("warning"))
//	if err != nil {
//		return err
//	}
//	log.Warn("disk low")
func New(opts ...Option) (*Logger, error) {
	c := &config{
		name:   DefaultName,
		useUTC: true,
		level:  DefaultLevel,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.output == nil {
		return nil, errors.New("mylogger: nil output")
	}
	level, err := resolveLevel(c)
	if err != nil {
		return nil, err
	}

	f := NewFormatter(c.useUTC)
	base := logrus.New()
	base.SetOutput(c.output)
	base.SetFormatter(f)
	base.SetLevel(level)
	base.SetReportCaller(true)

	return &Logger{
		Logger:    base,
		name:      c.name,
		formatter: f,
	}, nil
}

// MustNew is like New but panics on error.
//
// Panics:
//   - if New returns an error, e.g. when LOG_LEVEL names an unknown level.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// WithName sets the logger name. Empty names are ignored.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithUTC renders timestamps in UTC if true, or in the local time zone if false.
func WithUTC(utc bool) Option {
	return func(c *config) {
		c.useUTC = utc
	}
}

// WithLevel sets the minimum severity.
func WithLevel(level logrus.Level) Option {
	return func(c *config) {
		c.level = level
		c.levelName = ""
	}
}

// WithLevelName sets the minimum severity by name, e.g. "warning" or "DEBUG".
// See ParseLevel for the accepted names.
func WithLevelName(name string) Option {
	return func(c *config) {
		c.levelName = name
	}
}

// WithOutput sets the console sink's destination.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// RecordFormatter returns the formatter shared by all of the logger's sinks.
func (l *Logger) RecordFormatter() *Formatter {
	return l.formatter
}

// UpdateWriter replaces the console sink's destination. The swap happens under
// the logrus logger's lock, so records being written concurrently go
// entirely to the old writer or entirely to the new one.
//
// Parameters:
//   - w: the new io.Writer for the console sink (e.g., os.Stdout).
//
// Returns:
//   - true if the writer was updated.
//   - false if w is nil; the current writer is kept.
//
// Example:
//
//	if !log.UpdateWriter(os.Stdout) {
//		// keep logging to the previous writer
//	}
func (l *Logger) UpdateWriter(w io.Writer) bool {
	if w == nil {
		return false
	}
	l.SetOutput(w)
	return true
}

// Close detaches every file sink from the logger and closes its file.
// The console sink is left untouched. It returns the first close error.
func (l *Logger) Close() error {
	l.mu.Lock()
	sinks := l.sinks
	l.sinks = nil
	l.mu.Unlock()
	if len(sinks) == 0 {
		return nil
	}

	kept := make(logrus.LevelHooks)
	for level, hooks := range l.ReplaceHooks(make(logrus.LevelHooks)) {
		for _, h := range hooks {
			if _, ok := h.(*fileSink); !ok {
				kept[level] = append(kept[level], h)
			}
		}
	}
	l.ReplaceHooks(kept)

	var first error
	for _, s := range sinks {
		if err := s.writer.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "mylogger: close %s", s.path)
		}
	}
	return first
}
