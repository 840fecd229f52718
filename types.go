package mylogger

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a named logrus logger configured with a shared Formatter, a console
// sink and any number of time-rotated file sinks. The embedded *logrus.Logger
// provides the logging methods (Info, Warnf, WithField, ...).
type Logger struct {
	*logrus.Logger

	name      string     // Logger identifier, also used for the default file name.
	formatter *Formatter // Shared by the console sink and every file sink.

	mu    sync.Mutex
	sinks []*fileSink // File sinks registered through AddTimedRotatingFileSink.
}

// Formatter renders a logrus entry into a single pipe-separated line.
// It is immutable after construction and safe to share between sinks.
type Formatter struct {
	useUTC bool
}

// Option configures a Logger during New.
type Option func(*config)

// SinkOption configures a file sink during AddTimedRotatingFileSink.
type SinkOption func(*sinkConfig)

// TimeUnit is the unit a file sink rotates on.
type TimeUnit string

// config collects the options given to New.
type config struct {
	name      string
	useUTC    bool
	level     logrus.Level
	levelName string // Takes precedence over level when non-empty.
	output    io.Writer
}

// sinkConfig collects the options given to AddTimedRotatingFileSink.
type sinkConfig struct {
	filePath    string
	interval    int
	timeUnit    TimeUnit
	backupCount int
	encoding    string
	maxSize     int
	level       *logrus.Level // nil inherits the logger level.
	levelName   string
	now         func() time.Time
}

// envConfig is the operator override read from the process environment.
type envConfig struct {
	Level string `env:"LOG_LEVEL"`
}
