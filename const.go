package mylogger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Defaults applied by New and AddTimedRotatingFileSink.
const (
	// DefaultName is the name of the Default logger and of loggers built without WithName
	DefaultName = "my-logger"

	// DefaultLevel is the minimum severity used when neither an option nor LOG_LEVEL sets one
	DefaultLevel = logrus.InfoLevel

	// DefaultInterval is the number of time units between file rotations
	DefaultInterval = 7

	// DefaultTimeUnit is the rotation unit of file sinks
	DefaultTimeUnit TimeUnit = "d"

	// DefaultBackupCount is the number of rotated files kept before the oldest is deleted
	DefaultBackupCount = 7

	// DefaultEncoding is the text encoding of file sinks
	DefaultEncoding = "utf8"
)

// EnvLevel names the environment variable that overrides the configured level.
const EnvLevel = "LOG_LEVEL"

// Line layout.
const (
	// TimeLayout renders as MM-DD-YY HH:MM:SS<offset> <zone>, e.g. "01-02-24 03:04:05+0000 UTC".
	TimeLayout = "01-02-06 15:04:05-0700 MST"

	// Separator sits between the fields of a rendered line.
	Separator = " | "

	// SeverityWidth is the width severity labels are left-justified to.
	SeverityWidth = 8

	// ParentDirKey is the entry field holding the derived parent directory name.
	// The key is reserved: a value set through WithField is replaced when the
	// entry is rendered and never printed among the extra fields.
	ParentDirKey = "parent_dir"
)

// noSizeLimit is the lumberjack size cap (in megabytes) used when a sink rotates on time only.
const noSizeLimit = 1 << 20

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide logger, building it on first use with
// DefaultName, UTC timestamps and DefaultLevel. LOG_LEVEL applies as for New.
//
// Panics if LOG_LEVEL holds an unknown level name.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = MustNew()
	})
	return defaultLogger
}
