package mylogger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// WithFilePath sets the file a sink writes to. Defaults to "./<logger name>.log".
func WithFilePath(path string) SinkOption {
	return func(c *sinkConfig) {
		c.filePath = path
	}
}

// WithInterval sets how many time units pass between rotations.
func WithInterval(n int) SinkOption {
	return func(c *sinkConfig) {
		c.interval = n
	}
}

// WithTimeUnit sets the rotation unit, e.g. "d", "days", "h", "midnight" or "w0".
func WithTimeUnit(unit TimeUnit) SinkOption {
	return func(c *sinkConfig) {
		c.timeUnit = unit
	}
}

// WithBackupCount sets how many rotated files are kept. Zero keeps all of them.
func WithBackupCount(n int) SinkOption {
	return func(c *sinkConfig) {
		c.backupCount = n
	}
}

// WithEncoding sets the text encoding of the file, e.g. "utf8" or "utf-16le".
func WithEncoding(name string) SinkOption {
	return func(c *sinkConfig) {
		c.encoding = name
	}
}

// WithSinkLevel sets the minimum severity the sink writes. Without it the
// sink uses the logger's level at the time it is added.
func WithSinkLevel(level logrus.Level) SinkOption {
	return func(c *sinkConfig) {
		c.level = &level
		c.levelName = ""
	}
}

// WithSinkLevelName is WithSinkLevel with the level given by name.
func WithSinkLevelName(name string) SinkOption {
	return func(c *sinkConfig) {
		c.level = nil
		c.levelName = name
	}
}

// WithMaxSize additionally rotates the file once it grows past megabytes.
func WithMaxSize(megabytes int) SinkOption {
	return func(c *sinkConfig) {
		if megabytes > 0 {
			c.maxSize = megabytes
		}
	}
}

// withClock replaces the time source used for rotation decisions.
func withClock(now func() time.Time) SinkOption {
	return func(c *sinkConfig) {
		c.now = now
	}
}

// fileSink is a logrus hook writing formatted entries at or above its own
// level to a rotating file.
type fileSink struct {
	path      string
	level     logrus.Level
	formatter *Formatter
	writer    *rotatingWriter
}

// Levels implements logrus.Hook.
func (s *fileSink) Levels() []logrus.Level {
	if int(s.level) >= len(logrus.AllLevels) {
		return logrus.AllLevels
	}
	return logrus.AllLevels[:s.level+1]
}

// Fire implements logrus.Hook.
func (s *fileSink) Fire(entry *logrus.Entry) error {
	line, err := s.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = s.writer.Write(line)
	return err
}

// AddTimedRotatingFileSink registers a file sink that rotates every interval
// time units and keeps at most the configured number of backups. The sink
// shares the logger's formatter and filters on its own level. The file is
// opened before returning; an unusable path fails the call.
//
// Each call adds a new sink, even for a path already registered.
//
// Parameters:
//   - opts: a variadic slice of SinkOption functions (e.g., WithFilePath,
//     WithInterval, WithTimeUnit, WithBackupCount, WithEncoding,
//     WithSinkLevel, WithMaxSize). Without options the sink writes
//     "./<logger name>.log" in UTF-8, rotates every 7 days, keeps 7 backups
//     and uses the logger's current level.
//
// Returns:
//   - nil once the sink is attached to the logger.
//   - an error wrapping ErrInvalidTimeUnit, ErrInvalidEncoding or
//     ErrInvalidLevel for an unknown option value, or an error if the
//     interval is not positive, the backup count is negative or the file
//     cannot be opened. No sink is attached in that case.
//
// Example:
//
//	err := log.AddTimedRotatingFileSink(
//		WithFilePath("/var/log/billing/errors.log"),
//		WithTimeUnit(Midnight),
//		WithInterval(1),
//		WithSinkLevel(logrus.ErrorLevel),
//	)
//	if err != nil {
//		return err
//	}
func (l *Logger) AddTimedRotatingFileSink(opts ...SinkOption) error {
	c := &sinkConfig{
		filePath:    "./" + l.name + ".log",
		interval:    DefaultInterval,
		timeUnit:    DefaultTimeUnit,
		backupCount: DefaultBackupCount,
		encoding:    DefaultEncoding,
		maxSize:     noSizeLimit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	level := l.GetLevel()
	switch {
	case c.level != nil:
		level = *c.level
	case c.levelName != "":
		var err error
		if level, err = ParseLevel(c.levelName); err != nil {
			return err
		}
	}

	w, err := newRotatingWriter(c, l.formatter.UTC())
	if err != nil {
		return err
	}
	sink := &fileSink{
		path:      c.filePath,
		level:     level,
		formatter: l.formatter,
		writer:    w,
	}

	l.mu.Lock()
	l.sinks = append(l.sinks, sink)
	l.mu.Unlock()
	l.AddHook(sink)
	return nil
}

// Sinks returns the file paths of the registered file sinks in the order
// they were added.
func (l *Logger) Sinks() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	paths := make([]string, len(l.sinks))
	for i, s := range l.sinks {
		paths[i] = s.path
	}
	return paths
}
