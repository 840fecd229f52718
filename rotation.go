package mylogger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation units. Weekly units are written "w0" (Monday) through "w6" (Sunday).
const (
	Seconds  TimeUnit = "s"
	Minutes  TimeUnit = "m"
	Hours    TimeUnit = "h"
	Days     TimeUnit = "d"
	Midnight TimeUnit = "midnight"
)

// ErrInvalidTimeUnit is returned for rotation units ParseTimeUnit does not know.
var ErrInvalidTimeUnit = errors.New("mylogger: invalid rotation time unit")

var timeUnitAliases = map[string]TimeUnit{
	"s": Seconds, "sec": Seconds, "second": Seconds, "seconds": Seconds,
	"m": Minutes, "min": Minutes, "minute": Minutes, "minutes": Minutes,
	"h": Hours, "hour": Hours, "hours": Hours,
	"d": Days, "day": Days, "days": Days,
	"midnight": Midnight,
}

// ParseTimeUnit normalizes a rotation unit token (case-insensitive), e.g.
// "days" to Days or "W6" to "w6".
func ParseTimeUnit(s string) (TimeUnit, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if u, ok := timeUnitAliases[token]; ok {
		return u, nil
	}
	if len(token) == 2 && token[0] == 'w' && token[1] >= '0' && token[1] <= '6' {
		return TimeUnit(token), nil
	}
	return "", errors.Wrapf(ErrInvalidTimeUnit, "%q", s)
}

// schedule computes rollover instants.
type schedule struct {
	unit     TimeUnit
	interval int
	utc      bool
}

// next returns the first rollover instant after t.
func (s schedule) next(t time.Time) time.Time {
	if s.utc {
		t = t.UTC()
	} else {
		t = t.Local()
	}
	n := time.Duration(s.interval)
	switch s.unit {
	case Seconds:
		return t.Add(n * time.Second)
	case Minutes:
		return t.Add(n * time.Minute)
	case Hours:
		return t.Add(n * time.Hour)
	case Days:
		return t.Add(n * 24 * time.Hour)
	case Midnight:
		return nextMidnight(t)
	}
	// Weekly: midnight starting the requested weekday, w0 being Monday.
	target := time.Weekday((int(s.unit[1]-'0') + 1) % 7)
	m := nextMidnight(t)
	for m.Weekday() != target {
		m = nextMidnight(m)
	}
	return m
}

func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// rotatingWriter writes to a lumberjack file and rotates it when the
// schedule says so. lumberjack renames the active file and prunes backups.
type rotatingWriter struct {
	mu         sync.Mutex
	file       *lumberjack.Logger
	enc        encoding.Encoding // nil for UTF-8.
	out        io.WriteCloser
	schedule   schedule
	now        func() time.Time
	rolloverAt time.Time
}

// newRotatingWriter opens the file right away so that unusable paths are
// reported to the caller instead of on the first record.
func newRotatingWriter(c *sinkConfig, utc bool) (*rotatingWriter, error) {
	if c.interval < 1 {
		return nil, errors.Errorf("mylogger: rotation interval must be positive, got %d", c.interval)
	}
	if c.backupCount < 0 {
		return nil, errors.Errorf("mylogger: backup count must not be negative, got %d", c.backupCount)
	}
	unit, err := ParseTimeUnit(string(c.timeUnit))
	if err != nil {
		return nil, err
	}
	enc, err := lookupEncoding(c.encoding)
	if err != nil {
		return nil, err
	}

	w := &rotatingWriter{
		file: &lumberjack.Logger{
			Filename:   c.filePath,
			MaxSize:    c.maxSize,
			MaxBackups: c.backupCount,
			LocalTime:  !utc,
		},
		enc:      enc,
		schedule: schedule{unit: unit, interval: c.interval, utc: utc},
		now:      c.now,
	}
	// An existing file continues the schedule it was started on.
	start := w.now()
	if info, err := os.Stat(c.filePath); err == nil {
		start = info.ModTime()
	}
	if _, err := w.file.Write(nil); err != nil {
		return nil, errors.Wrapf(err, "mylogger: open %s", c.filePath)
	}
	w.out = encodeWriter(w.file, w.enc)
	w.rolloverAt = w.schedule.next(start)
	return w, nil
}

// Write implements io.Writer.
func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if now := w.now(); !now.Before(w.rolloverAt) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
		w.rolloverAt = w.schedule.next(now)
	}
	return w.out.Write(p)
}

// rotate must be called with w.mu held.
func (w *rotatingWriter) rotate() error {
	if err := w.out.Close(); err != nil {
		return errors.Wrap(err, "mylogger: flush before rotation")
	}
	if err := w.file.Rotate(); err != nil {
		return errors.Wrapf(err, "mylogger: rotate %s", w.file.Filename)
	}
	w.out = encodeWriter(w.file, w.enc)
	return nil
}

// Close flushes pending encoded bytes and closes the file.
func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	flushErr := w.out.Close()
	if err := w.file.Close(); err != nil {
		return err
	}
	return flushErr
}
