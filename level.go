package mylogger

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidLevel is returned for level names that match no severity.
	ErrInvalidLevel = errors.New("mylogger: invalid level")
)

// levelNames are the rendered labels, indexed by logrus.Level.
var levelNames = [...]string{
	logrus.PanicLevel: "PANIC",
	logrus.FatalLevel: "CRITICAL",
	logrus.ErrorLevel: "ERROR",
	logrus.WarnLevel:  "WARNING",
	logrus.InfoLevel:  "INFO",
	logrus.DebugLevel: "DEBUG",
	logrus.TraceLevel: "TRACE",
}

// ParseLevel parses a level name (case-insensitive). Besides the logrus names
// it accepts "critical" and the numeric values 10, 20, 30, 40 and 50 for
// DEBUG, INFO, WARNING, ERROR and CRITICAL.
//
// Parameters:
//   - s: the level name, e.g. "warning", "WARN", "critical" or "30".
//     Surrounding spaces are ignored.
//
// Returns:
//   - the matching logrus.Level ("critical" maps to logrus.FatalLevel).
//   - an error wrapping ErrInvalidLevel if s names no known level.
//
// Example:
//
//	level, err := ParseLevel("warning")
//	if err != nil {
//		return err
//	}
//	log.SetLevel(level) // logrus.WarnLevel
func ParseLevel(s string) (logrus.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "critical", "50":
		return logrus.FatalLevel, nil
	case "40":
		return logrus.ErrorLevel, nil
	case "30":
		return logrus.WarnLevel, nil
	case "20":
		return logrus.InfoLevel, nil
	case "10":
		return logrus.DebugLevel, nil
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLevel, "%q", s)
	}
	return lvl, nil
}

// LevelName returns the label a level is rendered with, e.g. "WARNING".
func LevelName(level logrus.Level) string {
	if int(level) < len(levelNames) {
		return levelNames[level]
	}
	return strings.ToUpper(level.String())
}
