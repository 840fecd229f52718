package mylogger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// unknownFile is rendered when an entry carries no caller frame.
const unknownFile = "(unknown file)"

// NewFormatter returns a Formatter rendering timestamps in UTC when useUTC is
// true, otherwise in the local time zone.
func NewFormatter(useUTC bool) *Formatter {
	return &Formatter{useUTC: useUTC}
}

// UTC reports whether timestamps are rendered in UTC.
func (f *Formatter) UTC() bool {
	return f.useUTC
}

// Format implements logrus.Formatter. The returned line ends with a newline.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	line := f.Render(entry)
	b := make([]byte, 0, len(line)+1)
	b = append(b, line...)
	return append(b, '\n'), nil
}

// Render returns the entry as
//
//	<timestamp> | <severity> | <parent dir> | <file>:<line> | <message>
//
// without a trailing newline. Extra entry fields follow the message as
// sorted key=value pairs. The parent directory is always derived from the
// caller frame and stored on the entry under ParentDirKey.
func (f *Formatter) Render(entry *logrus.Entry) string {
	parent := attachParentDir(entry)

	ts := entry.Time
	if f.useUTC {
		ts = ts.UTC()
	} else {
		ts = ts.Local()
	}

	file, line := unknownFile, 0
	if entry.Caller != nil {
		file, line = filepath.Base(entry.Caller.File), entry.Caller.Line
	}

	var b strings.Builder
	b.Grow(128)
	b.WriteString(ts.Format(TimeLayout))
	b.WriteString(Separator)
	fmt.Fprintf(&b, "%-*s", SeverityWidth, LevelName(entry.Level))
	b.WriteString(Separator)
	b.WriteString(parent)
	b.WriteString(Separator)
	b.WriteString(file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(line))
	b.WriteString(Separator)
	b.WriteString(entry.Message)
	writeFields(&b, entry.Data)
	return b.String()
}

// attachParentDir derives the name of the directory holding the entry's
// source file and records it on the entry under ParentDirKey, replacing any
// value a caller put there.
func attachParentDir(entry *logrus.Entry) string {
	parent := ""
	if entry.Caller != nil {
		parent = parentDir(entry.Caller.File)
	}
	if v, ok := entry.Data[ParentDirKey].(string); ok && v == parent {
		return parent
	}
	if entry.Data == nil {
		entry.Data = make(logrus.Fields, 1)
	}
	entry.Data[ParentDirKey] = parent
	return parent
}

// parentDir returns the last element of the directory part of path, or ""
// when the file sits at the root or has no directory component.
func parentDir(path string) string {
	dir := filepath.Dir(filepath.FromSlash(path))
	switch dir {
	case ".", string(filepath.Separator), filepath.VolumeName(dir) + string(filepath.Separator):
		return ""
	}
	return filepath.Base(dir)
}

func writeFields(b *strings.Builder, data logrus.Fields) {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != ParentDirKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fieldValue(data[k]))
	}
}

func fieldValue(v interface{}) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case error:
		s = x.Error()
	default:
		s = fmt.Sprint(x)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
