package mylogger

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestParseTimeUnit(t *testing.T) {
	tests := map[string]TimeUnit{
		"s":        Seconds,
		"seconds":  Seconds,
		"M":        Minutes,
		"hours":    Hours,
		"d":        Days,
		"Days":     Days,
		"MIDNIGHT": Midnight,
		"w0":       "w0",
		"W6":       "w6",
	}
	for in, want := range tests {
		got, err := ParseTimeUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "w7", "weekly", "x"} {
		_, err := ParseTimeUnit(in)
		assert.True(t, errors.Is(err, ErrInvalidTimeUnit), "%q: %v", in, err)
	}
}

func TestScheduleNext(t *testing.T) {
	// Wednesday.
	at := time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name     string
		unit     TimeUnit
		interval int
		want     time.Time
	}{
		{name: "seconds", unit: Seconds, interval: 30, want: at.Add(30 * time.Second)},
		{name: "minutes", unit: Minutes, interval: 5, want: at.Add(5 * time.Minute)},
		{name: "hours", unit: Hours, interval: 2, want: at.Add(2 * time.Hour)},
		{name: "days", unit: Days, interval: 7, want: at.Add(7 * 24 * time.Hour)},
		{name: "midnight", unit: Midnight, interval: 1, want: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
		{name: "monday", unit: "w0", interval: 1, want: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{name: "thursday", unit: "w3", interval: 1, want: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
		{name: "wednesday a week later", unit: "w2", interval: 1, want: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schedule{unit: tt.unit, interval: tt.interval, utc: true}
			assert.True(t, tt.want.Equal(s.next(at)), "got %s, want %s", s.next(at), tt.want)
		})
	}
}

func backups(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "app-*.log"))
	require.NoError(t, err)
	return matches
}

// TestRotationOnSchedule advances a fake clock past the rollover instant.
func TestRotationOnSchedule(t *testing.T) {
	unsetEnvLevel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	clock := &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	l, err := New(WithOutput(io.Discard))
	require.NoError(t, err)
	require.NoError(t, l.AddTimedRotatingFileSink(
		WithFilePath(path),
		WithInterval(1),
		WithTimeUnit(Hours),
		WithBackupCount(0),
		withClock(clock.Now),
	))
	defer l.Close()

	l.Info("first")
	clock.Advance(30 * time.Minute)
	l.Info("second")
	assert.Empty(t, backups(t, dir))

	clock.Advance(30 * time.Minute)
	l.Info("third")

	rotated := backups(t, dir)
	require.Len(t, rotated, 1)
	assert.Len(t, readLines(t, rotated[0]), 2)
	assert.Len(t, readLines(t, path), 1)
}

// TestRotationRetention keeps only the configured number of backups.
func TestRotationRetention(t *testing.T) {
	unsetEnvLevel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	clock := &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	l, err := New(WithOutput(io.Discard))
	require.NoError(t, err)
	require.NoError(t, l.AddTimedRotatingFileSink(
		WithFilePath(path),
		WithInterval(1),
		WithTimeUnit(Seconds),
		WithBackupCount(1),
		withClock(clock.Now),
	))
	defer l.Close()

	for i := 0; i < 4; i++ {
		l.Info("tick")
		clock.Advance(time.Second)
		// lumberjack names backups with millisecond precision.
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return len(backups(t, dir)) == 1
	}, 2*time.Second, 20*time.Millisecond)
}

// TestRotationFromExistingFile starts the schedule at the file's modification time.
func TestRotationFromExistingFile(t *testing.T) {
	unsetEnvLevel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	l, err := New(WithOutput(io.Discard))
	require.NoError(t, err)
	require.NoError(t, l.AddTimedRotatingFileSink(
		WithFilePath(path),
		WithInterval(1),
		WithTimeUnit(Days),
		WithBackupCount(0),
	))
	defer l.Close()

	l.Info("new line")

	rotated := backups(t, dir)
	require.Len(t, rotated, 1)
	assert.Equal(t, []string{"old line"}, readLines(t, rotated[0]))
	assert.Len(t, readLines(t, path), 1)
}

// TestRotationFromExistingEmptyFile uses the modification time of an empty file too.
func TestRotationFromExistingEmptyFile(t *testing.T) {
	unsetEnvLevel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	l, err := New(WithOutput(io.Discard))
	require.NoError(t, err)
	require.NoError(t, l.AddTimedRotatingFileSink(
		WithFilePath(path),
		WithInterval(1),
		WithTimeUnit(Days),
		WithBackupCount(0),
	))
	defer l.Close()

	l.Info("new line")

	rotated := backups(t, dir)
	require.Len(t, rotated, 1)
	assert.Empty(t, readLines(t, rotated[0]))
	assert.Len(t, readLines(t, path), 1)
}
