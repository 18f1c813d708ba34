package observer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/logbridge/core"
)

// stepClock advances by step on every call.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func TestFileObserver_RequiresFilename(t *testing.T) {
	_, err := NewFileObserver(FileConfig{})
	assert.ErrorIs(t, err, ErrNoFilename)
}

func TestFileObserver_Write(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "logs", "app.log")

	o, err := NewFileObserver(FileConfig{Filename: filename})
	require.NoError(t, err)

	require.NoError(t, o.Observe(&core.Event{LogLevel: core.InfoLevel, LogNamespace: "app", LogFormat: "started"}))
	require.NoError(t, o.Emit(&core.Event{Message: []any{"legacy"}, System: "old"}))
	require.NoError(t, o.Close())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[info] app: started\n[-] old: legacy\n", string(data))
	assert.Equal(t, uint64(2), o.Stats().ProcessedTotal)
}

func TestFileObserver_Appends(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(filename, []byte("existing\n"), 0o644))

	o, err := NewFileObserver(FileConfig{Filename: filename})
	require.NoError(t, err)
	require.NoError(t, o.Observe(&core.Event{LogFormat: "new"}))
	require.NoError(t, o.Close())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "existing\n[-] new\n", string(data))
}

func TestFileObserver_SizeRotationAndBackups(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "test.log")
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second}

	o, err := NewFileObserver(FileConfig{
		Filename:   filename,
		MaxSize:    100, // Small size to trigger rotation
		MaxBackups: 2,   // Keep only 2 backups
		Clock:      clock.Now,
	})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.NoError(t, o.Observe(&core.Event{LogFormat: "This is a test message that will trigger rotation"}))
	}
	require.NoError(t, o.Close())

	backups := o.backups()
	assert.Len(t, backups, 2)
	for _, b := range backups {
		assert.True(t, strings.HasPrefix(filepath.Base(b), "test.log."))
	}

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(200))
}

func TestFileObserver_IntervalRotation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Minute}

	o, err := NewFileObserver(FileConfig{
		Filename:       filename,
		RotateInterval: 90 * time.Second,
		Clock:          clock.Now,
	})
	require.NoError(t, err)

	require.NoError(t, o.Observe(&core.Event{LogFormat: "first"}))  // 1m after open
	require.NoError(t, o.Observe(&core.Event{LogFormat: "second"})) // 2m after open: rotate
	require.NoError(t, o.Close())

	backups := o.backups()
	require.Len(t, backups, 1)

	old, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "[-] first\n", string(old))

	current, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[-] second\n", string(current))
}

func TestFileObserver_WriteAfterClose(t *testing.T) {
	o, err := NewFileObserver(FileConfig{Filename: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	require.NoError(t, o.Close())
	require.NoError(t, o.Close())

	err = o.Observe(&core.Event{LogFormat: "late"})
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, uint64(1), o.Stats().FailedTotal)
	assert.ErrorIs(t, o.Sync(), os.ErrClosed)
}

func TestFileObserver_Sync(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.log")
	o, err := NewFileObserver(FileConfig{Filename: filename})
	require.NoError(t, err)
	defer o.Close()

	require.NoError(t, o.Observe(&core.Event{LogFormat: "buffered"}))
	require.NoError(t, o.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[-] buffered\n", string(data))
	assert.Equal(t, "FileObserver("+filename+")", o.String())
}

func TestFileObserver_KeepsWritingWhenRotationFails(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start, step: time.Second}

	// The first rotation names its backup after the second clock reading;
	// a directory in the way makes that rename fail.
	blocked := filename + "." + start.Add(2*time.Second).Format(backupTimeFormat)
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "occupied"), 0o755))

	o, err := NewFileObserver(FileConfig{
		Filename: filename,
		MaxSize:  10,
		Clock:    clock.Now,
	})
	require.NoError(t, err)

	require.NoError(t, o.Observe(&core.Event{LogFormat: "first"}))
	assert.Error(t, o.Observe(&core.Event{LogFormat: "second"}), "a failed rotation is reported")
	require.NoError(t, o.Observe(&core.Event{LogFormat: "third"}), "the sink recovers after a failed rotation")
	require.NoError(t, o.Close())

	rotated, err := os.ReadFile(filename + "." + start.Add(4*time.Second).Format(backupTimeFormat))
	require.NoError(t, err)
	assert.Equal(t, "[-] first\n[-] second\n", string(rotated))

	current, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[-] third\n", string(current))

	snap := o.Stats()
	assert.Equal(t, uint64(2), snap.ProcessedTotal)
	assert.Equal(t, uint64(1), snap.FailedTotal)
}

func TestFileObserver_ReopensAfterLostFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")
	o, err := NewFileObserver(FileConfig{Filename: filename})
	require.NoError(t, err)
	defer o.Close()

	// Simulate a rotation that could not reopen the file.
	o.mu.Lock()
	require.NoError(t, o.closeFile())
	o.mu.Unlock()

	require.NoError(t, o.Observe(&core.Event{LogFormat: "back"}))
	require.NoError(t, o.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[-] back\n", string(data))
}
