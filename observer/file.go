package observer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

// ErrNoFilename is returned by NewFileObserver when FileConfig.Filename is empty.
var ErrNoFilename = errors.New("observer: filename is required")

// backupTimeFormat names rotated files; it sorts chronologically.
const backupTimeFormat = "2006-01-02T15-04-05.000000000"

// FileConfig holds configuration for a file observer
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// RotateInterval rotates the file this long after it was opened (0 = never)
	RotateInterval time.Duration
	// MaxBackups is the maximum number of rotated files to retain (0 = keep all)
	MaxBackups int
	// Clock drives interval rotation and backup names (default: core.SystemClock)
	Clock core.Clock
}

func applyFileDefaults(cfg *FileConfig) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Clock == nil {
		cfg.Clock = core.SystemClock
	}
}

// FileObserver writes formatted events, in either dialect, to a file and
// rotates it by size or age. Output is buffered; call Sync or Close to
// flush it. A failed rotation keeps writing to the current file and is
// retried after another MaxSize bytes or RotateInterval.
type FileObserver struct {
	cfg      FileConfig
	mu       sync.Mutex
	closed   bool
	file     *os.File
	buf      *bufio.Writer
	size     int64
	openedAt time.Time
	stats    *Stats
}

var (
	_ core.Observer       = (*FileObserver)(nil)
	_ core.LegacyObserver = (*FileObserver)(nil)
)

// NewFileObserver opens (or creates) cfg.Filename for appending
func NewFileObserver(cfg FileConfig) (*FileObserver, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	applyFileDefaults(&cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, err
	}

	o := &FileObserver{cfg: cfg, stats: NewStats()}
	if err := o.open(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *FileObserver) open() error {
	file, err := os.OpenFile(o.cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		return multierr.Append(err, file.Close())
	}

	o.file = file
	o.size = info.Size()
	o.openedAt = o.cfg.Clock()
	if o.buf == nil {
		o.buf = bufio.NewWriterSize(file, 4096)
	} else {
		o.buf.Reset(file)
	}
	return nil
}

// Observe writes a new-style event
func (o *FileObserver) Observe(event *core.Event) error {
	return o.write(event)
}

// Emit writes a legacy event
func (o *FileObserver) Emit(event *core.Event) error {
	return o.write(event)
}

func (o *FileObserver) write(event *core.Event) error {
	data, err := o.cfg.Formatter.Format(event)
	if err == nil {
		err = o.writeData(data)
	}
	o.stats.Record(event, err)
	return err
}

func (o *FileObserver) writeData(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return os.ErrClosed
	}
	if o.file == nil {
		if err := o.open(); err != nil {
			return err
		}
	}

	rotateErr := o.rotateIfNeeded()
	if o.file == nil {
		return rotateErr
	}

	n, err := o.buf.Write(data)
	o.size += int64(n)
	return multierr.Append(rotateErr, err)
}

func (o *FileObserver) rotateIfNeeded() error {
	switch {
	case o.cfg.MaxSize > 0 && o.size >= o.cfg.MaxSize:
	case o.cfg.RotateInterval > 0 && o.cfg.Clock().Sub(o.openedAt) >= o.cfg.RotateInterval:
	default:
		return nil
	}

	err := o.rotate()
	if err != nil && o.file != nil {
		o.size = 0
	}
	return err
}

// rotate closes the current file, renames it with a timestamp suffix and
// opens a fresh one. The file is reopened even when closing or renaming
// fails, so the next write has somewhere to go.
func (o *FileObserver) rotate() error {
	closeErr := o.closeFile()

	backup := o.cfg.Filename + "." + o.cfg.Clock().Format(backupTimeFormat)
	renameErr := os.Rename(o.cfg.Filename, backup)
	if renameErr == nil && o.cfg.MaxBackups > 0 {
		o.removeOldBackups()
	}

	openErr := o.open()
	if renameErr != nil {
		renameErr = fmt.Errorf("rotate %s: %w", o.cfg.Filename, renameErr)
	}
	return multierr.Combine(closeErr, renameErr, openErr)
}

// backups returns the rotated files, oldest first.
func (o *FileObserver) backups() []string {
	matches, err := filepath.Glob(o.cfg.Filename + ".*")
	if err != nil {
		return nil
	}
	prefix := filepath.Base(o.cfg.Filename) + "."
	backups := matches[:0]
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), prefix) {
			backups = append(backups, m)
		}
	}
	slices.Sort(backups)
	return backups
}

func (o *FileObserver) removeOldBackups() {
	backups := o.backups()
	if len(backups) <= o.cfg.MaxBackups {
		return
	}
	for _, name := range backups[:len(backups)-o.cfg.MaxBackups] {
		if err := os.Remove(name); err != nil {
			return
		}
	}
}

// closeFile flushes, syncs and closes the current file.
func (o *FileObserver) closeFile() error {
	flushErr := o.buf.Flush()
	syncErr := o.file.Sync()
	closeErr := o.file.Close()
	o.file = nil
	return multierr.Combine(flushErr, syncErr, closeErr)
}

// Sync flushes buffered output to the file
func (o *FileObserver) Sync() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.file == nil {
		return os.ErrClosed
	}
	if err := o.buf.Flush(); err != nil {
		return err
	}
	return o.file.Sync()
}

// Close flushes and closes the file. Later writes fail with os.ErrClosed.
func (o *FileObserver) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true
	if o.file == nil {
		return nil
	}
	return o.closeFile()
}

// Stats returns a snapshot of the current statistics
func (o *FileObserver) Stats() Snapshot {
	return o.stats.GetSnapshot()
}

// String returns "FileObserver(<filename>)"
func (o *FileObserver) String() string {
	return "FileObserver(" + o.cfg.Filename + ")"
}
