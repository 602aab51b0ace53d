// Package logger builds the process logger. Log output goes to a rotating
// file, never to stdout: stdout is owned by the rendered terminal frame.
package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// New returns a structured logger at the given level writing to path.
// If the log file cannot be opened the logger falls back to stderr.
func New(level, path string, maxSizeMB int64, maxBackups int) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	w := &rotatingWriter{
		filename:   path,
		maxSize:    maxSizeMB * 1024 * 1024,
		maxBackups: maxBackups,
	}
	if err := w.open(); err != nil {
		return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// rotatingWriter is an io.Writer that rotates the file by size:
// file -> file.1 -> file.2 ... up to maxBackups.
type rotatingWriter struct {
	filename   string
	maxSize    int64
	maxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

func (w *rotatingWriter) open() error {
	info, err := os.Stat(w.filename)
	if os.IsNotExist(err) {
		return w.create()
	}
	if err != nil {
		return err
	}
	f, err := os.OpenFile(w.filename, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w.file = f
	w.size = info.Size()
	return nil
}

func (w *rotatingWriter) create() error {
	f, err := os.OpenFile(w.filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	w.file = f
	w.size = 0
	return nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *rotatingWriter) rotate() error {
	if w.file != nil {
		w.file.Close()
	}
	for i := w.maxBackups - 1; i >= 1; i-- {
		old := fmt.Sprintf("%s.%d", w.filename, i)
		if _, err := os.Stat(old); os.IsNotExist(err) {
			continue
		}
		os.Rename(old, fmt.Sprintf("%s.%d", w.filename, i+1))
	}
	if _, err := os.Stat(w.filename); err == nil {
		os.Rename(w.filename, w.filename+".1")
	}
	return w.create()
}
