package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDir is where the debug log is written, relative to the working directory
	DefaultDir = "logs"
	// FileName is the active log file name
	FileName = "gamesvc.log"
	// MaxFileSize triggers rotation of an existing log on open
	MaxFileSize = 10 * 1024 * 1024
)

// OpenFile returns the writer for the debug log file
// With debug off it returns io.Discard and a no-op closer; the terminal UI owns
// stdout/stderr, so there is no fallback to either
func OpenFile(dir string, debug bool) (io.WriteCloser, error) {
	if !debug {
		return nopCloser{io.Discard}, nil
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxFileSize {
		rotated := filepath.Join(dir, fmt.Sprintf("gamesvc-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
