package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// fileWriter tees log output to stderr and a dated file.
type fileWriter struct {
	file *os.File
	tee  io.Writer
}

// NewFileWriter opens (or creates) a dated log file under dir and
// returns a writer that duplicates output to stderr. Pass the result to
// NewWithWriter; Close releases the file.
func NewFileWriter(dir, name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", name, time.Now().UTC().Format("2006-01-02"))
	path := filepath.Join(dir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &fileWriter{
		file: file,
		tee:  io.MultiWriter(os.Stderr, file),
	}, nil
}

func (w *fileWriter) Write(p []byte) (int, error) {
	return w.tee.Write(p)
}

func (w *fileWriter) Close() error {
	return w.file.Close()
}
