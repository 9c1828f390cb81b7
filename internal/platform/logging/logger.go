// Package logging writes diagnostics to the data directory's log file so the
// TUI screen is never written over.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"
)

type Logger struct {
	file   *os.File
	writer io.Writer
}

// New opens (appending) the log file at path. When mirror is set every line is
// also written to stderr.
func New(path string, mirror bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	var w io.Writer = file
	if mirror {
		w = io.MultiWriter(file, os.Stderr)
	}
	return &Logger{file: file, writer: w}, nil
}

func (l *Logger) Printf(format string, args ...any) {
	l.write("INFO", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.write("ERROR", format, args...)
}

func (l *Logger) write(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(l.writer, "[%s] %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, msg)
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

var global *Logger

// Init installs the process logger and points the standard log package at the
// same file.
func Init(path string, mirror bool) error {
	logger, err := New(path, mirror)
	if err != nil {
		return err
	}
	global = logger
	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)
	return nil
}

// Printf logs through the process logger. Before Init it is a no-op.
func Printf(format string, args ...any) {
	if global != nil {
		global.Printf(format, args...)
	}
}

// Errorf logs through the process logger, falling back to stderr before Init.
func Errorf(format string, args ...any) {
	if global != nil {
		global.Errorf(format, args...)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func Close() error {
	if global != nil {
		return global.Close()
	}
	return nil
}
