// Package logutils opens the process logger.
package logutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// MaxFileSize is the size at which a log file is moved aside to
// <file>.1 when it is opened.
const MaxFileSize = 5 << 20

// New returns a logger at level writing JSON lines to file. Log files are
// appended to, so a long-running terminal UI and the commands run next to it
// share one file. Without a file, logs go to stderr, which keeps stdout for
// command output; a terminal stderr gets zerolog's console format.
//
// The returned closer releases the file and is always safe to call.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("parse log level: %w", err)
	}

	if file == "" {
		var w io.Writer = os.Stderr
		if term.IsTerminal(int(os.Stderr.Fd())) {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		}
		return NewWithWriter(w, lvl), closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}
	if err := rotate(file, MaxFileSize); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("rotate log file: %w", err)
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
	}

	return NewWithWriter(f, lvl), func() { _ = f.Close() }, nil
}

// NewWithWriter returns a timestamped logger writing to w at lvl.
func NewWithWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}

// rotate renames file to file.1, replacing any previous backup, once it
// has grown past limit.
func rotate(file string, limit int64) error {
	info, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case info.Size() < limit:
		return nil
	}
	return os.Rename(file, file+".1")
}
