package iojson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// StreamReader reads a stream of JSON values (JSON lines or concatenated
// objects) from a file given by flag, or from stdin.
type StreamReader struct {
	fileFlagValue string
	stdin         io.Reader
}

func (sr *StreamReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to a JSON lines file (reads from stdin if not provided)",
		Destination: &sr.fileFlagValue,
	}
}

// SetStdin replaces os.Stdin as the fallback reader.
func (sr *StreamReader) SetStdin(r io.Reader) {
	sr.stdin = r
}

// Source names where values are read from, for logging.
func (sr *StreamReader) Source() string {
	if sr.fileFlagValue != "" {
		return sr.fileFlagValue
	}
	return "-"
}

// Open returns the underlying reader. Reading from an interactive terminal
// is refused so a forgotten pipe does not hang the command.
func (sr *StreamReader) Open() (io.ReadCloser, error) {
	if sr.fileFlagValue != "" {
		f, err := os.Open(sr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	}

	if sr.stdin != nil {
		return io.NopCloser(sr.stdin), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}
	return io.NopCloser(os.Stdin), nil
}

// Each decodes values from r one at a time and calls fn with the raw bytes
// of each. It stops at EOF, on the first decode or callback error, or when
// ctx is cancelled.
func Each(ctx context.Context, r io.Reader, fn func(raw []byte) error) error {
	dec := json.NewDecoder(r)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode JSON value %d: %w", n, err)
		}

		if err := fn(bytes.TrimSpace(raw)); err != nil {
			return err
		}
	}
}
