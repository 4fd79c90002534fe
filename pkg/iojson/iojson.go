// Package iojson reads and writes the JSON that flare exchanges with
// scripts: streams of toast details coming in, reports and event lines
// going out.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// marshalFailure is written in place of a value that could not be encoded.
type marshalFailure struct {
	Message string `json:"message"`
	Cause   string `json:"cause"`
}

// WriteWith writes obj to w as indented JSON. When obj cannot be encoded
// a failure object is written to ew instead and the encode error is returned.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		fail, _ := json.Marshal(marshalFailure{Message: "unable to encode output", Cause: err.Error()})
		_, _ = fmt.Fprintln(ew, string(fail))
		return fmt.Errorf("encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// LineWriter writes one compact JSON value per line. It is safe for use
// from multiple goroutines; lines are never interleaved.
type LineWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewLineWriter returns a LineWriter writing to w.
func NewLineWriter(w io.Writer) *LineWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &LineWriter{enc: enc}
}

// Write encodes v followed by a newline.
func (lw *LineWriter) Write(v any) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.enc.Encode(v)
}
