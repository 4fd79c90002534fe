package toast

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMissingText is returned when a detail payload carries no toast text.
var ErrMissingText = errors.New("toast detail has no text")

// ParseDetail decodes a show request from JSON. Two shapes are accepted:
//
//	{"text": "...", "heading": "...", "variant": "...", "position": "...", "duration": 3000}
//	{"duration": 3000, "slots": {"text": "...", "heading": "..."}, "dataset": {"variant": "...", "position": "..."}}
//
// The nested form is the event detail emitted by browser hosts. Durations
// are milliseconds. Unknown variants and positions are kept verbatim and
// dropped later by the manager.
func ParseDetail(data []byte) (Request, error) {
	if !gjson.ValidBytes(data) {
		return Request{}, fmt.Errorf("parse toast detail: invalid json")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Request{}, fmt.Errorf("parse toast detail: expected object, got %s", doc.Type)
	}

	req := Request{
		Text:     firstString(doc, "slots.text", "text"),
		Heading:  firstString(doc, "slots.heading", "heading"),
		Variant:  firstString(doc, "dataset.variant", "variant"),
		Position: firstString(doc, "dataset.position", "position"),
	}

	if d := doc.Get("duration"); d.Exists() {
		if d.Type != gjson.Number {
			return Request{}, fmt.Errorf("parse toast detail: duration must be a number of milliseconds")
		}
		dur := time.Duration(d.Int()) * time.Millisecond
		req.Duration = &dur
	}

	if req.Text == "" {
		return Request{}, ErrMissingText
	}
	return req, nil
}

// EncodeDetail renders req in the nested event detail shape. Invalid
// variants and positions are omitted, and a nil duration is left out so
// the receiving manager applies its own default.
func EncodeDetail(req Request) ([]byte, error) {
	out := []byte(`{}`)
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}

	if req.Duration != nil {
		set("duration", max(0, *req.Duration).Milliseconds())
	}
	set("slots.text", req.Text)
	if req.Heading != "" {
		set("slots.heading", req.Heading)
	}
	if v, ok := ParseVariant(req.Variant); ok && v != VariantNone {
		set("dataset.variant", string(v))
	}
	if p, ok := ParsePosition(req.Position); ok {
		set("dataset.position", string(p))
	}

	if err != nil {
		return nil, fmt.Errorf("encode toast detail: %w", err)
	}
	return out, nil
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if r := doc.Get(p); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	return ""
}
