package toast

import "time"

// Request asks the manager to show a toast. Variant and Position are kept
// as raw strings because requests come from outside the process; values
// that do not parse are dropped when the toast is created.
type Request struct {
	Text     string
	Heading  string
	Variant  string
	Position string
	// Duration overrides the manager default when non-nil. Zero makes the
	// toast persistent.
	Duration *time.Duration
}

// RequestOption customizes a Request built by New or one of the variant
// helpers.
type RequestOption func(*Request)

// WithHeading sets the toast heading.
func WithHeading(heading string) RequestOption {
	return func(r *Request) {
		r.Heading = heading
	}
}

// WithDuration overrides the default duration. Zero makes the toast persistent.
func WithDuration(d time.Duration) RequestOption {
	return func(r *Request) {
		r.Duration = &d
	}
}

// Persistent makes the toast stay until dismissed.
func Persistent() RequestOption {
	return WithDuration(0)
}

// WithPosition anchors the toast somewhere other than the default.
func WithPosition(p Position) RequestOption {
	return func(r *Request) {
		r.Position = string(p)
	}
}

// WithVariant sets the variant of a generic request.
func WithVariant(v Variant) RequestOption {
	return func(r *Request) {
		r.Variant = string(v)
	}
}

// New builds a request for text.
func New(text string, opts ...RequestOption) Request {
	r := Request{Text: text}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withFixedVariant(v Variant, text string, opts []RequestOption) Request {
	r := New(text, opts...)
	r.Variant = string(v)
	return r
}

// Success builds a success request.
func Success(text string, opts ...RequestOption) Request {
	return withFixedVariant(VariantSuccess, text, opts)
}

// Warning builds a warning request.
func Warning(text string, opts ...RequestOption) Request {
	return withFixedVariant(VariantWarning, text, opts)
}

// Danger builds a danger request.
func Danger(text string, opts ...RequestOption) Request {
	return withFixedVariant(VariantDanger, text, opts)
}

// Error is an alias of Danger.
func Error(text string, opts ...RequestOption) Request {
	return Danger(text, opts...)
}

// Info builds an info request.
func Info(text string, opts ...RequestOption) Request {
	return withFixedVariant(VariantInfo, text, opts)
}
