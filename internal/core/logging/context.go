package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// fields are the request scoped values copied onto log events.
type fields struct {
	source string
	input  string
	index  int
}

type fieldsKey struct{}

func fromContext(ctx context.Context) fields {
	f, _ := ctx.Value(fieldsKey{}).(fields)
	return f
}

func with(ctx context.Context, set func(*fields)) context.Context {
	f := fromContext(ctx)
	set(&f)
	return context.WithValue(ctx, fieldsKey{}, f)
}

// WithSource records which producer (show, pipe, compose, tui) is acting.
func WithSource(ctx context.Context, source string) context.Context {
	return with(ctx, func(f *fields) { f.source = source })
}

// WithInput records where a stream of toast details is read from.
func WithInput(ctx context.Context, path string) context.Context {
	return with(ctx, func(f *fields) { f.input = path })
}

// WithIndex records the 1-based position of the stream value being handled.
func WithIndex(ctx context.Context, n int) context.Context {
	return with(ctx, func(f *fields) { f.index = n })
}

// ContextHook adds the fields recorded on an event's context.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	f := fromContext(ctx)
	if f.source != "" {
		e.Str("source", f.source)
	}
	if f.input != "" {
		e.Str("input", f.input)
	}
	if f.index > 0 {
		e.Int("index", f.index)
	}
}
