// Package logging provides zerolog helpers shared by every component.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a "cmp" field.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// WithContextFields returns l with ContextHook attached, so events logged
// with Ctx carry the fields recorded by WithSource, WithInput and WithIndex.
func WithContextFields(l zerolog.Logger) zerolog.Logger {
	return l.Hook(ContextHook{})
}
