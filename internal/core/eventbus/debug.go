package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger logs bus traffic: every publish at debug level,
// drops as warnings and subscriber panics as errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		e := logger.Debug().Str("event", string(event))
		if p, ok := payload.(ShowToastPayload); ok {
			e = e.Str("variant", p.Request.Variant).
				Str("position", p.Request.Position).
				Bool("persistent", p.Request.Duration != nil && *p.Request.Duration == 0).
				Int("text_len", len(p.Request.Text))
		}
		e.Msg("published")
	})

	bus.OnDrop(func(event Event, _ any, reason DropReason) {
		e := logger.Warn().Str("event", string(event)).Str("reason", string(reason))
		if event == EventInputClosed {
			e.Msg("input.closed dropped, host will wait for a signal")
			return
		}
		e.Msg("event dropped")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
