package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	Component("feed").Warn().Msg("skipping invalid toast detail")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "feed", entry["cmp"])
	assert.Equal(t, "warn", entry["level"])
}

func TestWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := WithContextFields(zerolog.New(&buf))

	ctx := WithInput(WithSource(context.Background(), "run"), "-")
	logger.Info().Ctx(ctx).Msg("input closed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run", entry["source"])
	assert.Equal(t, "-", entry["input"])
}
