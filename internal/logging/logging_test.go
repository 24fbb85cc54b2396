package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/diary/internal/config"
)

func TestSetup(t *testing.T) {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	t.Run("json output at the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Setup(config.LogConfig{Level: "warn", Format: "json"}, &buf))

		log.Info().Msg("hidden")
		log.Warn().Str("temp_id", "temp_abc").Msg("shown")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "shown", entry["message"])
		assert.Equal(t, "temp_abc", entry["temp_id"])
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Setup(config.LogConfig{Level: "debug", Format: "console"}, &buf))

		log.Debug().Msg("console line")
		assert.Contains(t, buf.String(), "console line")
	})

	t.Run("invalid level", func(t *testing.T) {
		err := Setup(config.LogConfig{Level: "loud", Format: "json"}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
