package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, false)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Info().Str("outdir", "dist").Msg("Building assets")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Building assets", entry["message"])
	assert.Equal(t, "dist", entry["outdir"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "caller")
}

func TestNew_Dev(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, true)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Debug().Msg("Discarding component styles")
	assert.Contains(t, buf.String(), "Discarding component styles")
	assert.NotContains(t, buf.String(), "{")
}
