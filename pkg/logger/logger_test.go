package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	SetLevel("debug")
	SetOutput(&buf, "json")
	t.Cleanup(func() {
		SetLevel("info")
		SetFormat("console")
	})

	log.Info().Str("industry", "oilgas").Msg("analysis computed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analysis computed", entry["message"])
	assert.Equal(t, "oilgas", entry["industry"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetLevelInvalid(t *testing.T) {
	SetLevel("chatty")
	t.Cleanup(func() { SetLevel("info") })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())
}
