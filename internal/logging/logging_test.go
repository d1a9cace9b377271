package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTextFormat(t *testing.T) {
	old := log.Logger
	defer func() { log.Logger = old }()

	var buf bytes.Buffer
	Setup(Options{Level: "debug", Format: "text", Writer: &buf})

	log.Debug().Msg("test debug")
	log.Info().Msg("test info")

	output := buf.String()
	assert.Contains(t, output, "test debug", "expected debug message visible at debug level")
	assert.Contains(t, output, "test info")
}

func TestSetupJSONFormat(t *testing.T) {
	old := log.Logger
	defer func() { log.Logger = old }()

	var buf bytes.Buffer
	Setup(Options{Level: "info", Format: "json", Writer: &buf})

	log.Debug().Msg("hidden")
	log.Info().Int("records", 3).Msg("saved")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "saved", entry["message"])
	assert.Equal(t, float64(3), entry["records"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}
