package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"academy/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONWithServiceAttributes(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "academy"
	cfg.Env.Env = "production"
	cfg.Env.Log.Level = "warning"

	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", slog.String("k", "v"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "academy", record["service"])
	assert.Equal(t, "production", record["env"])
	assert.Equal(t, "v", record["k"])
}

func TestParseLogLevel(t *testing.T) {
	level, err := parseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	level, err = parseLogLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = parseLogLevel("verbose")
	assert.Error(t, err)
}
