package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("info", FormatJSON, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("generated", zap.Int("cases", 3))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["cases"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("debug", "", &buf)
	require.NoError(t, err)

	log.Debug("skipped method", zap.String("method", "broken"))
	require.NoError(t, log.Sync())

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "skipped method")
	assert.Contains(t, buf.String(), `"method": "broken"`)
}

func TestNew_Errors(t *testing.T) {
	_, err := New("loud", FormatConsole, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
