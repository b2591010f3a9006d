package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", &buf)

	logger.Debug("hidden")
	logger.With("component", "test").Info("visible", "answer", 42)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, float64(42), entry["answer"])
}

func TestNewLogger_Development(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("development", &buf).Debug("shown")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestLogRequest_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{200, "INFO"},
		{404, "WARN"},
		{503, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		NewLogger("production", &buf).LogRequest("GET", "/health", tt.status, "1ms")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, tt.level, entry["level"])
		assert.Equal(t, float64(tt.status), entry["status_code"])
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("production", &buf).LogError(errors.New("boom"), "failed", "question_id", 7)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "ERROR", entry["level"])
}
