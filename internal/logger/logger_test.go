package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: FormatText, Component: "test", Output: &buf})

	Info("hello members", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "hello members")
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "key=value")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: FormatJSON, Output: &buf})

	Warn("feed degraded", "viewer", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "feed degraded", line["msg"])
	assert.Equal(t, "abc", line["viewer"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "error", Output: &buf})

	Debug("hidden")
	Info("hidden")
	Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})

	With("request_id", "r-1").Info("done")

	assert.Contains(t, buf.String(), "request_id=r-1")
}
