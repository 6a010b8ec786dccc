package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("Reserve: session=%d", 1)
	log.Warn("Reserve: session=%d is full", 2)
	log.Error("Reserve: failed: %v", "boom")

	out := buf.String()
	assert.NotContains(t, out, "session=1")
	assert.Contains(t, out, "[WARN] Reserve: session=2 is full")
	assert.Contains(t, out, "[ERROR] Reserve: failed: boom")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("whatever"))
}
