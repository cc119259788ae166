package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	l, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, l)
	assert.Equal(t, "warn", l.String())

	_, err = ParseLogLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogLevel(WarnLevel)
	defer SetLogLevel(InfoLevel)

	LogInfo("hidden %d", 1)
	assert.Zero(t, buf.Len())
	LogWarn("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}
