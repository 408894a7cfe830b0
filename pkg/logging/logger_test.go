package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("bogus"))
}

func TestInitWritesComponentKey(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: "debug", Output: &buf}))
	Component("timeline").Debug("transition", "to", "day")
	assert.Contains(t, buf.String(), "component=timeline")
	assert.Contains(t, buf.String(), "to=day")
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "timeband.log")
	require.NoError(t, Init(Config{Level: "info", File: path}))
	t.Cleanup(Close)
	Info("started")
	Close()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}
