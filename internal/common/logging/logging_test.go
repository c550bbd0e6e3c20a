package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.InfoLevel, ParseLevel("chatty"))
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New(&buf, "info"), "seed")

	logger.Info("seeded", "inserted", 7)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "seeded")
	assert.Contains(t, out, "component=seed")
	assert.Contains(t, out, "inserted=7")
	assert.NotContains(t, out, "hidden")
}
