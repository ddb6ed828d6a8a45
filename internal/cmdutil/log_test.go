package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	Warnf(&b, false, "panel %s: %d skipped", "p1", 2)
	Warnf(&b, true, "hidden")
	assert.Equal(t, "WARN: panel p1: 2 skipped\n", b.String())
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"error": LevelError, "WARN": LevelWarn, "warning": LevelWarn, " Info ": LevelInfo, "debug": LevelDebug,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_Levels(t *testing.T) {
	var b bytes.Buffer
	l := NewLogger(&b, LevelInfo)
	l.Errorf("e%d", 1)
	l.Warnf("w")
	l.Infof("i")
	l.Debugf("d")
	assert.Equal(t, "ERROR: e1\nWARN: w\nINFO: i\n", b.String())

	var nilLogger *Logger
	assert.False(t, nilLogger.Enabled(LevelError))
	nilLogger.Errorf("no panic")
}
