package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "OFF", OFF.String())
}

func TestDefaultLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARN, &buf)

	l.Info("dropped")
	l.Warn("kept: %d", 1)
	l.Error("kept too")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept: 1")
	assert.Contains(t, out, "kept too")
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(ERROR, &buf)

	l.Info("hidden")
	l.SetLevel(DEBUG)
	l.Debug("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerolog(zerolog.New(&buf))

	l.Info("count=%d", 7)
	assert.Contains(t, buf.String(), "count=7")

	l.SetLevel(OFF)
	buf.Reset()
	l.Error("silent")
	assert.Empty(t, buf.String())
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(New(INFO, &buf))
	Info("via default")
	assert.Contains(t, buf.String(), "via default")

	// A nil logger must not replace the default.
	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestPackageLevelWrappers(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(New(DEBUG, &buf))

	Debug("dbg %d", 1)
	Info("inf %d", 2)
	Warn("wrn %d", 3)
	Error("err %d", 4)

	out := buf.String()
	assert.Contains(t, out, "dbg 1")
	assert.Contains(t, out, "inf 2")
	assert.Contains(t, out, "wrn 3")
	assert.Contains(t, out, "err 4")
}
