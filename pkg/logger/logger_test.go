package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn", false, nil)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "error 4")
}

func TestLogger_UnknownLevelLogsEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "verbose", false, nil)

	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_Lookup(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", false, nil)

	l.Lookup("product-by-name(foo)", 3, 12*time.Millisecond)
	assert.Contains(t, buf.String(), "product-by-name(foo) → 3")
}

func TestGlobal_NilSafe(t *testing.T) {
	SetGlobal(nil)
	assert.NotPanics(t, func() {
		Info("nothing configured")
		Lookup("x", 0, time.Second)
		Close()
	})
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	l, err := NewLogger("", "info", false)
	assert.NoError(t, err)
	assert.Nil(t, l.logFile)
	l.Close()
}
