package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs redirects both loggers into a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		ResetOutput()
		SetVerbose(false)
		_ = SetFormat(FormatText)
		EnableLogs()
	})
	return buf
}

func TestSetVerbose(t *testing.T) {
	buf := captureLogs(t)

	SetVerbose(false)
	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())

	SetVerbose(true)
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.True(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	buf := captureLogs(t)

	Infof("info message")
	Warnf("warn message")
	Errorf("error message")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ERRO")
	assert.Equal(t, 3, strings.Count(out, "message"))
}

func TestStructuredFieldsJSON(t *testing.T) {
	buf := captureLogs(t)
	require.NoError(t, SetFormat(FormatJSON))

	Warn("Unknown network detected", "network", "not-an-ip")

	out := buf.String()
	assert.Contains(t, out, `"msg":"Unknown network detected"`)
	assert.Contains(t, out, `"network":"not-an-ip"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestSetForceStdErr(t *testing.T) {
	captureLogs(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	outLogger.SetOutput(stdout)
	errLogger.SetOutput(stderr)
	t.Cleanup(func() { SetForceStdErr(false) })

	Infof("to stdout")
	Errorf("to stderr")
	assert.Contains(t, stdout.String(), "to stdout")
	assert.NotContains(t, stdout.String(), "to stderr")
	assert.Contains(t, stderr.String(), "to stderr")

	stdout.Reset()
	stderr.Reset()
	SetForceStdErr(true)
	Infof("info on stderr")
	Warnf("warn on stderr")
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "info on stderr")
	assert.Contains(t, stderr.String(), "warn on stderr")
}

func TestSetFormat_Unknown(t *testing.T) {
	captureLogs(t)

	err := SetFormat("xml")
	assert.Error(t, err)
}

func TestDisableLogs(t *testing.T) {
	buf := captureLogs(t)

	DisableLogs()
	assert.True(t, IsDisabled())
	Errorf("should not be written")

	assert.Empty(t, buf.String())

	EnableLogs()
	assert.False(t, IsDisabled())
	Errorf("written again")
	assert.Contains(t, buf.String(), "written again")
}
