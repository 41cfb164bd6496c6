package pointburst

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("test", false, &buf, &buf)

	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %d", 2)
	logger.Warnf("careful")
	logger.Errorf("broken")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[test] INFO: shown 2")
	assert.Contains(t, out, "[test] WARN: careful")
	assert.Contains(t, out, "[test] ERROR: broken")

	logger.SetDebug(true)
	assert.True(t, logger.DebugEnabled())
	logger.Debugf("visible")
	assert.Contains(t, buf.String(), "DEBUG: visible")
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Logger())
	assert.False(t, NewApp().Logger().DebugEnabled())

	var buf bytes.Buffer
	app = NewApp().UseModules(LoggingModule{Prefix: "pb", Output: &buf})
	app.Logger().Infof("hello")
	assert.True(t, strings.Contains(buf.String(), "[pb] INFO frame=0: hello"))
}

func TestLoggingModule_StampsFrame(t *testing.T) {
	var buf bytes.Buffer
	app := NewApp().UseModules(LoggingModule{Prefix: "pb", Output: &buf})
	app.UseSystem(System(func(cmd *Commands) {
		cmd.Logger().Warnf("tick")
	}))

	app.RunFrames(3)
	out := buf.String()
	assert.Contains(t, out, "[pb] WARN frame=0: tick")
	assert.Contains(t, out, "[pb] WARN frame=2: tick")
	assert.NotContains(t, out, "frame=3")
}
