package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gekko3d/pointburst"
	"github.com/gekko3d/pointburst/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSettings(t *testing.T) {
	s, err := resolveSettings("", true, "ring", 12000, true)
	require.NoError(t, err)
	assert.Equal(t, "Saturn", s.ModelType)
	assert.Equal(t, 12000, s.ParticleCount)
	assert.Equal(t, pointburst.CompactSettings().ParticleSize, s.ParticleSize)
	assert.True(t, s.SpringRecovery)

	_, err = resolveSettings("", false, "teapot", 0, false)
	assert.ErrorIs(t, err, pointburst.ErrInvalidSetting)
}

func TestRunHeadless(t *testing.T) {
	settings := pointburst.DefaultSettings()
	settings.ParticleCount = 5000

	report, err := runHeadless(settings, 1, false, headlessScript{
		Frames:  60,
		Blasts:  3,
		Gesture: true,
		Step:    time.Second / 30,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fireworks", report.Shape)
	assert.Equal(t, 5000, report.Particles)
	assert.Equal(t, 3, report.Triggered)
	assert.Equal(t, 3, report.Stats.Admitted)
	assert.GreaterOrEqual(t, report.PeakActive, 1)
	assert.Greater(t, report.PeakPush, float32(0))
	assert.Greater(t, report.PeakScale, float32(1))

	out := report.render()
	assert.True(t, strings.Contains(out, "pointburst headless run"))
	assert.Contains(t, out, "instant")
}

func TestGestureScript(t *testing.T) {
	var latest gesture.Latest
	gestureScript(&latest, 50, 100)
	hand, ok := latest.Hand()
	require.True(t, ok)
	open, _ := gesture.Openness(hand)
	assert.InDelta(t, 1, open, 1e-5)

	gestureScript(&latest, 0, 100)
	hand, _ = latest.Hand()
	open, _ = gesture.Openness(hand)
	assert.InDelta(t, 0, open, 1e-5)
}

func TestRunInteractive_ReturnsErrorsInsteadOfExiting(t *testing.T) {
	settings := pointburst.DefaultSettings()
	settings.ParticleCount = 5000

	err := runInteractive(settings, interactiveOptions{
		LogPath: filepath.Join(t.TempDir(), "missing-dir", "pointburst.log"),
	})
	assert.Error(t, err)
}
