package pointburst

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.ParticleCount = 5000
	return s
}

func newTestField(t *testing.T, s Settings) *ParticleField {
	t.Helper()
	pf, err := NewParticleField(s, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	return pf
}

func TestPanel_SetNumberSnapsAndApplies(t *testing.T) {
	pf := newTestField(t, testSettings())
	p := NewPanel(pf)

	require.NoError(t, p.Set("blastMaxRadius", "12.3"))
	assert.Equal(t, float32(12.5), pf.Settings().BlastMaxRadius)
	assert.Equal(t, float32(12.5), pf.Simulation().Config().MaxRadius)

	v, err := p.Get("blastMaxRadius")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)
}

func TestPanel_RejectsOutOfRange(t *testing.T) {
	pf := newTestField(t, testSettings())
	p := NewPanel(pf)
	before := pf.Settings()

	for _, tc := range [][2]string{
		{"blastMaxRadius", "31"},
		{"blastDuration", "0"},
		{"particleCount", "200"},
		{"pushForce", "abc"},
		{"restoreSpeed", "NaN"},
		{"modelType", "teapot"},
		{"colorA", "#zzzzzz"},
		{"useGradient", "maybe"},
		{"unknown", "1"},
	} {
		assert.ErrorIs(t, p.Set(tc[0], tc[1]), ErrInvalidSetting, "%s=%s", tc[0], tc[1])
	}
	assert.Equal(t, before, pf.Settings())
}

func TestPanel_ColorBDisabledWithoutGradient(t *testing.T) {
	pf := newTestField(t, testSettings())
	p := NewPanel(pf)

	assert.True(t, p.Enabled("colorB"))
	require.NoError(t, p.Set("useGradient", "false"))
	assert.False(t, p.Enabled("colorB"))
	assert.ErrorIs(t, p.Set("colorB", "red"), ErrInvalidSetting)

	for _, info := range p.List() {
		assert.Equal(t, info.Name != "colorB", info.Enabled, info.Name)
	}
}

func TestPanel_ShapeChangeRebuilds(t *testing.T) {
	pf := newTestField(t, testSettings())
	p := NewPanel(pf)
	pf.Trigger(pf.Simulation().RestPositions()[0])
	pf.Simulation().Step(0.01)
	require.Equal(t, 1, pf.Simulation().ActiveCount())

	require.NoError(t, p.Set("modelType", "heart"))
	assert.Equal(t, "Heart", pf.Settings().ModelType)
	assert.Equal(t, "Heart", pf.Simulation().Kind().String())
	assert.Equal(t, 0, pf.Simulation().ActiveCount())
	assert.Equal(t, 1, pf.rebuilds)

	require.NoError(t, p.Set("particleCount", "11000"))
	assert.Equal(t, 10000, pf.Simulation().Len())
}

func TestPanel_TunableChangeKeepsEvents(t *testing.T) {
	pf := newTestField(t, testSettings())
	p := NewPanel(pf)
	pf.Trigger(pf.Simulation().RestPositions()[0])
	pf.Simulation().Step(0.01)

	require.NoError(t, p.Set("pushForce", "8"))
	require.NoError(t, p.Set("springRecovery", "true"))
	assert.Equal(t, 1, pf.Simulation().ActiveCount())
	assert.Equal(t, 0, pf.rebuilds)
}

func TestPanel_Cycle(t *testing.T) {
	pf := newTestField(t, testSettings())
	p := NewPanel(pf)

	require.NoError(t, p.Cycle("modelType", 1))
	assert.Equal(t, "Heart", pf.Settings().ModelType, "Fireworks wraps to Heart")
	require.NoError(t, p.Cycle("modelType", -1))
	assert.Equal(t, "Fireworks", pf.Settings().ModelType)

	require.NoError(t, p.Cycle("particleCount", -1))
	assert.Equal(t, 5000, pf.Settings().ParticleCount, "clamped at the minimum")

	require.NoError(t, p.Cycle("blastDuration", 2))
	assert.InDelta(t, 0.6, pf.Settings().BlastDuration, 1e-6)

	require.NoError(t, p.Cycle("useGradient", 1))
	assert.False(t, pf.Settings().UseGradient)

	assert.ErrorIs(t, p.Cycle("colorA", 1), ErrInvalidSetting)
}

func TestPanel_ListCoversEverySetting(t *testing.T) {
	p := NewPanel(newTestField(t, testSettings()))
	var names []string
	for _, info := range p.List() {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, []string{
		"modelType", "useGradient", "colorA", "colorB", "particleCount", "particleSize",
		"blastMaxRadius", "blastDuration", "restoreSpeed", "pushForce", "springRecovery", "maxScaleValue",
	}, names)
}

func TestPanel_AliasDoesNotRebuild(t *testing.T) {
	s := testSettings()
	s.ModelType = "buddha"
	pf := newTestField(t, s)
	p := NewPanel(pf)
	assert.Equal(t, "Sphere", pf.Settings().ModelType)

	pf.Trigger(pf.Simulation().RestPositions()[0])
	pf.Simulation().Step(0.01)
	require.NoError(t, p.Set("modelType", "Sphere"))
	assert.Equal(t, 0, pf.rebuilds)
	assert.Equal(t, 1, pf.Simulation().ActiveCount())

	require.NoError(t, p.Cycle("modelType", 1))
	assert.Equal(t, "Cone", pf.Settings().ModelType)
}
