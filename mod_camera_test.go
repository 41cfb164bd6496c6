package pointburst

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_CenterPointerHitsOrigin(t *testing.T) {
	cam := NewCamera()
	p, ok := cam.PointerOnPlane(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, 0, p.Z(), 1e-4)
}

func TestCamera_PointerRoundTrip(t *testing.T) {
	cam := NewCamera()
	cam.RotationY = 0.7

	for _, scale := range []float32{0.5, 1, 3} {
		for _, ptr := range [][2]float32{{0.5, 0}, {-0.3, 0.6}, {0.9, -0.9}} {
			local, ok := cam.PointerToModel(ptr[0], ptr[1], scale)
			require.True(t, ok)

			ndc, ok := cam.Project(local, cam.ModelViewProjection(scale))
			require.True(t, ok)
			assert.InDelta(t, ptr[0], ndc.X(), 1e-3, "scale %v ptr %v", scale, ptr)
			assert.InDelta(t, ptr[1], ndc.Y(), 1e-3, "scale %v ptr %v", scale, ptr)
		}
	}
}

func TestCamera_PointerOffCenterMovesWithPointer(t *testing.T) {
	cam := NewCamera()
	right, ok := cam.PointerOnPlane(0.5, 0)
	require.True(t, ok)
	up, ok := cam.PointerOnPlane(0, 0.5)
	require.True(t, ok)

	assert.Greater(t, right.X(), float32(0))
	assert.Greater(t, up.Y(), float32(0))
	assert.InDelta(t, 0, right.Z(), 1e-4)
}

func TestCamera_ProjectBehindCamera(t *testing.T) {
	cam := NewCamera()
	_, ok := cam.Project(mgl32.Vec3{0, 0, 30}, cam.ModelViewProjection(1))
	assert.False(t, ok)
}

func TestCamera_PointerToModelZeroScale(t *testing.T) {
	_, ok := NewCamera().PointerToModel(0, 0, 0)
	assert.False(t, ok)
}

func TestCameraModule_Spin(t *testing.T) {
	app := NewApp().UseModules(CameraModule{Spin: 0.5})
	cam, ok := GetResource[Camera](app)
	require.True(t, ok)

	app.RunFrames(4)
	assert.InDelta(t, 2.0, cam.RotationY, 1e-6)

	app.RunFrames(10)
	assert.Less(t, cam.RotationY, float32(2*3.1416))

	still := NewApp().UseModules(CameraModule{Still: true})
	cam, _ = GetResource[Camera](still)
	still.RunFrames(3)
	assert.Equal(t, float32(0), cam.RotationY)
}
