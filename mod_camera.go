package pointburst

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera looks down -Z at the particle cloud, which spins slowly about Y and
// is scaled uniformly by the gesture-driven scale.
type Camera struct {
	Position mgl32.Vec3
	FovY     float32 // degrees
	Near     float32
	Far      float32
	Aspect   float32

	RotationY float32
	Spin      float32 // radians per frame
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 15},
		FovY:     75,
		Near:     0.1,
		Far:      1000,
		Aspect:   16.0 / 9.0,
		Spin:     0.005,
	}
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	target := c.Position.Add(mgl32.Vec3{0, 0, -1})
	return mgl32.LookAtV(c.Position, target, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// GetModelMatrix is the cloud's rotation followed by its uniform scale.
func (c *Camera) GetModelMatrix(scale float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(c.RotationY).Mul4(mgl32.Scale3D(scale, scale, scale))
}

// Project maps a particle-space point to normalized device coordinates.
// ok is false for points behind the camera.
func (c *Camera) Project(p mgl32.Vec3, mvp mgl32.Mat4) (ndc mgl32.Vec3, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

func (c *Camera) ModelViewProjection(scale float32) mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix()).Mul4(c.GetModelMatrix(scale))
}

// PointerOnPlane casts a ray through the pointer (NDC, y up) and intersects it
// with the world z=0 plane.
func (c *Camera) PointerOnPlane(nx, ny float32) (mgl32.Vec3, bool) {
	inv := c.GetProjectionMatrix().Mul4(c.GetViewMatrix()).Inv()
	// a point halfway into the depth range, as a picking ray target
	far := inv.Mul4x1(mgl32.Vec4{nx, ny, 0.5, 1})
	if far.W() == 0 {
		return mgl32.Vec3{}, false
	}
	dir := far.Vec3().Mul(1 / far.W()).Sub(c.Position)
	if dir.Len() == 0 {
		return mgl32.Vec3{}, false
	}
	dir = dir.Normalize()
	if float32(math.Abs(float64(dir.Z()))) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	distance := -c.Position.Z() / dir.Z()
	if distance < 0 {
		return mgl32.Vec3{}, false
	}
	return c.Position.Add(dir.Mul(distance)), true
}

// PointerToModel is PointerOnPlane expressed in the cloud's own frame, so the
// disturbance lands where the pointer visually hits the rotated, scaled cloud.
func (c *Camera) PointerToModel(nx, ny, scale float32) (mgl32.Vec3, bool) {
	world, ok := c.PointerOnPlane(nx, ny)
	if !ok || scale == 0 {
		return mgl32.Vec3{}, false
	}
	local := c.GetModelMatrix(scale).Inv().Mul4x1(world.Vec4(1))
	return local.Vec3(), true
}

type CameraModule struct {
	Spin  float32
	Still bool
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	cam := NewCamera()
	if m.Spin != 0 {
		cam.Spin = m.Spin
	}
	if m.Still {
		cam.Spin = 0
	}
	cmd.AddResources(cam)
	app.UseSystem(
		System(cameraSpinSystem).InStage(PostUpdate),
	)
}

func cameraSpinSystem(cam *Camera) {
	cam.RotationY = float32(math.Mod(float64(cam.RotationY+cam.Spin), 2*math.Pi))
}
