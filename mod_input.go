package pointburst

import (
	"sync"
)

// PointerEvent is a press in normalized device coordinates: x right, y up,
// both in [-1, 1].
type PointerEvent struct {
	X, Y float32
}

// Input collects pointer presses from the shell between frames. The shell may
// push from its own goroutine; pointerSystem drains it once per frame.
type Input struct {
	mu       sync.Mutex
	pointers []PointerEvent

	WindowWidth, WindowHeight int
	Presses                   int
}

// PushPixel records a press at window pixel (px, py) with y growing down.
func (in *Input) PushPixel(px, py, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	in.PushPointer(
		float32(px)/float32(width)*2-1,
		-(float32(py)/float32(height)*2 - 1),
	)
}

func (in *Input) PushPointer(nx, ny float32) {
	in.mu.Lock()
	in.pointers = append(in.pointers, PointerEvent{X: nx, Y: ny})
	in.mu.Unlock()
}

func (in *Input) drain() []PointerEvent {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.pointers) == 0 {
		return nil
	}
	out := in.pointers
	in.pointers = nil
	return out
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(pointerSystem).
			InStage(PreUpdate),
	)
}

// pointerSystem turns presses into disturbances in the cloud's frame.
func pointerSystem(in *Input, cam *Camera, pf *ParticleField, cmd *Commands) {
	for _, ev := range in.drain() {
		in.Presses++
		pos, ok := cam.PointerToModel(ev.X, ev.Y, pf.sim.Scale())
		if !ok {
			cmd.Logger().Debugf("pointer (%.2f, %.2f) missed the z=0 plane", ev.X, ev.Y)
			continue
		}
		pf.Trigger(pos)
	}
}
