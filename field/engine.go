package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const DefaultPushForce float32 = 5.0

var ErrNonFinite = errors.New("non-finite position")

// Engine turns rest positions plus the active disturbances into displacement.
// It holds no per-frame state; the same inputs always give the same output.
type Engine struct {
	PushForce float32
}

func NewEngine(pushForce float32) *Engine {
	return &Engine{PushForce: pushForce}
}

// Falloff maps a normalized distance in [0,1) to strength: 1 at the center,
// 0 at the edge.
func Falloff(normalizedDist float32) float32 {
	s := 1 - normalizedDist
	return s * s
}

// Displacement sums the push of every event whose current radius reaches p.
// Overlapping events add up without clamping.
func (e *Engine) Displacement(p mgl32.Vec3, events []Disturbance) mgl32.Vec3 {
	var total mgl32.Vec3
	for i := range events {
		ev := &events[i]
		if !(ev.Radius > 0) {
			continue
		}
		delta := p.Sub(ev.Center)
		dist := delta.Len()
		if dist >= ev.Radius || dist == 0 {
			continue
		}
		strength := Falloff(dist / ev.Radius)
		// delta/dist instead of Normalize(): dist is already known to be > 0
		total = total.Add(delta.Mul(strength * e.PushForce / dist))
	}
	return total
}

// Displace writes the displacement of every rest position into out, which
// must be at least as long as rest.
func (e *Engine) Displace(rest []mgl32.Vec3, events []Disturbance, out []mgl32.Vec3) {
	if len(events) == 0 {
		for i := range rest {
			out[i] = mgl32.Vec3{}
		}
		return
	}
	for i, p := range rest {
		out[i] = e.Displacement(p, events)
	}
}

// CheckFinite returns ErrNonFinite for the first NaN or Inf coordinate.
func CheckFinite(positions []mgl32.Vec3) error {
	for i, p := range positions {
		if !finiteVec(p) {
			return fmt.Errorf("particle %d at %v: %w", i, p, ErrNonFinite)
		}
	}
	return nil
}

// MaxMagnitude is the length of the largest vector in vs.
func MaxMagnitude(vs []mgl32.Vec3) float32 {
	var best float64
	for _, v := range vs {
		l := math.Sqrt(float64(v.Dot(v)))
		if l > best {
			best = l
		}
	}
	return float32(best)
}
