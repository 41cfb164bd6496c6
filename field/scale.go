package field

import "math"

const (
	SignalSmoothing  float32 = 0.1
	NeutralSmoothing float32 = 0.05
	NeutralScale     float32 = 1.0
)

// ScaleController is an exponential smoothing filter for the uniform scale of
// the whole ensemble. The zero value is not ready; use NewScaleController.
type ScaleController struct {
	scale float32
}

func NewScaleController() *ScaleController {
	return &ScaleController{scale: NeutralScale}
}

func (c *ScaleController) Scale() float32 { return c.scale }

// Update moves the scale toward target when a signal is present, or back
// toward 1 when it is not. NaN/Inf targets count as no signal.
func (c *ScaleController) Update(target float32, present bool) float32 {
	if present && !math.IsNaN(float64(target)) && !math.IsInf(float64(target), 0) {
		c.scale += (target - c.scale) * SignalSmoothing
	} else {
		c.scale += (NeutralScale - c.scale) * NeutralSmoothing
	}
	return c.scale
}

func (c *ScaleController) Reset() {
	c.scale = NeutralScale
}
