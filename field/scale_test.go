package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleController_StartsNeutral(t *testing.T) {
	c := NewScaleController()
	assert.Equal(t, NeutralScale, c.Scale())
}

func TestScaleController_ApproachesTarget(t *testing.T) {
	c := NewScaleController()

	assert.InDelta(t, 1.3, c.Update(4, true), 1e-6)
	assert.InDelta(t, 1.57, c.Update(4, true), 1e-5)

	for i := 0; i < 200; i++ {
		c.Update(4, true)
	}
	assert.InDelta(t, 4, c.Scale(), 1e-3)
}

func TestScaleController_RevertsSlowlyWithoutSignal(t *testing.T) {
	c := NewScaleController()
	for i := 0; i < 200; i++ {
		c.Update(3, true)
	}

	before := c.Scale()
	after := c.Update(0, false)
	// 5% of the way back toward 1
	assert.InDelta(t, before-(before-1)*0.05, after, 1e-5)

	for i := 0; i < 400; i++ {
		c.Update(0, false)
	}
	assert.InDelta(t, 1, c.Scale(), 1e-3)
}

func TestScaleController_NonFiniteTargetCountsAsAbsent(t *testing.T) {
	for _, target := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		c := NewScaleController()
		c.Update(2, true)
		prev := c.Scale()

		got := c.Update(target, true)
		assert.InDelta(t, prev+(1-prev)*NeutralSmoothing, got, 1e-6)
		assert.False(t, math.IsNaN(float64(got)))
	}
}

func TestScaleController_Reset(t *testing.T) {
	c := NewScaleController()
	c.Update(8, true)
	c.Reset()
	assert.Equal(t, NeutralScale, c.Scale())
}
