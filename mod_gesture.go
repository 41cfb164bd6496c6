package pointburst

import (
	"github.com/gekko3d/pointburst/gesture"
)

// GestureInput is where an external hand tracker publishes landmarks. With no
// tracker attached the scale drifts back to 1.
type GestureInput struct {
	Source gesture.Source
}

type GestureModule struct {
	Source gesture.Source
}

func (m GestureModule) Install(app *App, cmd *Commands) {
	src := m.Source
	if src == nil {
		src = &gesture.Latest{}
	}
	cmd.AddResources(&GestureInput{Source: src})
	app.UseSystem(
		System(scaleSystem).InStage(PreUpdate),
	)
}

func scaleSystem(g *GestureInput, pf *ParticleField) {
	var (
		target  float32
		present bool
	)
	if g.Source != nil {
		if hand, ok := g.Source.Hand(); ok {
			target, present = gesture.TargetScale(hand, pf.settings.MaxScaleValue)
		}
	}
	pf.sim.UpdateScale(target, present)
}
