package pointburst

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gekko3d/pointburst/field"
	"github.com/gekko3d/pointburst/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleInstance is what a renderer consumes per particle.
type ParticleInstance struct {
	Pos   [3]float32
	Size  float32
	Color [3]float32
}

// ParticleField binds the settings to a running simulation. Configuration
// changes go through Apply so a bad value never leaves a half-built cloud.
type ParticleField struct {
	sim      *field.Simulation
	settings Settings
	rng      *rand.Rand
	logger   Logger

	lastStats field.StepStats
	rebuilds  int
}

func NewParticleField(s Settings, rng *rand.Rand, logger Logger) (*ParticleField, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	s = s.Canonical()
	pf := &ParticleField{settings: s, rng: rng, logger: logger}
	cloud, err := pf.generate(s)
	if err != nil {
		return nil, err
	}
	sim, err := field.NewSimulation(s.fieldConfig(), cloud)
	if err != nil {
		return nil, err
	}
	pf.sim = sim
	logger.Infof("generated %s with %d particles", cloud.Kind, cloud.Len())
	return pf, nil
}

func (pf *ParticleField) generate(s Settings) (*shape.Cloud, error) {
	kind, params, err := s.shapeParams()
	if err != nil {
		return nil, err
	}
	return shape.Generate(kind, s.ParticleCount, params, pf.rng)
}

// Apply validates next and switches to it. Shape, count or color changes
// regenerate the cloud and drop every active disturbance; the other tunables
// only affect disturbances triggered from now on.
func (pf *ParticleField) Apply(next Settings) error {
	if err := next.Validate(); err != nil {
		pf.logger.Warnf("settings rejected: %v", err)
		return err
	}
	next = next.Canonical()

	if pf.settings.regenerates(next) {
		cloud, err := pf.generate(next)
		if err != nil {
			pf.logger.Warnf("regeneration failed, keeping %s: %v", pf.sim.Kind(), err)
			return err
		}
		if err := pf.sim.Rebuild(cloud); err != nil {
			return err
		}
		pf.rebuilds++
		pf.logger.Infof("rebuilt %s with %d particles", cloud.Kind, cloud.Len())
	}

	pf.sim.SetConfig(next.fieldConfig())
	pf.settings = next
	return nil
}

func (pf *ParticleField) Settings() Settings { return pf.settings }

func (pf *ParticleField) Simulation() *field.Simulation { return pf.sim }

func (pf *ParticleField) LastStats() field.StepStats { return pf.lastStats }

// Trigger injects a disturbance at a position in particle space.
func (pf *ParticleField) Trigger(center mgl32.Vec3) {
	pf.sim.Trigger(center)
}

// Instances packs the rendered particles for a renderer, reusing dst.
func (pf *ParticleField) Instances(dst []ParticleInstance) []ParticleInstance {
	positions := pf.sim.Positions()
	colors := pf.sim.Colors()
	dst = dst[:0]
	for i, p := range positions {
		dst = append(dst, ParticleInstance{
			Pos:   [3]float32{p.X(), p.Y(), p.Z()},
			Size:  pf.settings.ParticleSize,
			Color: colors[i],
		})
	}
	return dst
}

// FieldModule installs the ParticleField resource and the per-frame step.
type FieldModule struct {
	Settings Settings
	// Seed makes generation reproducible when non-zero.
	Seed int64
}

func (m FieldModule) Install(app *App, cmd *Commands) {
	var rng *rand.Rand
	if m.Seed != 0 {
		rng = rand.New(rand.NewSource(m.Seed))
	}
	pf, err := NewParticleField(m.Settings, rng, app.Logger())
	if err != nil {
		panic(fmt.Sprintf("FieldModule: %v", err))
	}
	cmd.AddResources(pf)
	app.UseSystem(
		System(fieldSystem).InStage(Update),
	)
}

func fieldSystem(t *Time, pf *ParticleField, cmd *Commands) {
	stats := pf.sim.Step(t.Seconds())
	pf.lastStats = stats

	logger := cmd.Logger()
	if stats.Admitted > 0 || stats.Evicted > 0 || stats.Rejected > 0 {
		logger.Debugf("disturbances: +%d admitted, %d evicted, %d rejected, %d active",
			stats.Admitted, stats.Evicted, stats.Rejected, stats.Active)
	}
	if stats.Expired > 0 {
		logger.Debugf("disturbances: %d expired, %d active", stats.Expired, stats.Active)
	}
}
