package field

import (
	"errors"
	"sync"

	"github.com/gekko3d/pointburst/shape"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrEmptyCloud = errors.New("empty point cloud")

// Config is the engine-facing part of the settings. MaxRadius and Duration are
// read when a disturbance is triggered, so changing them never alters events
// that already exist.
type Config struct {
	Capacity     int
	MaxRadius    float32
	Duration     float32
	PushForce    float32
	Recovery     RecoveryMode
	RestoreSpeed float32
}

func DefaultConfig() Config {
	return Config{
		Capacity:     MaxBlasts,
		MaxRadius:    10,
		Duration:     0.5,
		PushForce:    DefaultPushForce,
		Recovery:     RecoveryInstant,
		RestoreSpeed: DefaultRestoreSpeed,
	}
}

type pendingAdmit struct {
	center    mgl32.Vec3
	maxRadius float32
	duration  float32
}

type StepStats struct {
	Admitted int
	Rejected int
	Evicted  int
	Expired  int
	Active   int
}

// Simulation is the complete per-shape state: rest and color buffers, the
// disturbance registry, the engine and the scale filter. The host owns it and
// drives it with Step once per frame.
type Simulation struct {
	mu      sync.Mutex
	pending []pendingAdmit
	cfg     Config

	registry *Registry
	engine   *Engine
	scale    *ScaleController
	spring   *springRecovery

	kind     shape.Kind
	rest     []mgl32.Vec3
	colors   []shape.RGB
	push     []mgl32.Vec3
	rendered []mgl32.Vec3
}

func NewSimulation(cfg Config, cloud *shape.Cloud) (*Simulation, error) {
	if cloud == nil || len(cloud.Positions) == 0 {
		return nil, ErrEmptyCloud
	}
	s := &Simulation{
		cfg:      cfg,
		registry: NewRegistry(cfg.Capacity),
		engine:   NewEngine(cfg.PushForce),
		scale:    NewScaleController(),
	}
	s.cfg.Capacity = s.registry.Capacity()
	s.load(cloud)
	return s, nil
}

func (s *Simulation) load(cloud *shape.Cloud) {
	n := len(cloud.Positions)
	s.kind = cloud.Kind
	s.rest = cloud.Positions
	s.colors = cloud.Colors
	s.push = make([]mgl32.Vec3, n)
	s.rendered = make([]mgl32.Vec3, n)
	copy(s.rendered, s.rest)

	if s.cfg.Recovery == RecoverySpring {
		if s.spring == nil {
			s.spring = newSpringRecovery(n, s.cfg.RestoreSpeed)
		} else {
			s.spring.resize(n)
		}
	} else {
		s.spring = nil
	}
}

// Rebuild swaps in a freshly generated cloud. Events and queued triggers refer
// to the old geometry and are dropped.
func (s *Simulation) Rebuild(cloud *shape.Cloud) error {
	if cloud == nil || len(cloud.Positions) == 0 {
		return ErrEmptyCloud
	}
	s.mu.Lock()
	s.pending = s.pending[:0]
	s.mu.Unlock()

	s.registry.Reset()
	s.load(cloud)
	return nil
}

func (s *Simulation) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig applies new tunables. Active events survive; a smaller capacity
// evicts the oldest ones. The recovery mode can be switched at any time.
func (s *Simulation) SetConfig(cfg Config) {
	s.mu.Lock()
	if cfg.Capacity < 1 {
		cfg.Capacity = MaxBlasts
	}
	prev := s.cfg
	s.cfg = cfg
	s.mu.Unlock()

	s.engine.PushForce = cfg.PushForce
	if cfg.Capacity != prev.Capacity {
		s.registry.SetCapacity(cfg.Capacity)
	}
	switch {
	case cfg.Recovery == RecoverySpring && s.spring == nil:
		// start from what is on screen so switching modes doesn't jump
		s.spring = newSpringRecovery(len(s.rest), cfg.RestoreSpeed)
		s.spring.seed(s.push)
	case cfg.Recovery == RecoverySpring:
		s.spring.setRestoreSpeed(cfg.RestoreSpeed)
	default:
		s.spring = nil
	}
}

// Trigger queues a disturbance at center using the radius and duration that
// are configured right now. Safe to call from any goroutine; the event becomes
// active at the start of the next Step.
func (s *Simulation) Trigger(center mgl32.Vec3) {
	s.mu.Lock()
	s.pending = append(s.pending, pendingAdmit{
		center:    center,
		maxRadius: s.cfg.MaxRadius,
		duration:  s.cfg.Duration,
	})
	s.mu.Unlock()
}

func (s *Simulation) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Simulation) drain() []pendingAdmit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	out := make([]pendingAdmit, len(s.pending))
	copy(out, s.pending)
	s.pending = s.pending[:0]
	return out
}

// Step runs one frame: queued triggers are admitted, events are aged and
// expired, and the rendered positions are recomputed.
func (s *Simulation) Step(dt float32) StepStats {
	before := s.registry.Stats()
	for _, p := range s.drain() {
		s.registry.Admit(p.center, p.maxRadius, p.duration)
	}
	s.registry.Tick(dt)
	after := s.registry.Stats()

	s.engine.Displace(s.rest, s.registry.activeView(), s.push)
	if s.spring != nil {
		s.spring.step(dt, s.push)
	}
	s.compose()

	return StepStats{
		Admitted: after.Admitted - before.Admitted,
		Rejected: after.Rejected - before.Rejected,
		Evicted:  after.Evicted - before.Evicted,
		Expired:  after.Expired - before.Expired,
		Active:   s.registry.Len(),
	}
}

// Compute recomputes the rendered positions from the current state without
// advancing time. Calling it repeatedly gives identical output.
func (s *Simulation) Compute() {
	s.engine.Displace(s.rest, s.registry.activeView(), s.push)
	s.compose()
}

func (s *Simulation) compose() {
	if s.spring != nil {
		for i, p := range s.rest {
			s.rendered[i] = p.Add(s.spring.offset(i))
		}
		return
	}
	for i, p := range s.rest {
		s.rendered[i] = p.Add(s.push[i])
	}
}

// UpdateScale feeds the external magnitude signal into the scale filter.
func (s *Simulation) UpdateScale(target float32, present bool) float32 {
	return s.scale.Update(target, present)
}

func (s *Simulation) Len() int { return len(s.rest) }

func (s *Simulation) Kind() shape.Kind { return s.kind }

// Positions returns the rendered positions of the last Step or Compute. The
// slice is reused across frames and must not be modified.
func (s *Simulation) Positions() []mgl32.Vec3 { return s.rendered }

// RestPositions returns the generated positions. Must not be modified.
func (s *Simulation) RestPositions() []mgl32.Vec3 { return s.rest }

func (s *Simulation) Colors() []shape.RGB { return s.colors }

func (s *Simulation) Scale() float32 { return s.scale.Scale() }

func (s *Simulation) Active() []Disturbance { return s.registry.Active() }

func (s *Simulation) ActiveCount() int { return s.registry.Len() }

func (s *Simulation) Stats() RegistryStats { return s.registry.Stats() }
