package field

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

type RecoveryMode int

const (
	// RecoveryInstant renders rest+push directly; a particle snaps back the
	// frame its last disturbance expires.
	RecoveryInstant RecoveryMode = iota
	// RecoverySpring eases the rendered offset toward the current push with a
	// critically damped spring, so both the push and the return are smoothed.
	RecoverySpring
)

func (m RecoveryMode) String() string {
	switch m {
	case RecoverySpring:
		return "spring"
	default:
		return "instant"
	}
}

const (
	DefaultRestoreSpeed float32 = 0.05

	// restoreSpeed 0.01..0.2 maps to 1..20 rad/s
	restoreFrequencyScale = 100.0
	springDamping         = 1.0
)

// springRecovery keeps a per-axis offset and velocity for every particle.
type springRecovery struct {
	spring    harmonica.Spring
	dt        float32
	frequency float64

	pos []float64
	vel []float64
}

func newSpringRecovery(n int, restoreSpeed float32) *springRecovery {
	if restoreSpeed <= 0 {
		restoreSpeed = DefaultRestoreSpeed
	}
	s := &springRecovery{frequency: float64(restoreSpeed) * restoreFrequencyScale}
	s.resize(n)
	return s
}

func (s *springRecovery) resize(n int) {
	if len(s.pos) == n*3 {
		for i := range s.pos {
			s.pos[i] = 0
			s.vel[i] = 0
		}
		return
	}
	s.pos = make([]float64, n*3)
	s.vel = make([]float64, n*3)
}

// seed sets every offset to push with zero velocity.
func (s *springRecovery) seed(push []mgl32.Vec3) {
	for i, p := range push {
		if i*3+2 >= len(s.pos) {
			return
		}
		for axis := 0; axis < 3; axis++ {
			s.pos[i*3+axis] = float64(p[axis])
			s.vel[i*3+axis] = 0
		}
	}
}

func (s *springRecovery) setRestoreSpeed(restoreSpeed float32) {
	if restoreSpeed <= 0 {
		restoreSpeed = DefaultRestoreSpeed
	}
	s.frequency = float64(restoreSpeed) * restoreFrequencyScale
	s.dt = 0 // force the coefficients to be rebuilt
}

// step advances every offset toward push by dt.
func (s *springRecovery) step(dt float32, push []mgl32.Vec3) {
	if !(dt > 0) {
		return
	}
	if dt != s.dt {
		s.spring = harmonica.NewSpring(float64(dt), s.frequency, springDamping)
		s.dt = dt
	}
	for i, target := range push {
		for axis := 0; axis < 3; axis++ {
			k := i*3 + axis
			s.pos[k], s.vel[k] = s.spring.Update(s.pos[k], s.vel[k], float64(target[axis]))
		}
	}
}

func (s *springRecovery) offset(i int) mgl32.Vec3 {
	k := i * 3
	return mgl32.Vec3{float32(s.pos[k]), float32(s.pos[k+1]), float32(s.pos[k+2])}
}
