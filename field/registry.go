// Package field simulates transient radial disturbances pushing a point cloud
// away from its rest positions.
package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// MaxBlasts is the default number of disturbances that may be active at once.
const MaxBlasts = 10

type EventId string

func makeEventId() EventId {
	return EventId(uuid.NewString())
}

// Disturbance is a transient radial push source. MaxRadius and Duration are
// snapshotted when the event is admitted; Radius is derived on every tick.
type Disturbance struct {
	ID        EventId
	Center    mgl32.Vec3
	Age       float32
	MaxRadius float32
	Duration  float32
	Radius    float32
}

// Progress is age/duration clamped to [0,1].
func (d *Disturbance) Progress() float32 {
	p := d.Age / d.Duration
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Expired reports whether the event no longer contributes force.
func (d *Disturbance) Expired() bool {
	return d.Age >= d.Duration
}

// RadiusAt is the ease-out envelope: 0 at age 0, maxRadius at age >= duration.
// It never shrinks back; expiry removes the event outright.
func RadiusAt(age, maxRadius, duration float32) float32 {
	if duration <= 0 || age <= 0 {
		return 0
	}
	p := float64(age / duration)
	if p > 1 {
		p = 1
	}
	return maxRadius * float32(math.Sin(p*math.Pi/2))
}

type RegistryStats struct {
	Admitted int
	Rejected int
	Evicted  int
	Expired  int
}

// Registry owns the bounded, insertion-ordered set of active disturbances.
// Overflow evicts the oldest-created event.
type Registry struct {
	events   []Disturbance
	capacity int
	stats    RegistryStats
}

func NewRegistry(capacity int) *Registry {
	if capacity < 1 {
		capacity = MaxBlasts
	}
	return &Registry{
		events:   make([]Disturbance, 0, capacity+1),
		capacity: capacity,
	}
}

func (r *Registry) Capacity() int { return r.capacity }

// SetCapacity changes the bound without touching surviving events. Shrinking
// below the current count evicts oldest-first; evictions count in Stats.
// It returns how many events were evicted.
func (r *Registry) SetCapacity(capacity int) int {
	if capacity < 1 {
		capacity = MaxBlasts
	}
	r.capacity = capacity
	over := len(r.events) - capacity
	if over <= 0 {
		return 0
	}
	copy(r.events, r.events[over:])
	for i := capacity; i < len(r.events); i++ {
		r.events[i] = Disturbance{}
	}
	r.events = r.events[:capacity]
	r.stats.Evicted += over
	return over
}
func (r *Registry) Len() int      { return len(r.events) }

func (r *Registry) Stats() RegistryStats { return r.stats }

// Admit appends a new event with age 0. Degenerate parameters are rejected
// without touching the active set.
func (r *Registry) Admit(center mgl32.Vec3, maxRadius, duration float32) (EventId, bool) {
	if !positiveFinite(maxRadius) || !positiveFinite(duration) || !finiteVec(center) {
		r.stats.Rejected++
		return "", false
	}

	d := Disturbance{
		ID:        makeEventId(),
		Center:    center,
		MaxRadius: maxRadius,
		Duration:  duration,
	}
	r.events = append(r.events, d)
	r.stats.Admitted++

	if len(r.events) > r.capacity {
		// FIFO: drop the single oldest event
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
		r.stats.Evicted++
	}
	return d.ID, true
}

// Tick ages every event by dt, recomputes radii and removes the events whose
// age reached their duration. It returns how many expired.
func (r *Registry) Tick(dt float32) int {
	if !(dt > 0) || math.IsInf(float64(dt), 1) {
		dt = 0
	}

	alive := r.events[:0]
	expired := 0
	for _, d := range r.events {
		d.Age += dt
		if d.Expired() {
			expired++
			continue
		}
		d.Radius = RadiusAt(d.Age, d.MaxRadius, d.Duration)
		alive = append(alive, d)
	}
	// zero the tail so stale ids don't linger in the backing array
	for i := len(alive); i < len(r.events); i++ {
		r.events[i] = Disturbance{}
	}
	r.events = alive
	r.stats.Expired += expired
	return expired
}

// Active returns a copy of the active events in creation order.
func (r *Registry) Active() []Disturbance {
	out := make([]Disturbance, len(r.events))
	copy(out, r.events)
	return out
}

// activeView exposes the backing slice for the force pass without copying.
// Callers must not retain it past the current frame.
func (r *Registry) activeView() []Disturbance {
	return r.events
}

func (r *Registry) Reset() {
	for i := range r.events {
		r.events[i] = Disturbance{}
	}
	r.events = r.events[:0]
}

func positiveFinite(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 0)
}

func finiteVec(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
