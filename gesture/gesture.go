// Package gesture converts tracked hand landmarks into a target scale for the
// particle ensemble.
package gesture

import (
	"math"
	"sync"
)

const (
	LandmarkCount = 21
	ThumbTip      = 4
	PinkyTip      = 20

	// Thumb-to-pinky spans outside this window saturate.
	MinSpan float32 = 0.05
	MaxSpan float32 = 0.2

	MinScale float32 = 0.5
)

// Landmark is a normalized hand keypoint as produced by a hand tracker.
type Landmark struct {
	X, Y, Z float32
}

func distance(a, b Landmark) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
}

// Openness maps the thumb-pinky span to [0,1].
func Openness(hand []Landmark) (float32, bool) {
	if len(hand) < LandmarkCount {
		return 0, false
	}
	n := (distance(hand[ThumbTip], hand[PinkyTip]) - MinSpan) / (MaxSpan - MinSpan)
	if math.IsNaN(float64(n)) {
		return 0, false
	}
	return min(1, max(0, n)), true
}

// TargetScale maps an open hand to maxScale and a closed one to MinScale.
func TargetScale(hand []Landmark, maxScale float32) (float32, bool) {
	n, ok := Openness(hand)
	if !ok {
		return 0, false
	}
	return MinScale + n*(maxScale-MinScale), true
}

// Source yields the most recent hand, if one is being tracked.
type Source interface {
	Hand() ([]Landmark, bool)
}

// Latest holds the last hand a recognizer published. Safe for concurrent use.
type Latest struct {
	mu   sync.Mutex
	hand []Landmark
}

func (l *Latest) Publish(hand []Landmark) {
	cp := make([]Landmark, len(hand))
	copy(cp, hand)
	l.mu.Lock()
	l.hand = cp
	l.mu.Unlock()
}

// Clear marks the hand as lost.
func (l *Latest) Clear() {
	l.mu.Lock()
	l.hand = nil
	l.mu.Unlock()
}

func (l *Latest) Hand() ([]Landmark, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.hand) == 0 {
		return nil, false
	}
	return l.hand, true
}

// Open returns a synthetic hand whose thumb and pinky tips are span apart.
// Useful for scripted runs and tests.
func Open(span float32) []Landmark {
	hand := make([]Landmark, LandmarkCount)
	hand[PinkyTip] = Landmark{X: span}
	return hand
}
