package shape

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	MinCount = 1000
	MaxCount = 200000
)

var (
	ErrInvalidCount = errors.New("particle count out of range")
	ErrUnknownShape = errors.New("unknown shape")
)

type Kind int

const (
	Heart Kind = iota
	Flower
	Sphere
	Cone
	Saturn
	Fireworks
)

var kindNames = [...]string{
	Heart:     "Heart",
	Flower:    "Flower",
	Sphere:    "Sphere",
	Cone:      "Cone",
	Saturn:    "Saturn",
	Fireworks: "Fireworks",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func Kinds() []Kind {
	return []Kind{Heart, Flower, Sphere, Cone, Saturn, Fireworks}
}

// ParseKind is case-insensitive. "Buddha" is kept as an alias of Sphere and
// "ring" of Saturn.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "heart":
		return Heart, nil
	case "flower":
		return Flower, nil
	case "sphere", "buddha":
		return Sphere, nil
	case "cone":
		return Cone, nil
	case "saturn", "ring":
		return Saturn, nil
	case "fireworks", "burst":
		return Fireworks, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownShape)
}

// Params configures one generation pass.
type Params struct {
	ColorA   colorful.Color
	ColorB   colorful.Color
	Gradient bool
	// Size overrides the family's characteristic dimension when > 0.
	Size float32
}

// Cloud is a generated point set. Positions and Colors have the same length.
type Cloud struct {
	Kind      Kind
	Positions []mgl32.Vec3
	Colors    []RGB
}

func (c *Cloud) Len() int { return len(c.Positions) }

type sampleFn func(rng *rand.Rand, size float32) (p mgl32.Vec3, t float32)

var samplers = map[Kind]struct {
	size   float32
	sample sampleFn
}{
	Heart:     {2, sampleHeart},
	Flower:    {3, sampleFlower},
	Sphere:    {3, sampleSphere},
	Cone:      {5, sampleCone},
	Saturn:    {5, sampleSaturn},
	Fireworks: {10, sampleFireworks},
}

// Generate samples count points of the given family. rng may be nil, in which
// case a time-seeded source is used.
func Generate(kind Kind, count int, p Params, rng *rand.Rand) (*Cloud, error) {
	if count < MinCount || count > MaxCount {
		return nil, fmt.Errorf("%d not in [%d, %d]: %w", count, MinCount, MaxCount, ErrInvalidCount)
	}
	s, ok := samplers[kind]
	if !ok {
		return nil, fmt.Errorf("%v: %w", kind, ErrUnknownShape)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	size := s.size
	if p.Size > 0 {
		size = p.Size
	}
	g := gradient{a: p.ColorA, b: p.ColorB, enabled: p.Gradient}

	cloud := &Cloud{
		Kind:      kind,
		Positions: make([]mgl32.Vec3, count),
		Colors:    make([]RGB, count),
	}
	for i := 0; i < count; i++ {
		pos, t := s.sample(rng, size)
		cloud.Positions[i] = pos
		cloud.Colors[i] = g.at(t)
	}
	return cloud, nil
}

func sin(v float64) float32 { return float32(math.Sin(v)) }
func cos(v float64) float32 { return float32(math.Cos(v)) }

// jitter is uniform in [-w/2, w/2).
func jitter(rng *rand.Rand, w float32) float32 {
	return (rng.Float32() - 0.5) * w
}

// Parametric heart curve in the XY plane with a thin random depth.
func sampleHeart(rng *rand.Rand, radius float32) (mgl32.Vec3, float32) {
	t := rng.Float64() * 2 * math.Pi
	st := math.Sin(t)
	x := radius * 16 * float32(st*st*st) / 20
	y := radius * float32(13*math.Cos(t)-5*math.Cos(2*t)-2*math.Cos(3*t)-math.Cos(4*t)) / 20
	z := jitter(rng, 0.5)

	pos := mgl32.Vec3{x + jitter(rng, 0.5), y + jitter(rng, 0.5), z}
	return pos, (y + radius) / (radius * 2)
}

// Five-petal modulation of a filled sphere.
func sampleFlower(rng *rand.Rand, size float32) (mgl32.Vec3, float32) {
	r := rng.Float32() * size
	theta := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * math.Pi

	mod := cos(5*theta)*0.5 + 1
	x := r * mod * sin(phi) * cos(theta)
	y := r * mod * sin(phi) * sin(theta)
	z := r*cos(phi) + jitter(rng, 0.2)
	return mgl32.Vec3{x, y, z}, (z + size) / (size * 2)
}

// Filled ball, denser toward the center.
func sampleSphere(rng *rand.Rand, radius float32) (mgl32.Vec3, float32) {
	r := rng.Float32() * radius
	theta := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * math.Pi
	return sphericalPoint(r, theta, phi), r / radius
}

// Solid cone standing on the XZ plane, apex up, centered on the origin.
func sampleCone(rng *rand.Rand, height float32) (mgl32.Vec3, float32) {
	yRaw := rng.Float32() * height
	radius := (height - yRaw) / height * 3
	r := rng.Float32() * radius
	theta := rng.Float64() * 2 * math.Pi
	return mgl32.Vec3{r * cos(theta), yRaw - height/2, r * sin(theta)}, yRaw / height
}

// Half the points form a small core ball, the rest a flat ring.
func sampleSaturn(rng *rand.Rand, ringRadius float32) (mgl32.Vec3, float32) {
	if rng.Float32() < 0.5 {
		r := rng.Float32() * 1.5
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi
		return sphericalPoint(r, theta, phi), r / ringRadius
	}
	r := ringRadius * (0.5 + rng.Float32()*0.5)
	theta := rng.Float64() * 2 * math.Pi
	return mgl32.Vec3{r * cos(theta), r * sin(theta), jitter(rng, 0.1)}, r / ringRadius
}

// Radial burst: same sampling as the sphere over a much larger radius.
func sampleFireworks(rng *rand.Rand, maxDistance float32) (mgl32.Vec3, float32) {
	r := rng.Float32() * maxDistance
	theta := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * math.Pi
	return sphericalPoint(r, theta, phi), r / maxDistance
}

func sphericalPoint(r float32, theta, phi float64) mgl32.Vec3 {
	return mgl32.Vec3{
		r * sin(phi) * cos(theta),
		r * sin(phi) * sin(theta),
		r * cos(phi),
	}
}
