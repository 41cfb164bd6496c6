package shape

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			cloud, err := Generate(kind, MinCount, Params{Gradient: true}, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			assert.Equal(t, kind, cloud.Kind)
			assert.Equal(t, MinCount, cloud.Len())
			assert.Len(t, cloud.Colors, MinCount)

			for i, p := range cloud.Positions {
				for axis := 0; axis < 3; axis++ {
					v := p[axis]
					if v != v {
						t.Fatalf("particle %d has NaN component", i)
					}
				}
			}
		})
	}
}

func TestGenerate_RejectsBadCount(t *testing.T) {
	for _, n := range []int{0, -5, MinCount - 1, MaxCount + 1} {
		_, err := Generate(Sphere, n, Params{}, nil)
		assert.ErrorIs(t, err, ErrInvalidCount, "count %d", n)
	}
}

func TestGenerate_RejectsUnknownKind(t *testing.T) {
	_, err := Generate(Kind(42), MinCount, Params{}, nil)
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
}

func TestGenerate_SeededIsDeterministic(t *testing.T) {
	a, err := Generate(Flower, 2000, Params{}, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := Generate(Flower, 2000, Params{}, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, a.Positions, b.Positions)
}

func TestGenerate_RespectsSize(t *testing.T) {
	cloud, err := Generate(Sphere, 5000, Params{Size: 1.5}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for _, p := range cloud.Positions {
		assert.LessOrEqual(t, p.Len(), float32(1.5)+1e-4)
	}

	cloud, err = Generate(Fireworks, 5000, Params{}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for _, p := range cloud.Positions {
		assert.LessOrEqual(t, p.Len(), float32(10)+1e-3)
	}
}

func TestGenerate_GradientOffUsesColorA(t *testing.T) {
	a, _ := ParseColor("#00ccff")
	b, _ := ParseColor("#ff33aa")
	cloud, err := Generate(Saturn, MinCount, Params{ColorA: a, ColorB: b}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	want := RGB{float32(a.R), float32(a.G), float32(a.B)}
	for _, c := range cloud.Colors {
		assert.Equal(t, want, c)
	}
}

func TestGenerate_GradientColorsStayInGamut(t *testing.T) {
	a, _ := ParseColor("red")
	b, _ := ParseColor("blue")
	cloud, err := Generate(Heart, 3000, Params{ColorA: a, ColorB: b, Gradient: true}, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	varied := false
	for _, c := range cloud.Colors {
		for _, ch := range c {
			assert.GreaterOrEqual(t, ch, float32(0))
			assert.LessOrEqual(t, ch, float32(1))
		}
		if c != cloud.Colors[0] {
			varied = true
		}
	}
	assert.True(t, varied, "gradient should vary across the cloud")
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Kind
	}{
		{"heart", Heart},
		{"Flower", Flower},
		{"SPHERE", Sphere},
		{"Buddha", Sphere},
		{" cone ", Cone},
		{"ring", Saturn},
		{"Fireworks", Fireworks},
	} {
		got, err := ParseKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseKind("teapot")
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Saturn", Saturn.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	for _, k := range Kinds() {
		back, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.InDelta(t, 1, c.R, 1e-9)
	assert.InDelta(t, 0, c.G, 1e-9)

	c, err = ParseColor("DeepSkyBlue")
	require.NoError(t, err)
	assert.InDelta(t, 0, c.R, 1e-9)
	assert.InDelta(t, 191.0/255, c.G, 1e-9)
	assert.InDelta(t, 1, c.B, 1e-9)

	for _, bad := range []string{"", "#12", "#gggggg", "notacolor"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}
