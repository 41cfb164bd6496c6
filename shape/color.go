package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid color")

// RGB is a linear 0..1 color as uploaded to the renderer.
type RGB [3]float32

func (c RGB) R() float32 { return c[0] }
func (c RGB) G() float32 { return c[1] }
func (c RGB) B() float32 { return c[2] }

// ParseColor accepts "#rrggbb" or an SVG color name such as "deepskyblue".
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
		}
		return c, nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	c, _ := colorful.MakeColor(named)
	return c, nil
}

// gradient blends ColorA toward ColorB; with gradients off every particle
// gets ColorA.
type gradient struct {
	a, b    colorful.Color
	enabled bool
}

func (g gradient) at(t float32) RGB {
	if !g.enabled {
		t = 0
	}
	c := g.a.BlendRgb(g.b, float64(t)).Clamped()
	return RGB{float32(c.R), float32(c.G), float32(c.B)}
}
