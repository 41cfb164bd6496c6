package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/pointburst"
	"github.com/go-gl/mathgl/mgl32"
)

// glyphs by density, lightest first
var glyphs = []rune{'·', ':', '*', '#', '@'}

type cell struct {
	count   int
	r, g, b float32
	size    float32
}

// canvas accumulates projected particles per terminal cell. Overlapping
// particles brighten the cell, like additive blending.
type canvas struct {
	w, h  int
	cells []cell
}

func (c *canvas) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cells = make([]cell, w*h)
}

func (c *canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

// plot projects one particle; points off screen or behind the camera are
// dropped.
func (c *canvas) plot(cam *pointburst.Camera, mvp mgl32.Mat4, p *pointburst.ParticleInstance) bool {
	if c.w == 0 || c.h == 0 {
		return false
	}
	ndc, ok := cam.Project(mgl32.Vec3(p.Pos), mvp)
	if !ok || ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
		return false
	}
	x := int((ndc.X() + 1) / 2 * float32(c.w))
	y := int((1 - ndc.Y()) / 2 * float32(c.h))
	x = min(max(x, 0), c.w-1)
	y = min(max(y, 0), c.h-1)

	cl := &c.cells[y*c.w+x]
	cl.count++
	cl.r += p.Color[0]
	cl.g += p.Color[1]
	cl.b += p.Color[2]
	cl.size = max(cl.size, p.Size)
	return true
}

func (cl *cell) glyph() rune {
	level := 0
	switch {
	case cl.count >= 16:
		level = 3
	case cl.count >= 6:
		level = 2
	case cl.count >= 2:
		level = 1
	}
	if cl.size >= 0.25 {
		level++
	}
	return glyphs[min(level, len(glyphs)-1)]
}

func (cl *cell) color() tcell.Color {
	n := float32(cl.count)
	boost := min(1.0, 0.55+0.08*n)
	ch := func(sum float32) int32 {
		return int32(min(255, sum/n*boost*255))
	}
	return tcell.NewRGBColor(ch(cl.r), ch(cl.g), ch(cl.b))
}

func (c *canvas) flush(screen tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := &c.cells[y*c.w+x]
			if cl.count == 0 {
				continue
			}
			screen.SetContent(x, y, cl.glyph(), nil, tcell.StyleDefault.Foreground(cl.color()))
		}
	}
}
