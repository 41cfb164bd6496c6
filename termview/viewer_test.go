package termview

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/pointburst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T) (*Viewer, *pointburst.App) {
	t.Helper()
	s := pointburst.DefaultSettings()
	s.ParticleCount = 5000
	app := pointburst.NewApp().UseModules(
		pointburst.TimeModule{FixedStep: 50 * time.Millisecond},
		pointburst.FieldModule{Settings: s, Seed: 9},
		pointburst.CameraModule{Still: true},
		pointburst.GestureModule{},
		pointburst.InputModule{},
	)
	v, err := New(app, Options{})
	require.NoError(t, err)
	v.canvas.resize(80, 24)
	return v, app
}

func TestNew_RequiresModules(t *testing.T) {
	_, err := New(pointburst.NewApp(), Options{})
	assert.Error(t, err)
}

func TestViewer_ClickTriggersBlast(t *testing.T) {
	v, app := newTestViewer(t)

	assert.True(t, v.handleEvent(tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone)))
	// still held: no second blast
	assert.True(t, v.handleEvent(tcell.NewEventMouse(41, 12, tcell.Button1, tcell.ModNone)))
	app.Update()
	assert.Equal(t, 1, v.field.Simulation().ActiveCount())

	v.handleEvent(tcell.NewEventMouse(41, 12, tcell.ButtonNone, tcell.ModNone))
	v.handleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	app.Update()
	assert.Equal(t, 2, v.field.Simulation().ActiveCount())
}

func TestViewer_Keys(t *testing.T) {
	v, app := newTestViewer(t)

	assert.True(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	app.Update()
	assert.Equal(t, 1, v.field.Simulation().ActiveCount())

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone))
	assert.Equal(t, "Heart", v.field.Settings().ModelType)
	assert.Equal(t, 0, v.field.Simulation().ActiveCount())

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone))
	assert.Equal(t, float32(11), v.field.Settings().BlastMaxRadius)

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	assert.True(t, v.field.Settings().SpringRecovery)
	assert.Empty(t, v.message)

	assert.False(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestViewer_DrawToSimulationScreen(t *testing.T) {
	v, app := newTestViewer(t)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 25)
	v.screen = screen
	v.resize()

	app.Update()
	v.draw()

	cells, w, h := screen.GetContents()
	require.Equal(t, 80, w)
	require.Equal(t, 25, h)
	drawn := 0
	for _, c := range cells[:w*(h-1)] {
		if len(c.Runes) > 0 && c.Runes[0] != ' ' {
			drawn++
		}
	}
	assert.Greater(t, drawn, 0)
	assert.Equal(t, 'F', cells[w*(h-1)+1].Runes[0])
}
