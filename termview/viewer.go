// Package termview draws a running particle field in a terminal and feeds
// mouse clicks back into it as disturbances.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/pointburst"
	"github.com/gekko3d/pointburst/shape"
)

type Options struct {
	FrameInterval time.Duration
	Audio         bool
}

// Viewer owns the frame cadence: every tick it runs one App.Update and
// redraws.
type Viewer struct {
	screen tcell.Screen
	app    *pointburst.App
	field  *pointburst.ParticleField
	panel  *pointburst.Panel
	input  *pointburst.Input
	camera *pointburst.Camera
	logger pointburst.Logger
	audio  *audioCue

	frameInterval time.Duration
	buttons       tcell.ButtonMask
	canvas        canvas
	instances     []pointburst.ParticleInstance
	message       string
}

// New wires a viewer to an app that has the field, camera and input modules
// installed.
func New(app *pointburst.App, opts Options) (*Viewer, error) {
	pf, ok := pointburst.GetResource[pointburst.ParticleField](app)
	if !ok {
		return nil, fmt.Errorf("termview: app has no ParticleField")
	}
	in, ok := pointburst.GetResource[pointburst.Input](app)
	if !ok {
		return nil, fmt.Errorf("termview: app has no Input")
	}
	cam, ok := pointburst.GetResource[pointburst.Camera](app)
	if !ok {
		return nil, fmt.Errorf("termview: app has no Camera")
	}

	v := &Viewer{
		app:           app,
		field:         pf,
		panel:         pointburst.NewPanel(pf),
		input:         in,
		camera:        cam,
		logger:        app.Logger(),
		frameInterval: opts.FrameInterval,
	}
	if v.frameInterval <= 0 {
		v.frameInterval = 33 * time.Millisecond
	}
	if opts.Audio {
		v.audio = newAudioCue(v.logger)
	}
	return v, nil
}

func (v *Viewer) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	v.screen = screen
	defer screen.Fini()
	if v.audio != nil {
		defer v.audio.Close()
	}

	screen.EnableMouse()
	screen.HideCursor()
	v.resize()

	ticker := time.NewTicker(v.frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.app.Update()
			v.draw()
		}
	}
}

func (v *Viewer) resize() {
	w, h := v.screen.Size()
	v.canvas.resize(w, h-1)
	v.input.WindowWidth, v.input.WindowHeight = w, h-1
	// terminal cells are roughly twice as tall as wide
	if h > 1 {
		v.camera.Aspect = float32(w) / float32(2*(h-1))
	}
	v.screen.Sync()
}

func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize()
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && v.buttons&tcell.Button1 == 0
		v.buttons = buttons
		if pressed {
			x, y := ev.Position()
			v.blast(func() { v.input.PushPixel(x, y, v.canvas.w, v.canvas.h) })
		}
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return true
}

func (v *Viewer) blast(push func()) {
	push()
	if v.audio != nil {
		v.audio.Blast(v.field.Simulation().ActiveCount())
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	var err error
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case ' ':
		v.blast(func() { v.input.PushPointer(0, 0) })
	case '1', '2', '3', '4', '5', '6':
		err = v.panel.Set("modelType", modelChoice(int(r-'1')))
	case 'n':
		err = v.panel.Cycle("modelType", 1)
	case 'p':
		err = v.panel.Cycle("modelType", -1)
	case '+', '=':
		err = v.panel.Cycle("particleCount", 1)
	case '-':
		err = v.panel.Cycle("particleCount", -1)
	case ']':
		err = v.panel.Cycle("blastMaxRadius", 2)
	case '[':
		err = v.panel.Cycle("blastMaxRadius", -2)
	case '.':
		err = v.panel.Cycle("blastDuration", 2)
	case ',':
		err = v.panel.Cycle("blastDuration", -2)
	case 'g':
		err = v.panel.Cycle("useGradient", 1)
	case 's':
		err = v.panel.Cycle("springRecovery", 1)
	}
	if err != nil {
		v.message = err.Error()
	} else {
		v.message = ""
	}
	return true
}

func modelChoice(i int) string {
	kinds := shape.Kinds()
	if i < 0 || i >= len(kinds) {
		return ""
	}
	return kinds[i].String()
}

func (v *Viewer) draw() {
	v.screen.Clear()

	sim := v.field.Simulation()
	mvp := v.camera.ModelViewProjection(sim.Scale())
	v.instances = v.field.Instances(v.instances)
	v.canvas.clear()
	for i := range v.instances {
		v.canvas.plot(v.camera, mvp, &v.instances[i])
	}
	v.canvas.flush(v.screen)

	s := v.field.Settings()
	status := fmt.Sprintf(" %s  %d pts  blasts %d/%d  r=%.1f  t=%.2fs  scale %.2f  %s ",
		s.ModelType, sim.Len(), sim.ActiveCount(), s.MaxBlasts,
		s.BlastMaxRadius, s.BlastDuration, sim.Scale(), recoveryLabel(s))
	if v.message != "" {
		status += "| " + v.message
	}
	_, h := v.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(status) {
		v.screen.SetContent(i, h-1, r, nil, style)
	}
	v.screen.Show()
}

func recoveryLabel(s pointburst.Settings) string {
	if s.SpringRecovery {
		return "spring"
	}
	return "instant"
}
