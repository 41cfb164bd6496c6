package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gekko3d/pointburst"
	"github.com/gekko3d/pointburst/field"
	"github.com/gekko3d/pointburst/gesture"
	"github.com/go-gl/mathgl/mgl32"
)

type headlessScript struct {
	Frames  int
	Blasts  int
	Gesture bool
	Step    time.Duration
}

// blast pointer positions, cycled
var blastPattern = [][2]float32{{0, 0}, {0.25, 0.15}, {-0.2, -0.1}, {0.1, -0.3}, {-0.35, 0.25}}

type headlessReport struct {
	Shape       string
	Particles   int
	Frames      int
	Triggered   int
	Stats       field.RegistryStats
	PeakActive  int
	PeakPush    float32
	PeakFrame   int
	FinalPush   float32
	FinalScale  float32
	PeakScale   float32
	Recovery    string
	NonFinite   error
	SimDuration time.Duration
}

func runHeadless(settings pointburst.Settings, seed int64, debug bool, script headlessScript) (headlessReport, error) {
	latest := &gesture.Latest{}
	app := pointburst.NewApp().UseModules(
		pointburst.LoggingModule{Prefix: "pointburst", Debug: debug},
		pointburst.TimeModule{FixedStep: script.Step},
		pointburst.FieldModule{Settings: settings, Seed: seed},
		pointburst.CameraModule{},
		pointburst.GestureModule{Source: latest},
		pointburst.InputModule{},
	)
	pf, _ := pointburst.GetResource[pointburst.ParticleField](app)
	in, _ := pointburst.GetResource[pointburst.Input](app)
	sim := pf.Simulation()

	report := headlessReport{
		Shape:     sim.Kind().String(),
		Particles: sim.Len(),
		Frames:    script.Frames,
		Recovery:  recoveryName(settings),
		PeakScale: sim.Scale(),
	}

	every := 0
	if script.Blasts > 0 {
		every = max(1, script.Frames/(script.Blasts+1))
	}

	start := time.Now()
	for frame := 0; frame < script.Frames; frame++ {
		if every > 0 && frame%every == 0 && report.Triggered < script.Blasts {
			p := blastPattern[report.Triggered%len(blastPattern)]
			in.PushPointer(p[0], p[1])
			report.Triggered++
		}
		if script.Gesture {
			gestureScript(latest, frame, script.Frames)
		}

		app.Update()

		push := displacement(sim.Positions(), sim.RestPositions())
		if push > report.PeakPush {
			report.PeakPush = push
			report.PeakFrame = frame
		}
		report.FinalPush = push
		report.PeakActive = max(report.PeakActive, sim.ActiveCount())
		report.PeakScale = max(report.PeakScale, sim.Scale())

		if err := field.CheckFinite(sim.Positions()); err != nil {
			report.NonFinite = err
			break
		}
	}
	report.SimDuration = time.Since(start)
	report.Stats = sim.Stats()
	report.FinalScale = sim.Scale()
	return report, report.NonFinite
}

func displacement(rendered, rest []mgl32.Vec3) float32 {
	var best float32
	for i := range rendered {
		best = max(best, rendered[i].Sub(rest[i]).Len())
	}
	return best
}

func recoveryName(s pointburst.Settings) string {
	if s.SpringRecovery {
		return field.RecoverySpring.String()
	}
	return field.RecoveryInstant.String()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(16)
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff33aa"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5555"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func (r headlessReport) render() string {
	rows := [][2]string{
		{"shape", r.Shape},
		{"particles", fmt.Sprint(r.Particles)},
		{"frames", fmt.Sprint(r.Frames)},
		{"recovery", r.Recovery},
		{"triggered", fmt.Sprint(r.Triggered)},
		{"admitted", fmt.Sprint(r.Stats.Admitted)},
		{"evicted", fmt.Sprint(r.Stats.Evicted)},
		{"expired", fmt.Sprint(r.Stats.Expired)},
		{"peak active", fmt.Sprint(r.PeakActive)},
		{"peak push", fmt.Sprintf("%.3f (frame %d)", r.PeakPush, r.PeakFrame)},
		{"final push", fmt.Sprintf("%.3f", r.FinalPush)},
		{"scale", fmt.Sprintf("%.3f (peak %.3f)", r.FinalScale, r.PeakScale)},
		{"wall time", r.SimDuration.Round(time.Microsecond).String()},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pointburst headless run"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(row[0]), valueStyle.Render(row[1])))
	}
	if r.NonFinite != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(r.NonFinite.Error()))
	}
	return boxStyle.Render(b.String())
}
