package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gekko3d/pointburst"
	"github.com/gekko3d/pointburst/gesture"
	"github.com/gekko3d/pointburst/termview"
)

func main() {
	configPath := flag.String("config", "", "JSON settings file to load")
	savePath := flag.String("save", "", "write the effective settings to this file and exit")
	shapeName := flag.String("shape", "", "shape: heart, flower, sphere, cone, saturn, fireworks")
	count := flag.Int("count", 0, "particle count (1000-200000)")
	compact := flag.Bool("compact", false, "low-power profile: fewer, smaller particles")
	spring := flag.Bool("spring", false, "ease particles back to rest instead of snapping")
	seed := flag.Int64("seed", 0, "random seed for shape generation (0 = time based)")
	debug := flag.Bool("debug", false, "enable debug logging")
	logPath := flag.String("log", "pointburst.log", "log file for the interactive viewer")
	audio := flag.Bool("audio", false, "play a tone for every blast")
	fps := flag.Int("fps", 30, "frames per second")

	headless := flag.Bool("headless", false, "run without a terminal UI and print a report")
	frames := flag.Int("frames", 120, "frames to simulate in headless mode")
	blasts := flag.Int("blasts", 4, "blasts to script in headless mode")
	hand := flag.Bool("gesture", false, "script an opening hand in headless mode")
	flag.Parse()

	settings, err := resolveSettings(*configPath, *compact, *shapeName, *count, *spring)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *savePath != "" {
		if err := pointburst.SaveSettings(settings, *savePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if *fps <= 0 {
		*fps = 30
	}
	frameInterval := time.Second / time.Duration(*fps)

	if *headless {
		script := headlessScript{
			Frames:  *frames,
			Blasts:  *blasts,
			Gesture: *hand,
			Step:    frameInterval,
		}
		report, err := runHeadless(settings, *seed, *debug, script)
		fmt.Println(report.render())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	opts := interactiveOptions{
		LogPath:       *logPath,
		Debug:         *debug,
		Seed:          *seed,
		FrameInterval: frameInterval,
		Audio:         *audio,
	}
	if err := runInteractive(settings, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type interactiveOptions struct {
	LogPath       string
	Debug         bool
	Seed          int64
	FrameInterval time.Duration
	Audio         bool
}

// runInteractive owns every resource of the terminal session so they are
// released by its defers before main decides the exit code.
func runInteractive(settings pointburst.Settings, opts interactiveOptions) error {
	logFile, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	app := pointburst.NewApp().UseModules(
		pointburst.LoggingModule{Prefix: "pointburst", Debug: opts.Debug, Output: logFile},
		pointburst.TimeModule{},
		pointburst.FieldModule{Settings: settings, Seed: opts.Seed},
		pointburst.CameraModule{},
		pointburst.GestureModule{},
		pointburst.InputModule{},
	)

	viewer, err := termview.New(app, termview.Options{FrameInterval: opts.FrameInterval, Audio: opts.Audio})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := viewer.Run(ctx); err != nil {
		app.Logger().Errorf("viewer: %v", err)
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

func resolveSettings(configPath string, compact bool, shapeName string, count int, spring bool) (pointburst.Settings, error) {
	settings := pointburst.DefaultSettings()
	if compact {
		settings = pointburst.CompactSettings()
	}
	if configPath != "" {
		loaded, err := pointburst.LoadSettings(configPath)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}
	if shapeName != "" {
		settings.ModelType = shapeName
	}
	if count > 0 {
		settings.ParticleCount = count
	}
	if spring {
		settings.SpringRecovery = true
	}
	return settings.Canonical(), settings.Validate()
}

// gestureScript publishes a hand that opens and closes once over the run.
func gestureScript(latest *gesture.Latest, frame, frames int) {
	if frames <= 0 {
		return
	}
	t := float32(frame) / float32(frames)
	span := gesture.MinSpan + (gesture.MaxSpan-gesture.MinSpan)*(1-absf(2*t-1))
	latest.Publish(gesture.Open(span))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
