package termview

import (
	"time"

	"github.com/gekko3d/pointburst"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	cueLength  = 60 * time.Millisecond
)

// audioCue plays a short tone per blast. The speaker is opened lazily on the
// first blast; if that fails the cue stays silent for the rest of the run.
type audioCue struct {
	logger pointburst.Logger
	ready  bool
	failed bool
}

func newAudioCue(logger pointburst.Logger) *audioCue {
	return &audioCue{logger: logger}
}

func (a *audioCue) init() bool {
	if a.ready || a.failed {
		return a.ready
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the viewer runs without sound
		a.logger.Warnf("audio initialization failed: %v", err)
		a.failed = true
		return false
	}
	a.ready = true
	return true
}

// Blast plays a tone whose pitch falls as more blasts stack up.
func (a *audioCue) Blast(active int) {
	if !a.init() {
		return
	}
	freq := 660.0 / float64(1+active)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		a.logger.Debugf("tone %.0fHz: %v", freq, err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(cueLength), sine))
}

func (a *audioCue) Close() {
	if a.ready {
		speaker.Close()
	}
}
