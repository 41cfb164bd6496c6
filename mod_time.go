package pointburst

import (
	"time"
)

// maxFrameDt caps a single step so a stalled host doesn't expire every
// disturbance in one frame.
const maxFrameDt = 250 * time.Millisecond

type Time struct {
	Time time.Time
	Dt   time.Duration
	// Fixed, when non-zero, replaces the wall-clock delta. Headless runs use
	// it to stay deterministic.
	Fixed time.Duration
}

// Seconds is Dt as float32 seconds, the unit the simulation works in.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
	FixedStep time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:  time.Now(),
		Dt:    0,
		Fixed: mod.FixedStep,
	})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	if timeResource.Fixed > 0 {
		timeResource.Dt = timeResource.Fixed
	} else {
		timeResource.Dt = min(now.Sub(timeResource.Time), maxFrameDt)
	}
	timeResource.Time = now
}
