package pointburst

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gekko3d/pointburst/shape"
)

type TunableKind int

const (
	TunableNumber TunableKind = iota
	TunableBool
	TunableColor
	TunableChoice
)

// Tunable is one named control. Numbers are range-checked and snapped to Step.
type Tunable struct {
	Name    string
	Label   string
	Kind    TunableKind
	Min     float64
	Max     float64
	Step    float64
	Choices []string

	get func(*Settings) string
	set func(*Settings, string) error
}

type TunableInfo struct {
	Name    string
	Label   string
	Value   string
	Enabled bool
}

// Panel exposes the settings as named tunables and forwards every change to
// the ParticleField.
type Panel struct {
	field    *ParticleField
	tunables []Tunable
}

func NewPanel(pf *ParticleField) *Panel {
	return &Panel{field: pf, tunables: defaultTunables()}
}

func number(name, label string, lo, hi, step float64, ptr func(*Settings) *float32) Tunable {
	return Tunable{
		Name: name, Label: label, Kind: TunableNumber, Min: lo, Max: hi, Step: step,
		get: func(s *Settings) string { return strconv.FormatFloat(float64(*ptr(s)), 'g', 4, 32) },
		set: func(s *Settings, v string) error {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return err
			}
			*ptr(s) = float32(f)
			return nil
		},
	}
}

func toggle(name, label string, ptr func(*Settings) *bool) Tunable {
	return Tunable{
		Name: name, Label: label, Kind: TunableBool,
		get: func(s *Settings) string { return strconv.FormatBool(*ptr(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*ptr(s) = b
			return nil
		},
	}
}

func colorTunable(name, label string, ptr func(*Settings) *string) Tunable {
	return Tunable{
		Name: name, Label: label, Kind: TunableColor,
		get: func(s *Settings) string { return *ptr(s) },
		set: func(s *Settings, v string) error {
			if _, err := shape.ParseColor(v); err != nil {
				return err
			}
			*ptr(s) = v
			return nil
		},
	}
}

func defaultTunables() []Tunable {
	var models []string
	for _, k := range shape.Kinds() {
		models = append(models, k.String())
	}

	return []Tunable{
		{
			Name: "modelType", Label: "Particle model", Kind: TunableChoice, Choices: models,
			get: func(s *Settings) string { return s.Canonical().ModelType },
			set: func(s *Settings, v string) error {
				k, err := shape.ParseKind(v)
				if err != nil {
					return err
				}
				s.ModelType = k.String()
				return nil
			},
		},
		toggle("useGradient", "Enable color gradient", func(s *Settings) *bool { return &s.UseGradient }),
		colorTunable("colorA", "Primary color (A)", func(s *Settings) *string { return &s.ColorA }),
		colorTunable("colorB", "Gradient color (B)", func(s *Settings) *string { return &s.ColorB }),
		{
			Name: "particleCount", Label: "Particle count", Kind: TunableNumber, Min: 5000, Max: 100000, Step: 5000,
			get: func(s *Settings) string { return strconv.Itoa(s.ParticleCount) },
			set: func(s *Settings, v string) error {
				n, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return err
				}
				s.ParticleCount = int(n)
				return nil
			},
		},
		number("particleSize", "Particle size", 0.01, 0.5, 0.01, func(s *Settings) *float32 { return &s.ParticleSize }),
		number("blastMaxRadius", "Blast radius", 1, 30, 0.5, func(s *Settings) *float32 { return &s.BlastMaxRadius }),
		number("blastDuration", "Blast duration", 0.1, 5.0, 0.05, func(s *Settings) *float32 { return &s.BlastDuration }),
		number("restoreSpeed", "Restore speed", 0.01, 0.2, 0.01, func(s *Settings) *float32 { return &s.RestoreSpeed }),
		number("pushForce", "Push force", 0, 20, 0.5, func(s *Settings) *float32 { return &s.PushForce }),
		toggle("springRecovery", "Spring recovery", func(s *Settings) *bool { return &s.SpringRecovery }),
		number("maxScaleValue", "Gesture max scale", 1.0, 10.0, 0.1, func(s *Settings) *float32 { return &s.MaxScaleValue }),
	}
}

func (p *Panel) find(name string) (*Tunable, error) {
	for i := range p.tunables {
		if strings.EqualFold(p.tunables[i].Name, name) {
			return &p.tunables[i], nil
		}
	}
	return nil, fmt.Errorf("unknown tunable %q: %w", name, ErrInvalidSetting)
}

// Enabled mirrors the panel behavior of greying out colorB when gradients
// are off.
func (p *Panel) Enabled(name string) bool {
	if strings.EqualFold(name, "colorB") {
		return p.field.settings.UseGradient
	}
	return true
}

func (p *Panel) Get(name string) (string, error) {
	t, err := p.find(name)
	if err != nil {
		return "", err
	}
	s := p.field.Settings()
	return t.get(&s), nil
}

// Set parses value, checks it against the tunable's range and applies the
// resulting settings. On error nothing changes.
func (p *Panel) Set(name, value string) error {
	t, err := p.find(name)
	if err != nil {
		return err
	}
	if !p.Enabled(t.Name) {
		return fmt.Errorf("%s is disabled: %w", t.Name, ErrInvalidSetting)
	}
	value = strings.TrimSpace(value)
	if t.Kind == TunableNumber {
		value, err = t.snap(value)
		if err != nil {
			return err
		}
	}

	next := p.field.Settings()
	if err := t.set(&next, value); err != nil {
		return fmt.Errorf("%s=%q: %w: %w", t.Name, value, err, ErrInvalidSetting)
	}
	return p.field.Apply(next)
}

// Cycle moves a choice or number tunable by delta steps, wrapping choices and
// clamping numbers.
func (p *Panel) Cycle(name string, delta int) error {
	t, err := p.find(name)
	if err != nil {
		return err
	}
	cur, _ := p.Get(t.Name)
	switch t.Kind {
	case TunableChoice:
		i := slices.Index(t.Choices, cur)
		n := len(t.Choices)
		return p.Set(t.Name, t.Choices[((i+delta)%n+n)%n])
	case TunableNumber:
		f, err := strconv.ParseFloat(cur, 64)
		if err != nil {
			return err
		}
		f = math.Min(t.Max, math.Max(t.Min, f+float64(delta)*t.Step))
		return p.Set(t.Name, strconv.FormatFloat(f, 'f', -1, 64))
	case TunableBool:
		b, _ := strconv.ParseBool(cur)
		return p.Set(t.Name, strconv.FormatBool(!b))
	}
	return fmt.Errorf("%s cannot be cycled: %w", t.Name, ErrInvalidSetting)
}

func (t *Tunable) snap(value string) (string, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) {
		return "", fmt.Errorf("%s=%q: not a number: %w", t.Name, value, ErrInvalidSetting)
	}
	if f < t.Min || f > t.Max {
		return "", fmt.Errorf("%s=%v not in [%v, %v]: %w", t.Name, f, t.Min, t.Max, ErrInvalidSetting)
	}
	if t.Step > 0 {
		f = t.Min + math.Round((f-t.Min)/t.Step)*t.Step
		f = math.Min(t.Max, f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func (p *Panel) List() []TunableInfo {
	s := p.field.Settings()
	out := make([]TunableInfo, 0, len(p.tunables))
	for i := range p.tunables {
		t := &p.tunables[i]
		out = append(out, TunableInfo{
			Name:    t.Name,
			Label:   t.Label,
			Value:   t.get(&s),
			Enabled: p.Enabled(t.Name),
		})
	}
	return out
}
