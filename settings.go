package pointburst

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/pointburst/field"
	"github.com/gekko3d/pointburst/gesture"
	"github.com/gekko3d/pointburst/shape"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Settings is everything a user can tune. JSON keys match the control panel
// names so a saved file can be edited by hand.
type Settings struct {
	ParticleCount int     `json:"particleCount"`
	ParticleSize  float32 `json:"particleSize"`
	ModelType     string  `json:"modelType"`
	ColorA        string  `json:"colorA"`
	ColorB        string  `json:"colorB"`
	UseGradient   bool    `json:"useGradient"`
	MaxScaleValue float32 `json:"maxScaleValue"`

	BlastMaxRadius float32 `json:"blastMaxRadius"`
	BlastDuration  float32 `json:"blastDuration"`
	RestoreSpeed   float32 `json:"restoreSpeed"`
	PushForce      float32 `json:"pushForce"`
	MaxBlasts      int     `json:"maxBlasts"`
	SpringRecovery bool    `json:"springRecovery"`
}

func DefaultSettings() Settings {
	return Settings{
		ParticleCount:  20000,
		ParticleSize:   0.1,
		ModelType:      shape.Fireworks.String(),
		ColorA:         "#00ccff",
		ColorB:         "#ff33aa",
		UseGradient:    true,
		MaxScaleValue:  4.0,
		BlastMaxRadius: 10,
		BlastDuration:  0.5,
		RestoreSpeed:   field.DefaultRestoreSpeed,
		PushForce:      field.DefaultPushForce,
		MaxBlasts:      field.MaxBlasts,
	}
}

// CompactSettings is the low-power profile: fewer, smaller particles.
func CompactSettings() Settings {
	s := DefaultSettings()
	s.ParticleCount = 8000
	s.ParticleSize = 0.05
	return s
}

func (s Settings) Validate() error {
	if s.ParticleCount < shape.MinCount || s.ParticleCount > shape.MaxCount {
		return fmt.Errorf("particleCount %d not in [%d, %d]: %w", s.ParticleCount, shape.MinCount, shape.MaxCount, ErrInvalidSetting)
	}
	if !(s.ParticleSize > 0) {
		return fmt.Errorf("particleSize %v must be positive: %w", s.ParticleSize, ErrInvalidSetting)
	}
	if _, err := shape.ParseKind(s.ModelType); err != nil {
		return fmt.Errorf("modelType: %w: %w", err, ErrInvalidSetting)
	}
	if _, err := shape.ParseColor(s.ColorA); err != nil {
		return fmt.Errorf("colorA: %w: %w", err, ErrInvalidSetting)
	}
	if _, err := shape.ParseColor(s.ColorB); err != nil {
		return fmt.Errorf("colorB: %w: %w", err, ErrInvalidSetting)
	}
	if !(s.MaxScaleValue >= gesture.MinScale) {
		return fmt.Errorf("maxScaleValue %v below %v: %w", s.MaxScaleValue, gesture.MinScale, ErrInvalidSetting)
	}
	if !(s.BlastMaxRadius > 0) {
		return fmt.Errorf("blastMaxRadius %v must be positive: %w", s.BlastMaxRadius, ErrInvalidSetting)
	}
	if !(s.BlastDuration > 0) {
		return fmt.Errorf("blastDuration %v must be positive: %w", s.BlastDuration, ErrInvalidSetting)
	}
	if !(s.RestoreSpeed > 0) {
		return fmt.Errorf("restoreSpeed %v must be positive: %w", s.RestoreSpeed, ErrInvalidSetting)
	}
	if !(s.PushForce >= 0) {
		return fmt.Errorf("pushForce %v must not be negative: %w", s.PushForce, ErrInvalidSetting)
	}
	if s.MaxBlasts < 1 {
		return fmt.Errorf("maxBlasts %d must be at least 1: %w", s.MaxBlasts, ErrInvalidSetting)
	}
	return nil
}

// shapeParams resolves the generation-related settings. Call Validate first.
func (s Settings) shapeParams() (shape.Kind, shape.Params, error) {
	kind, err := shape.ParseKind(s.ModelType)
	if err != nil {
		return 0, shape.Params{}, err
	}
	a, err := shape.ParseColor(s.ColorA)
	if err != nil {
		return 0, shape.Params{}, err
	}
	b, err := shape.ParseColor(s.ColorB)
	if err != nil {
		return 0, shape.Params{}, err
	}
	return kind, shape.Params{ColorA: a, ColorB: b, Gradient: s.UseGradient}, nil
}

// Canonical rewrites aliases such as "buddha" to the shape's own name.
// Unknown names are left for Validate to reject.
func (s Settings) Canonical() Settings {
	if k, err := shape.ParseKind(s.ModelType); err == nil {
		s.ModelType = k.String()
	}
	return s
}

// regenerates reports whether moving from s to next needs a new point cloud.
// Shape names are compared by kind, so an alias never forces a rebuild.
func (s Settings) regenerates(next Settings) bool {
	return s.ParticleCount != next.ParticleCount ||
		s.Canonical().ModelType != next.Canonical().ModelType ||
		s.ColorA != next.ColorA ||
		s.ColorB != next.ColorB ||
		s.UseGradient != next.UseGradient
}

func (s Settings) fieldConfig() field.Config {
	recovery := field.RecoveryInstant
	if s.SpringRecovery {
		recovery = field.RecoverySpring
	}
	return field.Config{
		Capacity:     s.MaxBlasts,
		MaxRadius:    s.BlastMaxRadius,
		Duration:     s.BlastDuration,
		PushForce:    s.PushForce,
		Recovery:     recovery,
		RestoreSpeed: s.RestoreSpeed,
	}
}

// LoadSettings reads a JSON settings file. Keys missing from the file keep
// their default values.
func LoadSettings(filename string) (Settings, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, err
	}

	s := DefaultSettings()
	if err := json.Unmarshal(bytes, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", filename, err)
	}
	return s.Canonical(), nil
}

func SaveSettings(s Settings, filename string) error {
	bytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}
