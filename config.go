package festive

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Default sizes and rates. Rates are fractions of the remaining distance
// covered per reference frame (see ReferenceFPS).
const (
	DefaultParticleCount = 16000
	DefaultRibbonCount   = 400
	DefaultLightCount    = 250
	DefaultSnowCount     = 800

	DefaultFarDistanceSq   = 4.0
	DefaultFarRate         = 0.12
	DefaultNearRate        = 0.06
	DefaultDriftDistanceSq = 0.5
	DefaultDrift           = 0.15
	DefaultColorRate       = 0.08
	DefaultSway            = 1.0
	DefaultTimeStep        = 0.015
	DefaultGlow            = 0.6
	DefaultGlowRadius      = 8

	// ReferenceFPS is the frame rate the per-frame rates are tuned for.
	ReferenceFPS = 60
)

// Config holds the engine's tunables. Build one with DefaultConfig and adjust
// fields, or overlay a TOML document with LoadConfig.
type Config struct {
	// ParticleCount is the size of the morphing point cloud.
	ParticleCount int `toml:"particle_count"`
	// RibbonCount, LightCount and SnowCount size the decorative sets.
	RibbonCount int `toml:"ribbon_count"`
	LightCount  int `toml:"light_count"`
	SnowCount   int `toml:"snow_count"`
	// HistorySize is the stabilizer's voting window.
	HistorySize int `toml:"history_size"`

	// FarDistanceSq is the squared distance above which FarRate is used
	// instead of NearRate.
	FarDistanceSq float32 `toml:"far_distance_sq"`
	FarRate       float32 `toml:"far_rate"`
	NearRate      float32 `toml:"near_rate"`
	// DriftDistanceSq is the squared distance above which particles receive
	// random drift of width Drift per axis. Zero Drift disables it.
	DriftDistanceSq float32 `toml:"drift_distance_sq"`
	Drift           float32 `toml:"drift"`
	// ColorRate is the per-frame color approach rate.
	ColorRate float32 `toml:"color_rate"`
	// Sway scales the branch sway of tree body particles. Zero disables it.
	Sway float32 `toml:"sway"`
	// TimeStep is how far the animation clock advances per reference frame.
	TimeStep float32 `toml:"time_step"`

	// Glow is the strength of the blurred copy added over the particles.
	// Zero disables the pass.
	Glow       float32 `toml:"glow"`
	GlowRadius int     `toml:"glow_radius"`

	// Greeting is the caption the text shape spells out.
	Greeting string `toml:"greeting"`
	// Text controls how the greeting is rasterized.
	Text TextShapeConfig `toml:"-"`
}

// DefaultConfig returns the standard scene settings.
func DefaultConfig() Config {
	return Config{
		ParticleCount:   DefaultParticleCount,
		RibbonCount:     DefaultRibbonCount,
		LightCount:      DefaultLightCount,
		SnowCount:       DefaultSnowCount,
		HistorySize:     DefaultHistorySize,
		FarDistanceSq:   DefaultFarDistanceSq,
		FarRate:         DefaultFarRate,
		NearRate:        DefaultNearRate,
		DriftDistanceSq: DefaultDriftDistanceSq,
		Drift:           DefaultDrift,
		ColorRate:       DefaultColorRate,
		Sway:            DefaultSway,
		TimeStep:        DefaultTimeStep,
		Glow:            DefaultGlow,
		GlowRadius:      DefaultGlowRadius,
		Greeting:        DefaultGreeting,
		Text:            DefaultTextShapeConfig(),
	}
}

// LoadConfig parses a TOML document over DefaultConfig. Keys missing from the
// document keep their defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("festive: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.ParticleCount <= 0:
		return fmt.Errorf("festive: config: particle_count must be positive, got %d", c.ParticleCount)
	case c.RibbonCount < 0, c.LightCount < 0, c.SnowCount < 0:
		return fmt.Errorf("festive: config: decorative counts must not be negative")
	case c.HistorySize < 0:
		return fmt.Errorf("festive: config: history_size must not be negative, got %d", c.HistorySize)
	case !validRate(c.FarRate), !validRate(c.NearRate), !validRate(c.ColorRate):
		return fmt.Errorf("festive: config: rates must be in (0, 1]")
	case c.TimeStep < 0:
		return fmt.Errorf("festive: config: time_step must not be negative")
	case c.Glow < 0, c.GlowRadius < 0:
		return fmt.Errorf("festive: config: glow and glow_radius must not be negative")
	}
	return nil
}

func validRate(r float32) bool {
	return r > 0 && r <= 1
}
