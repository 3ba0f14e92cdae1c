package astro

import (
	"errors"
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

// Config gathers the fixed session constants: the primary body, the initial
// and target circular orbits, the discrete action grid and the propagation
// resolution. All of it is supplied at construction and immutable for the
// lifetime of the session. The reward policy constants are deliberately not
// configurable.
type Config struct {
	Origin          CelestialObject
	InitialAltitude float64 // km above the surface
	TargetAltitude  float64 // km above the surface
	WaitLevels      int
	ThrustLevels    int
	MaxThrust       float64
	Steps           int // propagation samples per coast
	Logger          kitlog.Logger
}

// DefaultConfig returns the canonical LEO (300 km) to GEO (35786 km) transfer
// session: a 4x6 action grid with a max thrust of 1 km/s and 100 propagation
// samples per coast.
func DefaultConfig() Config {
	return Config{
		Origin:          Earth,
		InitialAltitude: 300.0,
		TargetAltitude:  35786.0,
		WaitLevels:      4,
		ThrustLevels:    6,
		MaxThrust:       1.0,
		Steps:           DefaultSteps,
		Logger:          kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)),
	}
}

// Validate returns an error when the configuration cannot define a session.
func (cfg Config) Validate() error {
	if cfg.Origin.Radius <= 0 || cfg.Origin.μ <= 0 {
		return errors.New("config: origin body needs a positive radius and μ")
	}
	if cfg.InitialAltitude <= 0 || cfg.TargetAltitude <= 0 {
		return errors.New("config: altitudes must be positive")
	}
	if cfg.WaitLevels <= 0 || cfg.ThrustLevels <= 0 {
		return errors.New("config: action grid sizes must be positive")
	}
	if cfg.MaxThrust <= 0 {
		return errors.New("config: max thrust must be positive")
	}
	if cfg.Steps <= 0 {
		return errors.New("config: propagation steps must be positive")
	}
	if cfg.Logger == nil {
		return errors.New("config: logger may not be nil")
	}
	return nil
}

// LoadConfig reads conf.toml from the provided directory and overlays it on
// the defaults. A missing file is an error; a missing key keeps its default.
func LoadConfig(confPath string) (Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigName("conf")
	v.AddConfigPath(confPath)
	v.SetDefault("environment.initial_altitude", cfg.InitialAltitude)
	v.SetDefault("environment.target_altitude", cfg.TargetAltitude)
	v.SetDefault("actions.wait_levels", cfg.WaitLevels)
	v.SetDefault("actions.thrust_levels", cfg.ThrustLevels)
	v.SetDefault("actions.max_thrust", cfg.MaxThrust)
	v.SetDefault("propagation.steps", cfg.Steps)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("%s/conf.toml not found: %w", confPath, err)
	}
	cfg.InitialAltitude = v.GetFloat64("environment.initial_altitude")
	cfg.TargetAltitude = v.GetFloat64("environment.target_altitude")
	cfg.WaitLevels = v.GetInt("actions.wait_levels")
	cfg.ThrustLevels = v.GetInt("actions.thrust_levels")
	cfg.MaxThrust = v.GetFloat64("actions.max_thrust")
	cfg.Steps = v.GetInt("propagation.steps")
	return cfg, cfg.Validate()
}
