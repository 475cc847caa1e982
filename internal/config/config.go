// Package config loads and saves the YAML run configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt              = 0.02
	DefaultDuration        = 600.0
	DefaultMaxSpeed        = 8000.0
	DefaultSpeedRes        = 32
	DefaultAoARes          = 33
	DefaultAltitudeRes     = 32
	DefaultDragThreshold   = 1.2
	DefaultCooldownSeconds = 10.0
)

type Config struct {
	Model      string `yaml:"model"`
	Integrator string `yaml:"integrator"`

	Cache     CacheConfig     `yaml:"cache"`
	Predictor PredictorConfig `yaml:"predictor"`
	Body      BodyConfig      `yaml:"body"`
	InitState InitStateConfig `yaml:"init_state"`
}

type CacheConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Eager              bool    `yaml:"eager"`
	SpeedResolution    int     `yaml:"speed_resolution"`
	AoAResolution      int     `yaml:"aoa_resolution"`
	AltitudeResolution int     `yaml:"altitude_resolution"`
	MaxSpeed           float64 `yaml:"max_speed"`
	MaxAoA             float64 `yaml:"max_aoa"`
	AutoRevalidate     bool    `yaml:"auto_revalidate"`
	DragRatioThreshold float64 `yaml:"drag_ratio_threshold"`
	CooldownSeconds    float64 `yaml:"cooldown_seconds"`
}

type PredictorConfig struct {
	Dt            float64 `yaml:"dt"`
	Duration      float64 `yaml:"duration"`
	AngleOfAttack float64 `yaml:"angle_of_attack"`
	ValidateState bool    `yaml:"validate_state"`
}

type BodyConfig struct {
	Name             string  `yaml:"name"`
	Radius           float64 `yaml:"radius"`
	HasAtmosphere    bool    `yaml:"has_atmosphere"`
	AtmosphereDepth  float64 `yaml:"atmosphere_depth"`
	HasOcean         bool    `yaml:"has_ocean"`
	MaxTerrainHeight float64 `yaml:"max_terrain_height"`
	RotationPeriod   float64 `yaml:"rotation_period"`
	GravParameter    float64 `yaml:"grav_parameter"`
}

type InitStateConfig struct {
	Altitude float64 `yaml:"altitude"`
	Speed    float64 `yaml:"speed"`
	// FlightPathAngle is the velocity angle below local horizontal,
	// radians. Positive descends.
	FlightPathAngle float64 `yaml:"flight_path_angle"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "newtonian",
		Integrator: "rk4",
		Cache: CacheConfig{
			Enabled:            true,
			Eager:              false,
			SpeedResolution:    DefaultSpeedRes,
			AoAResolution:      DefaultAoARes,
			AltitudeResolution: DefaultAltitudeRes,
			MaxSpeed:           DefaultMaxSpeed,
			MaxAoA:             3.141592653589793,
			AutoRevalidate:     true,
			DragRatioThreshold: DefaultDragThreshold,
			CooldownSeconds:    DefaultCooldownSeconds,
		},
		Predictor: PredictorConfig{
			Dt:            DefaultDt,
			Duration:      DefaultDuration,
			ValidateState: true,
		},
		Body: BodyConfig{
			Name:            "kerbin",
			Radius:          600000,
			HasAtmosphere:   true,
			AtmosphereDepth: 70000,
			RotationPeriod:  21549.425,
			GravParameter:   3.5316e12,
		},
		InitState: InitStateConfig{
			Altitude: 69000,
			Speed:    2300,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Cooldown returns the revalidation cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Cache.CooldownSeconds * float64(time.Second))
}
