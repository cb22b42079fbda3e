package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/launchsim/internal/flight"
	"github.com/san-kum/launchsim/internal/rocket"
	"github.com/san-kum/launchsim/internal/vec"
)

const (
	DefaultDt       = 0.1
	DefaultDuration = 600.0
)

// Config is the on-disk description of a vehicle and its flight.
type Config struct {
	Vehicle VehicleConfig `yaml:"vehicle"`
	Sim     SimConfig     `yaml:"sim"`
	Plan    []EventConfig `yaml:"plan"`
}

// VehicleConfig describes the launch vehicle. Stages are listed in
// staging order: the first entry fires first.
type VehicleConfig struct {
	CoeffDrag    float64         `yaml:"coeff_drag"`
	CrossSecArea float64         `yaml:"cross_sec_area"`
	Stages       []StageConfig   `yaml:"stages"`
	SRBs         []StageConfig   `yaml:"srbs"`
	Payloads     []PayloadConfig `yaml:"payloads"`
}

// StageConfig mirrors rocket.StageConfig with YAML field names. Omitted
// fields default to zero.
type StageConfig struct {
	DryMass     float64 `yaml:"dry_mass"`
	FuelMass    float64 `yaml:"fuel_mass"`
	MaxThrust   float64 `yaml:"max_thrust"`
	MaxBurnRate float64 `yaml:"max_burn_rate"`
	Length      float64 `yaml:"length"`
}

// PayloadConfig describes a payload to carry.
type PayloadConfig struct {
	Mass float64 `yaml:"mass"`
}

// SimConfig holds the run parameters.
type SimConfig struct {
	Dt           float64 `yaml:"dt"`
	Duration     float64 `yaml:"duration"`
	AutoStage    bool    `yaml:"auto_stage"`
	AutoJettison bool    `yaml:"auto_jettison"`
}

// EventConfig is one timed flight-plan entry.
type EventConfig struct {
	Time   float64 `yaml:"time"`
	Action string  `yaml:"action"`
	Value  float64 `yaml:"value"`
}

// DefaultConfig returns a configuration with standard run parameters and
// an empty vehicle.
func DefaultConfig() *Config {
	return &Config{
		Sim: SimConfig{
			Dt:           DefaultDt,
			Duration:     DefaultDuration,
			AutoStage:    true,
			AutoJettison: true,
		},
	}
}

// Load reads a YAML configuration file, filling omitted run parameters
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs the configured vehicle on the pad. Validation errors
// from the vehicle constructors are returned wrapped with the offending
// component.
func (c *Config) Build() (*rocket.Rocket, error) {
	r, err := rocket.NewRocket(vec.Zero(), c.Vehicle.CoeffDrag, c.Vehicle.CrossSecArea)
	if err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}
	for i, sc := range c.Vehicle.Stages {
		s, err := rocket.NewStage(sc.toStage())
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		if err := r.AddStage(s); err != nil {
			return nil, err
		}
	}
	for i, sc := range c.Vehicle.SRBs {
		s, err := rocket.NewStage(sc.toStage())
		if err != nil {
			return nil, fmt.Errorf("srb %d: %w", i, err)
		}
		if err := r.AddSRB(s); err != nil {
			return nil, err
		}
	}
	for i, pc := range c.Vehicle.Payloads {
		p, err := rocket.NewPayload(pc.Mass)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		if err := r.AddPayload(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// BuildPlan constructs the flight plan from the configured events.
func (c *Config) BuildPlan() (*flight.Plan, error) {
	events := make([]flight.Event, len(c.Plan))
	for i, ec := range c.Plan {
		events[i] = flight.Event{
			Time:   ec.Time,
			Action: flight.Action(ec.Action),
			Value:  ec.Value,
		}
	}
	return flight.NewPlan(events)
}

// FlightConfig maps the run parameters onto a flight.Config.
func (c *Config) FlightConfig() flight.Config {
	return flight.Config{
		Dt:            c.Sim.Dt,
		Duration:      c.Sim.Duration,
		AutoStage:     c.Sim.AutoStage,
		AutoJettison:  c.Sim.AutoJettison,
		ValidateState: true,
	}
}

func (sc StageConfig) toStage() rocket.StageConfig {
	return rocket.StageConfig{
		DryMass:     sc.DryMass,
		FuelMass:    sc.FuelMass,
		MaxThrust:   sc.MaxThrust,
		MaxBurnRate: sc.MaxBurnRate,
		Length:      sc.Length,
	}
}
